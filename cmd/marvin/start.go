package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/marvin/pkg/log"
	"github.com/sandevgo/marvin/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Marvin services",
	Long:  `Initializes and starts all configured surfaces (console, Telegram) and the turn pipeline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting marvin")

		// Define services using the services.go wiring
		services := NewServices(ctx, stop)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("marvin has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
