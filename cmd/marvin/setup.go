package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/marvin/internal/config"
	"github.com/sandevgo/marvin/internal/service/installer"
	"github.com/sandevgo/marvin/pkg/log"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:           "setup",
	Short:         "Run the interactive Marvin setup wizard",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting setup process")

		// run wizard (includes save step)
		_, err := installer.RunWizard()
		if err != nil {
			return err
		}

		// Load the newly created .env file so NewAppConfig can see the values
		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Setup complete! You can now run 'marvin start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
