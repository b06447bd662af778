package main

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sandevgo/marvin/internal/config"
	"github.com/sandevgo/marvin/internal/core"
	"github.com/sandevgo/marvin/internal/providers/sysops"
	"github.com/sandevgo/marvin/internal/providers/weather"
	"github.com/sandevgo/marvin/internal/providers/wiki"
	"github.com/sandevgo/marvin/internal/service/dispatch"
	"github.com/sandevgo/marvin/internal/service/exec"
	"github.com/sandevgo/marvin/internal/service/nlu"
	"github.com/sandevgo/marvin/internal/service/session"
	"github.com/sandevgo/marvin/internal/storage/sqlite"
	"github.com/sandevgo/marvin/internal/transport/cli"
	"github.com/sandevgo/marvin/internal/transport/telegram"
	"github.com/sandevgo/marvin/pkg/log"
	"github.com/sandevgo/marvin/pkg/srv"
)

func NewServices(ctx context.Context, stop func()) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))
	transcript := sqlite.NewTranscript(db)

	// 3. Intent resolution
	norm := nlu.NewNormalizer(appCfg.ExtraFillers)
	patterns, err := nlu.LoadCatalog(appCfg.GetPatternsPath())
	if err != nil {
		logger.Fatal().Err(err).Str("path", appCfg.GetPatternsPath()).Msg("failed to load pattern catalog")
	}
	matcher, err := nlu.NewMatcher(norm, patterns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to compile pattern catalog")
	}

	// 4. Session and dispatcher
	sess := session.New(appCfg.GetMemorySize(), appCfg.GetDefaultMode(), appCfg.GetDefaultVoice())
	dispatcher := dispatch.New(norm, matcher, sess, transcript)

	// 5. Providers
	weatherProv := weather.NewOpenWeather(config.NewWeatherConfig(ctx))
	wikiProv := wiki.NewClient()
	sysProv := sysops.New()

	// 6. Executor
	// Notifications fan out to every transport registered below.
	hub := &notifyHub{}
	executor := exec.New(weatherProv, wikiProv, sysProv, hub, appCfg.GetDefaultCity(), stop)

	// 7. Transports
	if appCfg.EnableCLI {
		term, err := cli.NewReadLine(dispatcher, executor, transcript, appCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize console transport")
		}
		hub.Register(term)
		services = append(services, term)
	}

	if appCfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, dispatcher, executor)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram transport")
		}
		hub.Register(bot)
		services = append(services, bot)
	}

	if len(services) == 1 {
		logger.Fatal().Msg("no transports enabled, set MARVIN_ENABLE_CLI or MARVIN_ENABLE_TELEGRAM")
	}

	return services
}

// notifyHub fans alarm and reminder notifications out to all transports.
type notifyHub struct {
	mu      sync.RWMutex
	targets []core.Notifier
}

func (h *notifyHub) Register(n core.Notifier) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.targets = append(h.targets, n)
}

func (h *notifyHub) Notify(text string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, t := range h.targets {
		t.Notify(text)
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
