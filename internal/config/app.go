package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/marvin/internal/core"
	"github.com/sandevgo/marvin/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"MARVIN_RUNTIME_PATH" envDefault:".marvin"`

	// Transport flags
	EnableTelegram bool `env:"MARVIN_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"MARVIN_ENABLE_CLI" envDefault:"true"`

	// Session defaults
	MemorySize   int      `env:"MARVIN_MEMORY_SIZE" envDefault:"3"`
	DefaultMode  string   `env:"MARVIN_DEFAULT_MODE" envDefault:"manual"`
	VoiceStyle   string   `env:"MARVIN_VOICE_STYLE" envDefault:"formal"`
	VoiceVolume  int      `env:"MARVIN_VOICE_VOLUME" envDefault:"7"`
	DefaultCity  string   `env:"MARVIN_DEFAULT_CITY" envDefault:""`
	ExtraFillers []string `env:"MARVIN_EXTRA_FILLERS" envSeparator:","`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "marvin.db")
}

func (c AppConfig) GetPatternsPath() string {
	return filepath.Join(c.RuntimePath, "patterns.json")
}

func (c AppConfig) GetMemorySize() int {
	if c.MemorySize <= 0 {
		return 3
	}
	return c.MemorySize
}

func (c AppConfig) GetDefaultMode() core.Mode {
	return core.Mode(c.DefaultMode)
}

func (c AppConfig) GetDefaultVoice() core.VoiceSettings {
	return core.VoiceSettings{
		Style:  core.VoiceStyle(c.VoiceStyle),
		Volume: c.VoiceVolume,
	}
}

func (c AppConfig) GetDefaultCity() string {
	return c.DefaultCity
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
