package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/marvin/pkg/log"
)

// WeatherConfig is optional: with no API key the weather collaborator
// degrades to a spoken fallback instead of failing startup.
type WeatherConfig struct {
	APIKey  string `env:"MARVIN_WEATHER_API_KEY"`
	BaseURL string `env:"MARVIN_WEATHER_BASE_URL" envDefault:"https://api.openweathermap.org/data/2.5/weather"`
	Units   string `env:"MARVIN_WEATHER_UNITS" envDefault:"metric"`
}

func NewWeatherConfig(ctx context.Context) *WeatherConfig {
	c := &WeatherConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Weather config")
	}
	return c
}

func (c WeatherConfig) GetWeatherAPIKey() string {
	return c.APIKey
}

func (c WeatherConfig) GetWeatherBaseURL() string {
	return c.BaseURL
}

func (c WeatherConfig) GetWeatherUnits() string {
	return c.Units
}
