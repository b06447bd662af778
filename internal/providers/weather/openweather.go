package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sandevgo/marvin/internal/core"
	"github.com/sandevgo/marvin/pkg/retry"
)

// OpenWeather reports current conditions via the OpenWeatherMap API. With no
// API key configured it answers with a fixed fallback instead of failing.
type OpenWeather struct {
	cfg     core.WeatherConfig
	client  *http.Client
	retrier *retry.Retrier
}

func NewOpenWeather(cfg core.WeatherConfig) *OpenWeather {
	return &OpenWeather{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		retrier: retry.NewDefaultRetrier(),
	}
}

type currentConditions struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Name string `json:"name"`
}

func (w *OpenWeather) Current(ctx context.Context, city string) (string, error) {
	if w.cfg.GetWeatherAPIKey() == "" {
		return fmt.Sprintf("I don't have a weather service configured, but I hope it's pleasant in %s.", city), nil
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", w.cfg.GetWeatherAPIKey())
	q.Set("units", w.cfg.GetWeatherUnits())
	reqURL := w.cfg.GetWeatherBaseURL() + "?" + q.Encode()

	var conditions currentConditions
	err := w.retrier.Do(ctx, func() error {
		return w.fetch(ctx, reqURL, &conditions)
	})
	if err != nil {
		return "", fmt.Errorf("weather request for %q: %w", city, err)
	}

	description := "unknown conditions"
	if len(conditions.Weather) > 0 {
		description = conditions.Weather[0].Description
	}
	unit := "°C"
	if w.cfg.GetWeatherUnits() == "imperial" {
		unit = "°F"
	}
	return fmt.Sprintf("The weather in %s is %s, %.0f%s with %d%% humidity.",
		conditions.Name, description, conditions.Main.Temp, unit, conditions.Main.Humidity), nil
}

func (w *OpenWeather) fetch(ctx context.Context, reqURL string, out *currentConditions) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", core.MarvinUserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
