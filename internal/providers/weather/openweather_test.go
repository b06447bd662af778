package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	apiKey  string
	baseURL string
	units   string
}

func (c testConfig) GetWeatherAPIKey() string  { return c.apiKey }
func (c testConfig) GetWeatherBaseURL() string { return c.baseURL }
func (c testConfig) GetWeatherUnits() string   { return c.units }

func TestCurrentWithoutAPIKey(t *testing.T) {
	w := NewOpenWeather(testConfig{})

	got, err := w.Current(context.Background(), "Boston")
	require.NoError(t, err)
	assert.Contains(t, got, "Boston")
	assert.Contains(t, got, "don't have a weather service")
}

func TestCurrentFormatsReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "boston", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		fmt.Fprint(w, `{
			"weather": [{"description": "clear sky"}],
			"main": {"temp": 21.4, "humidity": 40},
			"name": "Boston"
		}`)
	}))
	defer srv.Close()

	w := NewOpenWeather(testConfig{apiKey: "secret", baseURL: srv.URL, units: "metric"})
	got, err := w.Current(context.Background(), "boston")
	require.NoError(t, err)
	assert.Equal(t, "The weather in Boston is clear sky, 21°C with 40% humidity.", got)
}

func TestCurrentImperialUnits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"weather": [{"description": "light rain"}],
			"main": {"temp": 58.0, "humidity": 70},
			"name": "Seattle"
		}`)
	}))
	defer srv.Close()

	w := NewOpenWeather(testConfig{apiKey: "secret", baseURL: srv.URL, units: "imperial"})
	got, err := w.Current(context.Background(), "seattle")
	require.NoError(t, err)
	assert.Contains(t, got, "58°F")
}

func TestCurrentAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Invalid API key"}`)
	}))
	defer srv.Close()

	w := NewOpenWeather(testConfig{apiKey: "bad", baseURL: srv.URL, units: "metric"})
	_, err := w.Current(context.Background(), "boston")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boston")
}
