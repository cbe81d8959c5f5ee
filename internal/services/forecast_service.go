package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// ForecastServiceInterface answers one question: what is the weather at a
// coordinate on a calendar day. Failures come back as errors and the caller
// decides how to degrade; nothing here ever panics across the boundary.
type ForecastServiceInterface interface {
	DailyForecast(ctx context.Context, lat, lng float64, isoDate string) (string, error)
}

// OpenMeteoClient is a daily-forecast client for the Open-Meteo API.
// Responses are cached per (lat,lng,date) so one enrichment pass does not
// re-fetch days it already saw in a recent round.
type OpenMeteoClient struct {
	HTTP       *http.Client
	BaseURL    string
	Cache      *cache.Cache
	DefaultTTL time.Duration
}

func NewOpenMeteoClient() *OpenMeteoClient {
	baseURL := os.Getenv("FORECAST_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com"
	}
	return &OpenMeteoClient{
		HTTP:       &http.Client{Timeout: 15 * time.Second},
		BaseURL:    baseURL,
		Cache:      cache.New(30*time.Minute, 10*time.Minute),
		DefaultTTL: 30 * time.Minute,
	}
}

func (c *OpenMeteoClient) DailyForecast(ctx context.Context, lat, lng float64, isoDate string) (string, error) {
	key := fmt.Sprintf("%.3f:%.3f:%s", lat, lng, isoDate)
	if v, ok := c.Cache.Get(key); ok {
		return v.(string), nil
	}

	u, err := url.Parse(c.BaseURL + "/v1/forecast")
	if err != nil {
		return "", fmt.Errorf("forecast base url: %w", err)
	}
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lng))
	q.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min")
	q.Set("timezone", "auto")
	q.Set("start_date", isoDate)
	q.Set("end_date", isoDate)
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("open-meteo http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("open-meteo bad status: %s", resp.Status)
	}

	var payload struct {
		Daily struct {
			Weathercode    []int     `json:"weathercode"`
			TemperatureMax []float64 `json:"temperature_2m_max"`
			TemperatureMin []float64 `json:"temperature_2m_min"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("open-meteo decode: %w", err)
	}
	if len(payload.Daily.Weathercode) == 0 ||
		len(payload.Daily.TemperatureMin) == 0 ||
		len(payload.Daily.TemperatureMax) == 0 {
		return "", fmt.Errorf("open-meteo: no data for %s", isoDate)
	}

	line := fmt.Sprintf("%s, %.0f°C to %.0f°C",
		describeWeatherCode(payload.Daily.Weathercode[0]),
		payload.Daily.TemperatureMin[0],
		payload.Daily.TemperatureMax[0])

	c.Cache.Set(key, line, c.DefaultTTL)
	return line, nil
}

// WMO weather interpretation codes, reduced to the buckets worth showing.
var weatherCodeDescriptions = map[int]string{
	0:  "☀️ Clear sky",
	1:  "🌤 Mostly clear",
	2:  "⛅ Partly cloudy",
	3:  "☁️ Overcast",
	45: "🌫 Fog",
	48: "🌫 Rime fog",
	51: "🌦 Light drizzle",
	53: "🌦 Drizzle",
	55: "🌧 Dense drizzle",
	61: "🌧 Light rain",
	63: "🌧 Rain",
	65: "🌧 Heavy rain",
	66: "🌧 Freezing rain",
	67: "🌧 Heavy freezing rain",
	71: "🌨 Light snow",
	73: "🌨 Snow",
	75: "❄️ Heavy snow",
	77: "❄️ Snow grains",
	80: "🌦 Rain showers",
	81: "🌧 Heavy rain showers",
	82: "⛈ Violent rain showers",
	85: "🌨 Snow showers",
	86: "❄️ Heavy snow showers",
	95: "⛈ Thunderstorm",
	96: "⛈ Thunderstorm with hail",
	99: "⛈ Thunderstorm with heavy hail",
}

func describeWeatherCode(code int) string {
	if desc, ok := weatherCodeDescriptions[code]; ok {
		return desc
	}
	return "🌡 Mixed conditions"
}
