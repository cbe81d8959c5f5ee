package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMeteoClient(baseURL string) *OpenMeteoClient {
	return &OpenMeteoClient{
		HTTP:       &http.Client{Timeout: 2 * time.Second},
		BaseURL:    baseURL,
		Cache:      cache.New(time.Minute, time.Minute),
		DefaultTTL: time.Minute,
	}
}

func TestDailyForecast_FormatsSummaryLine(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"latitude":   r.URL.Query().Get("latitude"),
			"longitude":  r.URL.Query().Get("longitude"),
			"daily":      r.URL.Query().Get("daily"),
			"timezone":   r.URL.Query().Get("timezone"),
			"start_date": r.URL.Query().Get("start_date"),
			"end_date":   r.URL.Query().Get("end_date"),
		}
		fmt.Fprint(w, `{"daily": {"weathercode": [0], "temperature_2m_max": [25.4], "temperature_2m_min": [13.6]}}`)
	}))
	defer srv.Close()

	c := newTestMeteoClient(srv.URL)
	line, err := c.DailyForecast(context.Background(), 51.0543, 3.7174, "2024-07-22")
	require.NoError(t, err)
	assert.Equal(t, "☀️ Clear sky, 14°C to 25°C", line)

	assert.Equal(t, "51.0543", gotQuery["latitude"])
	assert.Equal(t, "3.7174", gotQuery["longitude"])
	assert.Equal(t, "weathercode,temperature_2m_max,temperature_2m_min", gotQuery["daily"])
	assert.Equal(t, "auto", gotQuery["timezone"])
	assert.Equal(t, "2024-07-22", gotQuery["start_date"])
	assert.Equal(t, "2024-07-22", gotQuery["end_date"])
}

func TestDailyForecast_CachesPerDayAndPlace(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		fmt.Fprint(w, `{"daily": {"weathercode": [61], "temperature_2m_max": [18.0], "temperature_2m_min": [11.0]}}`)
	}))
	defer srv.Close()

	c := newTestMeteoClient(srv.URL)
	first, err := c.DailyForecast(context.Background(), 51.05, 3.72, "2024-07-22")
	require.NoError(t, err)
	second, err := c.DailyForecast(context.Background(), 51.05, 3.72, "2024-07-22")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits), "the repeat lookup must come from cache")

	// A different day is a different cache entry.
	_, err = c.DailyForecast(context.Background(), 51.05, 3.72, "2024-07-23")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&hits))
}

func TestDailyForecast_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "bad status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			},
		},
		{
			name: "empty daily arrays",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"daily": {"weathercode": [], "temperature_2m_max": [], "temperature_2m_min": []}}`)
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `not json`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := newTestMeteoClient(srv.URL)
			_, err := c.DailyForecast(context.Background(), 51.05, 3.72, "2024-07-22")
			require.Error(t, err)
		})
	}
}

func TestDescribeWeatherCode_UnknownCode(t *testing.T) {
	assert.Equal(t, "⛈ Thunderstorm", describeWeatherCode(95))
	assert.Equal(t, "🌡 Mixed conditions", describeWeatherCode(42))
}
