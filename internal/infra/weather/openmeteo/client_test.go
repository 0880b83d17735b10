package openmeteo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/chore-planner/internal/domain/weather"
)

func TestFetchBuildsForecastQuery(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"latitude":      r.URL.Query().Get("latitude"),
			"longitude":     r.URL.Query().Get("longitude"),
			"hourly":        r.URL.Query().Get("hourly"),
			"daily":         r.URL.Query().Get("daily"),
			"forecast_days": r.URL.Query().Get("forecast_days"),
			"timezone":      r.URL.Query().Get("timezone"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hourly": {
				"time": ["2024-01-02T00:00", "2024-01-02T01:00"],
				"temperature_2m": [4.2, 3.9],
				"precipitation_probability": [10, 20],
				"wind_speed_10m": [11.5, 9.1],
				"relative_humidity_2m": [61, 64]
			},
			"daily": {"uv_index_max": [2.1, 3.4]}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "Asia/Tokyo")

	forecast, err := client.Fetch(context.Background(), 35.681, 139.767)
	require.NoError(t, err)

	require.Equal(t, "35.681", gotQuery["latitude"])
	require.Equal(t, "139.767", gotQuery["longitude"])
	require.Equal(t, hourlyVariables, gotQuery["hourly"])
	require.Equal(t, dailyVariables, gotQuery["daily"])
	require.Equal(t, "2", gotQuery["forecast_days"])
	require.Equal(t, "Asia/Tokyo", gotQuery["timezone"])

	require.Equal(t, []string{"2024-01-02T00:00", "2024-01-02T01:00"}, forecast.Hourly.Time)
	require.Equal(t, []float64{4.2, 3.9}, forecast.Hourly.Temperature2m)
	require.Equal(t, []float64{61, 64}, forecast.Hourly.RelativeHumidity2m)
	require.Equal(t, []float64{2.1, 3.4}, forecast.Daily.UVIndexMax)
}

func TestFetchOmitsAbsentHumidity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"hourly": {"time": ["2024-01-02T00:00"], "temperature_2m": [4.2], "precipitation_probability": [10], "wind_speed_10m": [11.5]},
			"daily": {"uv_index_max": [2.1]}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "Asia/Tokyo")

	forecast, err := client.Fetch(context.Background(), 35.681, 139.767)
	require.NoError(t, err)
	require.Nil(t, forecast.Hourly.RelativeHumidity2m)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "Asia/Tokyo")

	_, err := client.Fetch(context.Background(), 35.681, 139.767)
	var upstream *weather.UpstreamError
	require.True(t, errors.As(err, &upstream))
	require.Equal(t, http.StatusTooManyRequests, upstream.Status)
}

func TestFetchNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "Asia/Tokyo")

	_, err := client.Fetch(context.Background(), 35.681, 139.767)
	require.Error(t, err)
	var upstream *weather.UpstreamError
	require.False(t, errors.As(err, &upstream))
}

func TestFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hourly": "not an object"`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "Asia/Tokyo")

	_, err := client.Fetch(context.Background(), 35.681, 139.767)
	require.Error(t, err)
}
