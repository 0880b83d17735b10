package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/chore-planner/internal/domain/weather"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

const (
	hourlyVariables = "temperature_2m,precipitation_probability,wind_speed_10m,relative_humidity_2m"
	dailyVariables  = "uv_index_max"
	forecastDays    = "2"
)

// Client fetches forecasts from the Open-Meteo API.
type Client struct {
	baseURL    string
	timezone   string
	httpClient *http.Client
}

// NewClient builds an API client pinned to a single timezone.
func NewClient(baseURL, timezone string) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if strings.TrimSpace(timezone) == "" {
		timezone = "Asia/Tokyo"
	}
	return &Client{
		baseURL:  strings.TrimRight(base, "/"),
		timezone: timezone,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves the two-day forecast for a coordinate pair. Each call is
// one outbound GET; there is no retry and no caching.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (weather.Forecast, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("hourly", hourlyVariables)
	query.Set("daily", dailyVariables)
	query.Set("forecast_days", forecastDays)
	query.Set("timezone", c.timezone)
	endpoint := c.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weather.Forecast{}, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Forecast{}, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return weather.Forecast{}, &weather.UpstreamError{Status: resp.StatusCode}
	}

	var forecast weather.Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return weather.Forecast{}, fmt.Errorf("decode forecast response: %w", err)
	}
	return forecast, nil
}

var _ weather.Client = (*Client)(nil)
