package weather

import "fmt"

// Request captures the coordinate pair the results view asks a forecast for.
type Request struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Forecast is the upstream payload handed to the recommendation flow.
// It is fetched fresh per request and never persisted.
type Forecast struct {
	Hourly HourlySeries `json:"hourly"`
	Daily  DailySeries  `json:"daily"`
}

// HourlySeries holds value sequences aligned by index to Time.
// RelativeHumidity2m is optional upstream; absent stays nil, never zeroes.
type HourlySeries struct {
	Time                     []string  `json:"time"`
	Temperature2m            []float64 `json:"temperature_2m"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	WindSpeed10m             []float64 `json:"wind_speed_10m"`
	RelativeHumidity2m       []float64 `json:"relative_humidity_2m,omitempty"`
}

// DailySeries holds one value per forecast day.
type DailySeries struct {
	UVIndexMax []float64 `json:"uv_index_max"`
}

// UpstreamError reports a non-success status from the forecast provider.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("forecast upstream returned status %d", e.Status)
}
