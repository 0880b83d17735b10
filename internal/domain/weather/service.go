package weather

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/yanqian/chore-planner/pkg/errors"
)

// Service exposes forecast retrieval to the results flow.
type Service interface {
	Forecast(ctx context.Context, req Request) (Forecast, error)
}

// Client fetches a two-day forecast for a coordinate pair.
type Client interface {
	Fetch(ctx context.Context, lat, lon float64) (Forecast, error)
}

type service struct {
	client Client
	logger *slog.Logger
}

// NewService wires up the weather domain.
func NewService(client Client, logger *slog.Logger) Service {
	return &service{
		client: client,
		logger: logger.With("component", "weather.service"),
	}
}

func (s *service) Forecast(ctx context.Context, req Request) (Forecast, error) {
	if req.Latitude < -90 || req.Latitude > 90 {
		return Forecast{}, apperrors.Wrap("invalid_input", "latitude must be within [-90, 90]", nil)
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return Forecast{}, apperrors.Wrap("invalid_input", "longitude must be within [-180, 180]", nil)
	}

	forecast, err := s.client.Fetch(ctx, req.Latitude, req.Longitude)
	if err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			return Forecast{}, apperrors.Wrap("weather_upstream_error", "forecast provider rejected the request", err)
		}
		return Forecast{}, apperrors.Wrap("weather_network_error", "failed to reach forecast provider", err)
	}

	s.logger.Info("forecast fetched", "lat", req.Latitude, "lon", req.Longitude, "hours", len(forecast.Hourly.Time))
	return forecast, nil
}
