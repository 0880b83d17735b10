package weather

import (
	"context"
	"errors"
	"io"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/chore-planner/pkg/errors"
)

type stubClient struct {
	fetchFn func(ctx context.Context, lat, lon float64) (Forecast, error)
}

func (s *stubClient) Fetch(ctx context.Context, lat, lon float64) (Forecast, error) {
	if s.fetchFn != nil {
		return s.fetchFn(ctx, lat, lon)
	}
	return Forecast{}, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestForecastPassesCoordinates(t *testing.T) {
	expected := Forecast{
		Hourly: HourlySeries{
			Time:          []string{"2024-01-02T00:00"},
			Temperature2m: []float64{4.2},
		},
		Daily: DailySeries{UVIndexMax: []float64{2.1, 3.4}},
	}
	client := &stubClient{
		fetchFn: func(ctx context.Context, lat, lon float64) (Forecast, error) {
			require.Equal(t, 35.681, lat)
			require.Equal(t, 139.767, lon)
			return expected, nil
		},
	}
	svc := NewService(client, newTestLogger())

	got, err := svc.Forecast(context.Background(), Request{Latitude: 35.681, Longitude: 139.767})
	require.NoError(t, err)
	require.Equal(t, expected, got)
}

func TestForecastRejectsOutOfRangeCoordinates(t *testing.T) {
	svc := NewService(&stubClient{}, newTestLogger())

	_, err := svc.Forecast(context.Background(), Request{Latitude: 91})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.Forecast(context.Background(), Request{Longitude: -181})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestForecastMapsUpstreamError(t *testing.T) {
	client := &stubClient{
		fetchFn: func(ctx context.Context, lat, lon float64) (Forecast, error) {
			return Forecast{}, &UpstreamError{Status: 500}
		},
	}
	svc := NewService(client, newTestLogger())

	_, err := svc.Forecast(context.Background(), Request{})
	require.True(t, apperrors.IsCode(err, "weather_upstream_error"))

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	require.Equal(t, 500, upstream.Status)
}

func TestForecastMapsNetworkError(t *testing.T) {
	client := &stubClient{
		fetchFn: func(ctx context.Context, lat, lon float64) (Forecast, error) {
			return Forecast{}, errors.New("dial tcp: connection refused")
		},
	}
	svc := NewService(client, newTestLogger())

	_, err := svc.Forecast(context.Background(), Request{})
	require.True(t, apperrors.IsCode(err, "weather_network_error"))
}
