package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/chore-planner/internal/domain/auth"
	"github.com/yanqian/chore-planner/internal/domain/flow"
	"github.com/yanqian/chore-planner/internal/domain/planner"
	"github.com/yanqian/chore-planner/internal/domain/weather"
	"github.com/yanqian/chore-planner/internal/infra/config"
	"github.com/yanqian/chore-planner/internal/infra/profilerepo"
	apperrors "github.com/yanqian/chore-planner/pkg/errors"
)

const testUserID int64 = 7

type routerFixture struct {
	server *http.Server
	flow   *flow.Flow
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	logger := newTestLogger()
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Weather: config.WeatherConfig{
			DefaultLatitude:  35.681,
			DefaultLongitude: 139.767,
		},
	}

	f := flow.New(logger)
	plannerSvc := planner.NewService(
		planner.Config{Timezone: time.FixedZone("JST", 9*3600)},
		profilerepo.NewMemoryRepository(),
		f,
		logger,
	)
	weatherSvc := &stubWeatherService{}
	authSvc := &stubAuthService{}

	handler := NewHandler(plannerSvc, weatherSvc, f, cfg, logger)
	authHandler := NewAuthHandler(authSvc, cfg, logger)
	return &routerFixture{
		server: NewRouter(cfg, handler, authHandler, authSvc, logger),
		flow:   f,
	}
}

func (fix *routerFixture) do(method, path, body string, authorized bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer good-token")
	}
	rec := httptest.NewRecorder()
	fix.server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestRouterRejectsMissingToken(t *testing.T) {
	fix := newRouterFixture(t)

	rec := fix.do(http.MethodGet, "/api/v1/profile/draft", "", false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "unauthorized", body.Error.Code)
}

func TestRouterRejectsBadToken(t *testing.T) {
	fix := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/draft", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	fix.server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "invalid_token", body.Error.Code)
}

func TestRouterDraftSeedsDefaults(t *testing.T) {
	fix := newRouterFixture(t)
	fix.flow.SessionStarted(testUserID)

	rec := fix.do(http.MethodGet, "/api/v1/profile/draft", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var view planner.DraftView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Empty(t, view.Chores)
	require.Len(t, view.Schedule, 2)
	require.Len(t, view.Schedule[0].Slots, 1)
	require.Equal(t, "09:00", view.Schedule[0].Slots[0].Start)
}

func TestRouterEditBeforeDraftLoad(t *testing.T) {
	fix := newRouterFixture(t)
	fix.flow.SessionStarted(testUserID)

	rec := fix.do(http.MethodPost, "/api/v1/profile/draft/chores", "", true)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "not_found", body.Error.Code)
}

func TestRouterSubmitValidationFailure(t *testing.T) {
	fix := newRouterFixture(t)
	fix.flow.SessionStarted(testUserID)

	rec := fix.do(http.MethodGet, "/api/v1/profile/draft", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = fix.do(http.MethodPost, "/api/v1/profile/draft/chores", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = fix.do(http.MethodPost, "/api/v1/profile", "", true)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "validation_failed", body.Error.Code)
	require.Contains(t, body.Error.Fields, "chores.0.name")
}

func TestRouterFullPlanningFlow(t *testing.T) {
	fix := newRouterFixture(t)
	fix.flow.SessionStarted(testUserID)

	// Results are locked until a profile is submitted.
	rec := fix.do(http.MethodGet, "/api/v1/results/forecast", "", true)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "profile_required", decodeErrorBody(t, rec.Body.Bytes()).Error.Code)

	require.Equal(t, http.StatusOK, fix.do(http.MethodGet, "/api/v1/profile/draft", "", true).Code)
	require.Equal(t, http.StatusOK, fix.do(http.MethodPost, "/api/v1/profile/draft/chores", "", true).Code)
	require.Equal(t, http.StatusOK, fix.do(http.MethodPatch, "/api/v1/profile/draft/chores/0", `{"name":"wash dishes"}`, true).Code)
	require.Equal(t, http.StatusOK, fix.do(http.MethodPost, "/api/v1/profile/draft/items", "", true).Code)
	require.Equal(t, http.StatusOK, fix.do(http.MethodPatch, "/api/v1/profile/draft/items/0", `{"name":"umbrella"}`, true).Code)
	require.Equal(t, http.StatusOK, fix.do(http.MethodPatch, "/api/v1/profile/draft/schedule/0/slots/0", `{"start":"10:00","end":"12:00"}`, true).Code)
	require.Equal(t, http.StatusOK, fix.do(http.MethodPatch, "/api/v1/profile/draft/amenities", `{"hasDryer":true}`, true).Code)

	rec = fix.do(http.MethodPost, "/api/v1/profile", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile planner.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Equal(t, "wash dishes", profile.Chores[0].Name)
	require.Equal(t, "10:00", profile.Schedule[0].Slots[0].Start)
	require.True(t, profile.HasDryer)

	rec = fix.do(http.MethodGet, "/api/v1/results/forecast", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var forecast weather.Forecast
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &forecast))
	require.NotEmpty(t, forecast.Hourly.Time)
}

func TestRouterRemoveChorePreservesSurvivors(t *testing.T) {
	fix := newRouterFixture(t)
	fix.flow.SessionStarted(testUserID)

	require.Equal(t, http.StatusOK, fix.do(http.MethodGet, "/api/v1/profile/draft", "", true).Code)
	require.Equal(t, http.StatusOK, fix.do(http.MethodPost, "/api/v1/profile/draft/chores", "", true).Code)
	rec := fix.do(http.MethodPost, "/api/v1/profile/draft/chores", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var view planner.DraftView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Chores, 2)
	secondID := view.Chores[1].ID

	rec = fix.do(http.MethodDelete, "/api/v1/profile/draft/chores/0", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Chores, 1)
	require.Equal(t, secondID, view.Chores[0].ID)
}

func TestRouterForecastUpstreamFailure(t *testing.T) {
	fix := newRouterFixture(t)
	fix.flow.SessionStarted(testUserID)
	fix.flow.ProfileSubmitted(testUserID)

	rec := fix.do(http.MethodGet, "/api/v1/results/forecast?lat=999", "", true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_request", decodeErrorBody(t, rec.Body.Bytes()).Error.Code)
}

type stubWeatherService struct{}

func (s *stubWeatherService) Forecast(_ context.Context, req weather.Request) (weather.Forecast, error) {
	if req.Latitude < -90 || req.Latitude > 90 {
		return weather.Forecast{}, apperrors.Wrap("invalid_input", "latitude must be within [-90, 90]", nil)
	}
	return weather.Forecast{
		Hourly: weather.HourlySeries{
			Time:          []string{"2024-01-02T00:00"},
			Temperature2m: []float64{4.2},
		},
		Daily: weather.DailySeries{UVIndexMax: []float64{2.1, 3.4}},
	}, nil
}

type stubAuthService struct{}

func (s *stubAuthService) Register(context.Context, auth.RegisterRequest) (auth.UserView, error) {
	return auth.UserView{}, nil
}

func (s *stubAuthService) Login(context.Context, auth.LoginRequest) (auth.LoginResponse, error) {
	return auth.LoginResponse{}, nil
}

func (s *stubAuthService) GoogleAuthURL(context.Context, string, string) (string, error) {
	return "", apperrors.Wrap("auth_not_configured", "google oauth is not configured", nil)
}

func (s *stubAuthService) GoogleCallback(context.Context, string, string) (auth.LoginResponse, error) {
	return auth.LoginResponse{}, apperrors.Wrap("auth_not_configured", "google oauth is not configured", nil)
}

func (s *stubAuthService) ValidateToken(_ context.Context, token string) (auth.Claims, error) {
	if token != "good-token" {
		return auth.Claims{}, apperrors.Wrap("invalid_token", "token validation failed", nil)
	}
	return auth.Claims{UserID: testUserID, Email: "taro@example.com", SessionID: "sess-1"}, nil
}

func (s *stubAuthService) Refresh(context.Context, string) (auth.LoginResponse, error) {
	return auth.LoginResponse{}, nil
}

func (s *stubAuthService) Profile(context.Context, int64) (auth.UserView, error) {
	return auth.UserView{}, nil
}

func (s *stubAuthService) Logout(context.Context, auth.Claims) error {
	return nil
}

type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decodeErrorBody(t *testing.T, raw []byte) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
