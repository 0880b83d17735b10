package http

import (
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/chore-planner/internal/domain/planner"
	"github.com/yanqian/chore-planner/internal/domain/weather"
	"github.com/yanqian/chore-planner/internal/infra/config"
	apperrors "github.com/yanqian/chore-planner/pkg/errors"
)

// ResultsGate reports whether the user may navigate to the results view.
type ResultsGate interface {
	CanViewResults(userID int64) bool
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	plannerSvc planner.Service
	weatherSvc weather.Service
	gate       ResultsGate
	cfg        *config.Config
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(plannerSvc planner.Service, weatherSvc weather.Service, gate ResultsGate, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		plannerSvc: plannerSvc,
		weatherSvc: weatherSvc,
		gate:       gate,
		cfg:        cfg,
		logger:     logger.With("component", "http.handler"),
	}
}

// Draft loads (or reloads) the editable profile draft.
func (h *Handler) Draft(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return
	}
	view, err := h.plannerSvc.Draft(c.Request.Context(), claims.UserID)
	if err != nil {
		abortWithError(c, draftError(err))
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddChore appends a blank chore row to the draft.
func (h *Handler) AddChore(c *gin.Context) {
	h.applyEdit(c, func(userID int64) (planner.DraftView, error) {
		return h.plannerSvc.AddChore(c.Request.Context(), userID)
	})
}

// RemoveChore deletes the chore row at the given position.
func (h *Handler) RemoveChore(c *gin.Context) {
	index, ok := pathIndex(c, "index")
	if !ok {
		return
	}
	h.applyEdit(c, func(userID int64) (planner.DraftView, error) {
		return h.plannerSvc.RemoveChore(c.Request.Context(), userID, index)
	})
}

// UpdateChore patches fields on the chore row at the given position.
func (h *Handler) UpdateChore(c *gin.Context) {
	index, ok := pathIndex(c, "index")
	if !ok {
		return
	}
	var patch planner.ChorePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	h.applyEdit(c, func(userID int64) (planner.DraftView, error) {
		return h.plannerSvc.UpdateChore(c.Request.Context(), userID, index, patch)
	})
}

// AddItem appends a blank belonging row to the draft.
func (h *Handler) AddItem(c *gin.Context) {
	h.applyEdit(c, func(userID int64) (planner.DraftView, error) {
		return h.plannerSvc.AddItem(c.Request.Context(), userID)
	})
}

// RemoveItem deletes the belonging row at the given position.
func (h *Handler) RemoveItem(c *gin.Context) {
	index, ok := pathIndex(c, "index")
	if !ok {
		return
	}
	h.applyEdit(c, func(userID int64) (planner.DraftView, error) {
		return h.plannerSvc.RemoveItem(c.Request.Context(), userID, index)
	})
}

// UpdateItem patches fields on the belonging row at the given position.
func (h *Handler) UpdateItem(c *gin.Context) {
	index, ok := pathIndex(c, "index")
	if !ok {
		return
	}
	var patch planner.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	h.applyEdit(c, func(userID int64) (planner.DraftView, error) {
		return h.plannerSvc.UpdateItem(c.Request.Context(), userID, index, patch)
	})
}

// AddSlot appends a default time slot to one schedule day.
func (h *Handler) AddSlot(c *gin.Context) {
	day, ok := pathIndex(c, "day")
	if !ok {
		return
	}
	h.applyEdit(c, func(userID int64) (planner.DraftView, error) {
		return h.plannerSvc.AddSlot(c.Request.Context(), userID, day)
	})
}

// RemoveSlot deletes the slot at the given position within a schedule day.
func (h *Handler) RemoveSlot(c *gin.Context) {
	day, ok := pathIndex(c, "day")
	if !ok {
		return
	}
	index, ok := pathIndex(c, "index")
	if !ok {
		return
	}
	h.applyEdit(c, func(userID int64) (planner.DraftView, error) {
		return h.plannerSvc.RemoveSlot(c.Request.Context(), userID, day, index)
	})
}

// UpdateSlot patches start/end on the slot at the given position.
func (h *Handler) UpdateSlot(c *gin.Context) {
	day, ok := pathIndex(c, "day")
	if !ok {
		return
	}
	index, ok := pathIndex(c, "index")
	if !ok {
		return
	}
	var patch planner.SlotPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	h.applyEdit(c, func(userID int64) (planner.DraftView, error) {
		return h.plannerSvc.UpdateSlot(c.Request.Context(), userID, day, index, patch)
	})
}

// UpdateAmenities toggles the household amenity flags on the draft.
func (h *Handler) UpdateAmenities(c *gin.Context) {
	var patch planner.AmenitiesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	h.applyEdit(c, func(userID int64) (planner.DraftView, error) {
		return h.plannerSvc.UpdateAmenities(c.Request.Context(), userID, patch)
	})
}

// SubmitProfile validates the draft and persists the reconciled profile.
func (h *Handler) SubmitProfile(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return
	}
	profile, err := h.plannerSvc.Submit(c.Request.Context(), claims.UserID)
	if err != nil {
		var validation *planner.ValidationError
		if errors.As(err, &validation) {
			httpErr := NewHTTPError(http.StatusUnprocessableEntity, "validation_failed", "profile contains invalid fields", err)
			abortWithError(c, httpErr.WithFields(validation.Fields))
			return
		}
		abortWithError(c, draftError(err))
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ResultsForecast returns the two-day forecast backing the results view.
// Access requires a submitted profile in the current session.
func (h *Handler) ResultsForecast(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return
	}
	if !h.gate.CanViewResults(claims.UserID) {
		abortWithError(c, NewHTTPError(http.StatusForbidden, "profile_required", "submit a profile before viewing results", nil))
		return
	}

	req := weather.Request{
		Latitude:  h.cfg.Weather.DefaultLatitude,
		Longitude: h.cfg.Weather.DefaultLongitude,
	}
	if raw := c.Query("lat"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid lat", err))
			return
		}
		req.Latitude = lat
	}
	if raw := c.Query("lon"); raw != "" {
		lon, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid lon", err))
			return
		}
		req.Longitude = lon
	}

	forecast, err := h.weatherSvc.Forecast(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "forecast_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "weather_upstream_error"):
			status = http.StatusBadGateway
			code = "weather_upstream_error"
		case apperrors.IsCode(err, "weather_network_error"):
			status = http.StatusBadGateway
			code = "weather_network_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, forecast)
}

func (h *Handler) applyEdit(c *gin.Context, edit func(userID int64) (planner.DraftView, error)) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return
	}
	view, err := edit(claims.UserID)
	if err != nil {
		abortWithError(c, draftError(err))
		return
	}
	c.JSON(http.StatusOK, view)
}

func pathIndex(c *gin.Context, name string) (int, bool) {
	index, err := strconv.Atoi(c.Param(name))
	if err != nil || index < 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid "+name, err))
		return 0, false
	}
	return index, true
}

func draftError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "draft_failed"
	switch {
	case apperrors.IsCode(err, "not_found"):
		status = http.StatusNotFound
		code = "not_found"
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "store_error"):
		code = "store_error"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
