package http

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/chore-planner/internal/domain/auth"
	"github.com/yanqian/chore-planner/internal/infra/config"
	apperrors "github.com/yanqian/chore-planner/pkg/errors"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	svc    auth.Service
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler constructs the auth transport handler.
func NewAuthHandler(svc auth.Service, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		cfg:    cfg,
		logger: logger.With("component", "http.auth_handler"),
	}
}

// Register creates a new email/password account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "auth_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "email_exists"):
			status = http.StatusConflict
			code = "email_exists"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, loginError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GoogleLogin redirects the browser to Google's consent screen. The PKCE
// verifier never leaves the state cookie.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, codeVerifier, codeChallenge, err := auth.NewOAuthState()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "auth_failed", "failed to generate oauth state", err))
		return
	}
	url, err := h.svc.GoogleAuthURL(c.Request.Context(), state, codeChallenge)
	if err != nil {
		status := http.StatusInternalServerError
		code := "auth_failed"
		if apperrors.IsCode(err, "auth_not_configured") {
			status = http.StatusServiceUnavailable
			code = "auth_not_configured"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	setOAuthStateCookie(c, state, codeVerifier)
	c.Redirect(http.StatusFound, url)
}

// GoogleCallback completes the OAuth code exchange and opens a session.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	payload, ok := readOAuthStateCookie(c)
	clearOAuthStateCookie(c)
	if !ok || c.Query("state") != payload.State {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "oauth state mismatch", nil))
		return
	}
	code := c.Query("code")
	if code == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "missing authorization code", nil))
		return
	}
	resp, err := h.svc.GoogleCallback(c.Request.Context(), code, payload.CodeVerifier)
	if err != nil {
		abortWithError(c, loginError(err))
		return
	}
	if redirect := h.cfg.Auth.Google.PostLoginRedirectURL; redirect != "" {
		c.Redirect(http.StatusFound, redirect+"#token="+resp.Token)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh rotates the session and issues a fresh token pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		status := http.StatusInternalServerError
		code := "auth_failed"
		switch {
		case apperrors.IsCode(err, "invalid_token"):
			status = http.StatusUnauthorized
			code = "invalid_token"
		case apperrors.IsCode(err, "user_not_found"):
			status = http.StatusUnauthorized
			code = "invalid_token"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the caller's session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return
	}
	if err := h.svc.Logout(c.Request.Context(), claims); err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "auth_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// Me returns the authenticated user's account view.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return
	}
	user, err := h.svc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		status := http.StatusInternalServerError
		code := "auth_failed"
		if apperrors.IsCode(err, "user_not_found") {
			status = http.StatusNotFound
			code = "not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, user)
}

func loginError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "auth_failed"
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "invalid_credentials"):
		status = http.StatusUnauthorized
		code = "invalid_credentials"
	case apperrors.IsCode(err, "invalid_token"):
		status = http.StatusUnauthorized
		code = "invalid_token"
	case apperrors.IsCode(err, "auth_not_configured"):
		status = http.StatusServiceUnavailable
		code = "auth_not_configured"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}
