package http

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/chore-planner/internal/domain/auth"
	"github.com/yanqian/chore-planner/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, authHandler *AuthHandler, authSvc auth.Service, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		errorHandlingMiddleware(logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)

	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/google", authHandler.GoogleLogin)
			authGroup.GET("/google/callback", authHandler.GoogleCallback)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware(authSvc), authHandler.Logout)
			authGroup.GET("/me", authMiddleware(authSvc), authHandler.Me)
		}

		protected := api.Group("", authMiddleware(authSvc))
		{
			draft := protected.Group("/profile/draft")
			{
				draft.GET("", handler.Draft)
				draft.POST("/chores", handler.AddChore)
				draft.DELETE("/chores/:index", handler.RemoveChore)
				draft.PATCH("/chores/:index", handler.UpdateChore)
				draft.POST("/items", handler.AddItem)
				draft.DELETE("/items/:index", handler.RemoveItem)
				draft.PATCH("/items/:index", handler.UpdateItem)
				draft.POST("/schedule/:day/slots", handler.AddSlot)
				draft.DELETE("/schedule/:day/slots/:index", handler.RemoveSlot)
				draft.PATCH("/schedule/:day/slots/:index", handler.UpdateSlot)
				draft.PATCH("/amenities", handler.UpdateAmenities)
			}
			protected.POST("/profile", handler.SubmitProfile)
			protected.GET("/results/forecast", handler.ResultsForecast)
		}
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
