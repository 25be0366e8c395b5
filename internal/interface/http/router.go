package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/cocktail-bac/internal/domain/auth"
	"github.com/yanqian/cocktail-bac/internal/infra/config"
	"github.com/yanqian/cocktail-bac/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, authHandler *AuthHandler, authSvc auth.Service, recorder *metrics.Recorder, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	useJSONFieldNames()

	logger = logger.With("component", "http.router")
	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(logger),
		metricsMiddleware(recorder),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(logger),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled && recorder != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(recorder.Handler()))
	}

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, logger))
	{
		bacGroup := api.Group("/bac")
		bacGroup.POST("/alcohol", handler.Alcohol)
		bacGroup.POST("/estimate", handler.Estimate)
		bacGroup.POST("/project", handler.Project)
		bacGroup.POST("/risk", handler.Risk)
		bacGroup.POST("/summary", handler.Summary)
		bacGroup.GET("/stats", handler.Stats)

		authGroup := api.Group("/auth")
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)

		me := api.Group("/me")
		me.Use(authMiddleware(authSvc))
		me.GET("/profile", authHandler.GetProfile)
		me.PUT("/profile", authHandler.UpdateProfile)
		me.POST("/bac/summary", handler.MySummary)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
