package handler

import (
	"context"
	"net/http"

	"notesapi/config"
	"notesapi/logging"
	"notesapi/middleware"
	"notesapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Version = "1.0.0"

type RouterDeps struct {
	Config  *config.Config
	Log     logging.Logger
	Store   Pinger
	Tokens  middleware.TokenVerifier
	Auth    *AuthHandler
	Notes   *NotesHandler
	Metrics http.Handler
}

// NewRouter wires middleware and routes. Metrics defaults to the global
// Prometheus registry.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		deps.Log.Error(context.Background(), "invalid trusted proxies, trusting none", "error", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(
		middleware.RecoveryMiddleware(deps.Log, !cfg.IsProduction()),
		middleware.RequestTracingMiddleware(),
		middleware.AccessLogMiddleware(deps.Log),
		middleware.MetricsMiddleware(),
		middleware.SecurityHeaders(),
		middleware.CORSMiddleware(cfg.CORS),
		middleware.RequestSizeLimiter(cfg.MaxBodyBytes),
	)

	health := NewHealthHandler(deps.Store, cfg.Environment, Version)
	router.GET("/", health.Info)
	router.GET("/health", health.Health)

	metrics := deps.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	router.GET("/metrics", gin.WrapH(metrics))

	requireAuth := middleware.AuthMiddleware(deps.Tokens)

	auth := router.Group("/auth")
	{
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/login", deps.Auth.Login)
		auth.GET("/profile", requireAuth, deps.Auth.Profile)
	}

	notes := router.Group("/notes", requireAuth)
	{
		notes.POST("", deps.Notes.Create)
		notes.GET("", deps.Notes.List)
		notes.GET("/:id", deps.Notes.Get)
		notes.GET("/:id/html", deps.Notes.RenderHTML)
		notes.PUT("/:id", deps.Notes.Update)
		notes.DELETE("/:id", deps.Notes.Delete)
	}

	router.NoRoute(func(c *gin.Context) {
		utils.NotFound(c, "Route not found")
	})

	return router
}
