package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesapi/config"
	"notesapi/handler"
	"notesapi/logging"
	"notesapi/repository"
	"notesapi/services"
	"notesapi/usecase"
	"notesapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		logging.New(os.Stderr, "text", "error").Error(context.Background(), "server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UsingDevSecret {
		log.Warn(ctx, "JWT_SECRET not set, signing tokens with the development default; never use this outside development")
	}

	if err := utils.InitValidator(); err != nil {
		return err
	}
	if err := utils.RegisterSystemMetrics(prometheus.DefaultRegisterer); err != nil {
		log.Warn(ctx, "system metrics not registered", "error", err)
	}

	store, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error(closeCtx, "failed to close store", "error", err)
		}
	}()
	log.Info(ctx, "store ready", "driver", cfg.Database.Driver)

	limiter := services.NoopLimiter()
	if cfg.RateLimit.RedisURL != "" {
		client, err := services.ConnectRedis(ctx, cfg.RateLimit.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		limiter = services.NewRedisLoginLimiter(client, cfg.RateLimit.Limit, cfg.RateLimit.Window)
		log.Info(ctx, "login rate limiting enabled", "limit", cfg.RateLimit.Limit, "window", cfg.RateLimit.Window)
	}

	tokens := services.NewTokenService(cfg.JWTSecret)
	hasher := services.NewPasswordHasher(services.DefaultBcryptCost)
	exposeDetails := !cfg.IsProduction()

	users := usecase.NewUserService(store, hasher, tokens, log)
	notes := usecase.NewNotesService(store, services.NewMarkdownRenderer(), log)

	router := handler.NewRouter(handler.RouterDeps{
		Config: cfg,
		Log:    log,
		Store:  store,
		Tokens: tokens,
		Auth:   handler.NewAuthHandler(users, limiter, log, exposeDetails),
		Notes:  handler.NewNotesHandler(notes, log, exposeDetails),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server listening", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
