package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gposync/internal/config"
	"gposync/internal/db"
	"gposync/internal/logging"
	"gposync/internal/middleware"
	"gposync/internal/router"
	"gposync/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logging.Debug().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.Log.Level != "debug" && cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Server.SessionSecret == config.DefaultSessionSecret {
		logging.Warn().Msg("SESSION_SECRET is not set, sessions are signed with the default secret")
	}

	// Initialize Database
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.Migrate(gdb); err != nil {
		logging.Fatal().Err(err).Msg("Failed to migrate database")
	}

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Burst, cfg.RateLimit.Size)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create rate limiter")
	}

	r := router.New(router.Config{
		Services:      services.New(gdb),
		DB:            gdb,
		SessionSecret: cfg.Server.SessionSecret,
		SessionMaxAge: cfg.Server.SessionMaxAge,
		SecureCookies: cfg.Server.SecureCookies,
		BaseURL:       cfg.Server.BaseURL,
		LoginURL:      cfg.Server.LoginURL,
		RateLimiter:   limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Server forced to shutdown")
	}

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logging.Info().Msg("Server stopped")
}
