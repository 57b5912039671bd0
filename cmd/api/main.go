package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"travelbook/cmd/app"
	"travelbook/internal/config"
	handlers "travelbook/internal/handler"
	"travelbook/internal/logger"
	"travelbook/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	log := logger.New(cfg.Log)

	if cfg.Auth.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start application")
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.WithError(err).Error("failed to close database")
		}
	}()

	handler := handlers.NewHandlers(application.Services, application.DB, cfg, log)

	var metrics *middleware.Metrics
	if cfg.MetricsEnabled {
		metrics = middleware.NewMetrics()
	}

	router := newRouter(handler, metrics)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
	if err := limiter.TrustProxies(cfg.RateLimit.TrustedProxies); err != nil {
		log.WithError(err).Fatal("invalid TRUSTED_PROXIES")
	}

	handlerChain := middleware.Chain(
		router,
		middleware.RecoverMiddleware(log),
		middleware.LoggingMiddleware(log),
		middleware.CORSMiddleware(cfg.FrontendURL),
		limiter.Middleware,
		middleware.AuthMiddleware(application.Verifier, cfg.Auth.CookieName),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	// Starting the server
	serverErr := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":     server.Addr,
			"database": cfg.DB.DbNAME,
			"metrics":  cfg.MetricsEnabled,
		}).Info("server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("server stopped unexpectedly")
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
		return
	}

	log.Info("server stopped")
}
