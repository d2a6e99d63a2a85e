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

	"librarydesk/internal/config"
	apphttp "librarydesk/internal/http"
	"librarydesk/internal/httpx"
	"librarydesk/internal/library"
	"librarydesk/internal/metrics"
	"librarydesk/internal/platform/flash"
	"librarydesk/internal/platform/logger"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "librarydesk: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := library.NewCatalog()
	if cfg.SeedDemo {
		if err := library.SeedDemo(catalog); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		log.Info("demo data seeded")
	}

	recorder := metrics.New()
	svc := library.NewService(catalog, log, recorder)
	webHandler := apphttp.NewWebHandler(svc, flash.NewStore(cfg.SecretKey), log)
	router := apphttp.NewRouter(webHandler, recorder.Handler())

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newHandler(ctx, cfg, log, recorder, router),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newHandler wraps the router with the middleware chain, outermost first.
func newHandler(ctx context.Context, cfg *config.Config, log *zap.Logger, obs httpx.RequestObserver, router http.Handler) http.Handler {
	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	return httpx.Chain(router,
		httpx.RequestIDMiddleware(log),
		httpx.AccessLogMiddleware(log, obs),
		httpx.RecoveryMiddleware(log),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)
}
