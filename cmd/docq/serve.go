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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/docq/internal/logger"
	"github.com/kailas-cloud/docq/internal/metrics"
	chiTransport "github.com/kailas-cloud/docq/internal/transport/chi"
	"github.com/kailas-cloud/docq/internal/version"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, env, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docq API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	a, err := newApp(c.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := ensureIndexes(c.Context(), a.repo, a.schemas, logger); err != nil {
		return err
	}

	metrics.RegisterQueryMetrics()
	metrics.RegisterHTTPMetrics()

	handler := chiTransport.NewRouter(
		chiTransport.NewServer(a.query, a.health),
		chiTransport.RouterOptions{
			APIKeys:     cfg.Auth.APIKeys,
			Logger:      logger,
			Middlewares: []func(http.Handler) http.Handler{metrics.Middleware("/metrics")},
		},
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
