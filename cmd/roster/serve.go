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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/roster/internal/config"
	logpkg "github.com/kailas-cloud/roster/internal/logger"
	"github.com/kailas-cloud/roster/internal/metrics"
	chiTransport "github.com/kailas-cloud/roster/internal/transport/chi"
	healthuc "github.com/kailas-cloud/roster/internal/usecase/health"
	"github.com/kailas-cloud/roster/internal/version"
)

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: config/<ENV>.yaml)")
	return cmd
}

// loadConfig reads an explicit path, or config/<ENV>.yaml when path is empty.
func loadConfig(env, path string) (config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(env)
}

func serve(ctx context.Context, configPath string) error {
	env := config.GetEnv()

	cfg, err := loadConfig(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting roster API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		logger.Error("Database unavailable", zap.Error(err))
		return err
	}
	defer store.Close()
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	var extras []healthuc.Checker
	if cfg.Seed.File != "" {
		extras = append(extras, seedChecker{path: cfg.Seed.File})
	}
	svc := newServices(store, cfg, extras...)

	if cfg.Seed.File != "" {
		if err := seedIfEmpty(logpkg.ContextWithLogger(ctx, logger), svc, cfg.Seed.File); err != nil {
			logger.Error("Seeding failed", zap.Error(err))
			return err
		}
	}

	server := chiTransport.NewServer(svc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-quit:
		logger.Info("Received shutdown signal")
	case err := <-serveErr:
		logger.Error("HTTP server error", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
