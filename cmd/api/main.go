package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"roombooker/internal/api"
	"roombooker/internal/auth"
	"roombooker/internal/config"
	"roombooker/internal/database"
	"roombooker/internal/events"
	"roombooker/internal/logging"
	"roombooker/internal/metrics"
	"roombooker/internal/repository"
	"roombooker/internal/seed"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	store, err := database.New(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer store.Close()

	tokens := initTokenStore(cfg, &logger)
	gate := auth.NewGate(cfg.Auth, tokens)

	bus := events.NewBus()
	for _, eventType := range []string{events.EventBookingCreated, events.EventBookingUpdated, events.EventBookingDeleted} {
		bus.Subscribe(eventType, events.AuditSubscriber(&logger))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seedStore(ctx, cfg, store, &logger); err != nil {
		return err
	}

	startMetrics(ctx, cfg, &logger)

	httpServer := api.NewHTTPServer(cfg, store, gate, bus, &logger)
	return serve(ctx, httpServer, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// initTokenStore prefers Redis (shared token set across instances) with an
// in-memory fallback; without Redis configured the memory store stands
// alone, matching the process-lifetime token semantics.
func initTokenStore(cfg *config.Config, logger *zerolog.Logger) repository.TokenStore {
	memory := repository.NewMemoryTokenStore()
	if cfg.Redis.Address == "" {
		return memory
	}

	client := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(context.Background(), client); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, using in-memory token store")
		return memory
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return repository.NewFailoverTokenStore(repository.NewRedisTokenStore(client), memory, logger)
}

func seedStore(ctx context.Context, cfg *config.Config, store *database.Store, logger *zerolog.Logger) error {
	if !cfg.Seed.Enabled && os.Getenv("SEED") != "true" {
		return nil
	}

	names, err := seed.LoadNames(cfg.Seed.NamesPath)
	if err != nil {
		logger.Warn().Err(err).Str("names_path", cfg.Seed.NamesPath).Msg("seed names unavailable, using defaults")
		names = seed.DefaultNames()
	}
	return seed.Run(ctx, store, names, logger)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

func serve(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info().Msg("API server stopped")
	return nil
}
