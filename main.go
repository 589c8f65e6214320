package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/api"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/tracing"
	zlog "github.com/rs/zerolog/log"
)

const version = "0.1.0"

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}

	// 1.5 Init Logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	zlog.Info().Str("env", cfg.AppEnv).Msg("logger initialized")

	// 2. Tracing
	tp, err := tracing.Init(context.Background(), tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to init tracing")
	}

	// 3. Setup Router
	r := api.NewRouter(cfg)

	// 4. Start Server
	// No WriteTimeout: upstream calls are unbounded unless UPSTREAM_TIMEOUT is set.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zlog.Info().Str("port", cfg.Port).Msg("aggregator service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("shutdown error")
	}
	if err := tp.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("tracer shutdown error")
	}
}
