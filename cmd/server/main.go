package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobni/internal/app"
	"jobni/internal/config"
	"jobni/internal/database/migration"
	"jobni/internal/observability"
	"jobni/migrations"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	observability.InitLogger(cfg.App.AppName, cfg.App.Environment, cfg.App.LogLevel)

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.OTEL.Enabled {
		shutdownTracing, err := observability.Setup(rootCtx, cfg.App.AppName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("tracing disabled")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdownTracing(ctx)
			}()
		}
	}

	bootstrap, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap app")
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Error().Err(err).Msg("cleanup error")
		}
	}()

	c := bootstrap.Container
	if cfg.App.AutoMigrate {
		runner := migration.Runner{FS: migrations.FS}
		if err := runner.Run(rootCtx, c.DB.SQLDB()); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
	}

	go c.Hub.Run(rootCtx)
	if c.RedisBus != nil {
		go func() {
			if err := c.RedisBus.Run(rootCtx); err != nil {
				log.Error().Err(err).Msg("message bus stopped")
			}
		}()
	}

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid HTTP port")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()
	log.Info().Str("addr", addr).Msg("jobni api listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server error")
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}
	stop()
}
