package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"rentwheels/config"
	"rentwheels/di"
	"rentwheels/helper"
	"rentwheels/internal/jobs"
	"rentwheels/shared/logger"
)

const closeTimeout = 10 * time.Second

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseJSONOutput(cfg)
	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	app, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.App.SeedOnStart {
		if _, err := app.Seeder.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to seed catalog")
		}
	}

	runBackground(ctx, "ForwardAvailabilityEvents", app.Jobs.ForwardAvailabilityEvents)
	runBackground(ctx, "ListenAvailabilityEvents", app.Jobs.ListenAvailabilityEvents)

	if cfg.Scheduler.Enable {
		app.Scheduler.Start()
	}

	if err := app.HTTP.Serve(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server stopped with error")
	}

	if cfg.Scheduler.Enable {
		app.Scheduler.Stop()
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := app.Close(closeCtx); err != nil {
		log.Error().Err(err).Msg("Failed to release resources")
	}
}

func runBackground(ctx context.Context, name string, fn func(context.Context) error) {
	go func() {
		err := fn(ctx)

		switch {
		case errors.Is(err, jobs.ErrKafkaDisabled):
			log.Info().Str("job", name).Msg("Kafka disabled, job not started")
		case err != nil:
			log.Error().Err(err).Str("job", name).Msg("Background job stopped")
		}
	}()
}
