package di

import (
	"context"
	"errors"

	"rentwheels/infras/kafka"
	"rentwheels/infras/otel"
	"rentwheels/infras/postgres"
	"rentwheels/internal/jobs"
	"rentwheels/internal/scheduler"
	"rentwheels/internal/seeder"
	"rentwheels/transport/http"
)

// App is everything cmd/app starts and stops.
type App struct {
	HTTP      *http.HTTP
	Scheduler *scheduler.Scheduler
	Jobs      *jobs.JobRunner
	Seeder    *seeder.Seeder
	DB        *postgres.Connection
	Kafka     kafka.Client
	Otel      otel.Otel
}

// Close releases the connections opened by the injector.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(
		a.Kafka.Close(),
		a.Otel.Shutdown(ctx),
		a.DB.Close(),
	)
}
