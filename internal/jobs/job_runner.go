package jobs

import (
	"github.com/rs/zerolog/log"

	"rentwheels/config"
	"rentwheels/infras/kafka"
	"rentwheels/infras/otel"
	"rentwheels/internal/availability"
	"rentwheels/shared/cache"
	"rentwheels/shared/timezone"
)

// JobRunner owns the background work of the service: the reservation sweep
// and the fan-out of availability changes to other instances.
type JobRunner struct {
	config   *config.Config
	engine   availability.Engine
	notifier availability.Notifier
	kafka    kafka.Client
	cache    cache.RedisCache
	clock    timezone.Clock
	otel     otel.Otel
}

func NewJobRunner(
	cfg *config.Config,
	engine availability.Engine,
	notifier availability.Notifier,
	kafkaClient kafka.Client,
	cache cache.RedisCache,
	clock timezone.Clock,
	otel otel.Otel,
) *JobRunner {
	return &JobRunner{
		config:   cfg,
		engine:   engine,
		notifier: notifier,
		kafka:    kafkaClient,
		cache:    cache,
		clock:    clock,
		otel:     otel,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery runs jobFunc and logs a panic instead of letting it take
// down the scheduler goroutine.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("job", jobName).Interface("panic", r).Msg("Job panicked")
		}
	}()

	log.Debug().Str("job", jobName).Msg("Starting job")
	jobFunc()
	log.Debug().Str("job", jobName).Msg("Job completed")
}
