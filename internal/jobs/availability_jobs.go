package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"rentwheels/infras/kafka"
	"rentwheels/internal/availability"
	carModel "rentwheels/internal/domains/car/model"
	"rentwheels/shared"
	"rentwheels/shared/constant"
	"rentwheels/shared/timezone"
)

const forwardBuffer = 64

var ErrKafkaDisabled = errors.New("kafka is disabled")

// SweepReservations completes reservations whose end date has arrived and
// releases their cars.
func (jr *JobRunner) SweepReservations() {
	jr.runWithRecovery("SweepReservations", func() {
		ctx, scope := jr.otel.NewScope(context.Background(), constant.OtelJobScopeName, constant.OtelJobScopeName+".SweepReservations")
		defer scope.End()

		res, err := jr.engine.Sweep(ctx, timezone.Today(jr.clock))
		scope.TraceIfError(err)

		if err != nil {
			log.Error().Err(err).Msg("Reservation sweep finished with errors")
		}

		if res.Changed {
			log.Info().
				Strs("cars", res.ReleasedCarIDs).
				Strs("reservations", res.CompletedReservationIDs).
				Msg("Cars returned to the catalog")
		}
	})
}

// ForwardAvailabilityEvents publishes every in-process availability event
// to Kafka until ctx is done.
func (jr *JobRunner) ForwardAvailabilityEvents(ctx context.Context) error {
	if !jr.config.Kafka.Enable || jr.kafka == nil {
		return ErrKafkaDisabled
	}

	events, cancel := jr.notifier.Subscribe(forwardBuffer)
	defer cancel()

	topic := jr.config.Kafka.Topic.Availability

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}

			jr.runWithRecovery("ForwardAvailabilityEvent", func() {
				if err := jr.kafka.SendMessages(ctx, topic, kafka.Message{Key: string(event.Kind), Value: event}); err != nil {
					log.Error().Err(err).Str("kind", string(event.Kind)).Msg("Failed to forward availability event")
				}
			})
		}
	}
}

// ListenAvailabilityEvents drops catalog caches whenever any instance
// reports an availability change. It blocks until ctx is done.
func (jr *JobRunner) ListenAvailabilityEvents(ctx context.Context) error {
	if !jr.config.Kafka.Enable || jr.kafka == nil {
		return ErrKafkaDisabled
	}

	err := jr.kafka.Consume(ctx, jr.config.Kafka.ConsumerGroup, jr.config.Kafka.Topic.Availability, jr.HandleAvailabilityEvent)
	if err != nil {
		return fmt.Errorf("failed to consume availability events: %w", err)
	}

	return nil
}

func (jr *JobRunner) HandleAvailabilityEvent(ctx context.Context, msg kafkaGo.Message) error {
	ctx, scope := jr.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleAvailabilityEvent")
	defer scope.End()

	event, err := kafka.DecodeKafkaMessage[availability.Event](msg)
	if err != nil {
		scope.TraceIfError(err)

		// Malformed messages are committed and skipped.
		return nil
	}

	log.Debug().Str("kind", string(event.Kind)).Strs("cars", event.CarIDs).Msg("Availability event received")

	shared.InvalidateCaches(ctx, jr.cache, carModel.CachePrefixes()...)

	return nil
}
