package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentwheels/config"
	"rentwheels/infras/kafka"
	kafkaMocks "rentwheels/infras/kafka/mocks"
	"rentwheels/infras/otel/mocks"
	"rentwheels/internal/availability"
	engineMocks "rentwheels/internal/availability/mocks"
	"rentwheels/internal/jobs"
	cacheMocks "rentwheels/shared/cache/mocks"
	"rentwheels/shared/timezone"
)

type fixture struct {
	cfg      *config.Config
	engine   *engineMocks.MockEngine
	kafka    *kafkaMocks.MockClient
	cache    *cacheMocks.MockRedisCache
	notifier availability.Notifier
	runner   *jobs.JobRunner
}

func newFixture(t *testing.T, kafkaEnabled bool) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Kafka.Enable = kafkaEnabled
	cfg.Kafka.ConsumerGroup = "rentwheels"
	cfg.Kafka.Topic.Availability = "rentwheels.availability"
	cfg.Scheduler.SweepSpec = "@every 30s"

	f := fixture{
		cfg:      cfg,
		engine:   engineMocks.NewMockEngine(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		notifier: availability.NewNotifier(),
	}

	clock := timezone.FixedClock{At: time.Date(2024, 1, 3, 6, 0, 0, 0, time.UTC)}
	f.runner = jobs.NewJobRunner(cfg, f.engine, f.notifier, f.kafka, f.cache, clock, mocks.NewOtel())

	return f
}

func TestSweepReservations(t *testing.T) {
	t.Run("sweeps for today", func(t *testing.T) {
		f := newFixture(t, false)

		f.engine.EXPECT().Sweep(gomock.Any(), time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)).
			Return(availability.SweepResult{Changed: true, ReleasedCarIDs: []string{"car-1"}, CompletedReservationIDs: []string{"res-1"}}, nil)

		f.runner.SweepReservations()
	})

	t.Run("errors are logged", func(t *testing.T) {
		f := newFixture(t, false)

		f.engine.EXPECT().Sweep(gomock.Any(), gomock.Any()).Return(availability.SweepResult{}, errors.New("db down"))

		assert.NotPanics(t, f.runner.SweepReservations)
	})

	t.Run("panics are recovered", func(t *testing.T) {
		f := newFixture(t, false)

		f.engine.EXPECT().Sweep(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, time.Time) (availability.SweepResult, error) {
				panic("boom")
			})

		assert.NotPanics(t, f.runner.SweepReservations)
	})
}

func TestForwardAvailabilityEvents(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t, false)

		assert.ErrorIs(t, f.runner.ForwardAvailabilityEvents(context.Background()), jobs.ErrKafkaDisabled)
		assert.ErrorIs(t, f.runner.ListenAvailabilityEvents(context.Background()), jobs.ErrKafkaDisabled)
	})

	t.Run("publishes to the availability topic", func(t *testing.T) {
		f := newFixture(t, true)

		sent := make(chan kafka.Message, 1)

		f.kafka.EXPECT().SendMessages(gomock.Any(), "rentwheels.availability", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				select {
				case sent <- messages[0]:
				default:
				}

				return nil
			}).MinTimes(1)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() { done <- f.runner.ForwardAvailabilityEvents(ctx) }()

		event := availability.Event{Kind: availability.EventBooked, CarIDs: []string{"car-1"}}

		var msg kafka.Message

	publish:
		for {
			f.notifier.Publish(event)

			select {
			case msg = <-sent:
				break publish
			case <-time.After(10 * time.Millisecond):
			}
		}

		cancel()
		require.NoError(t, <-done)

		assert.Equal(t, string(availability.EventBooked), msg.Key)
		assert.Equal(t, event, msg.Value)
	})
}

func TestHandleAvailabilityEvent(t *testing.T) {
	t.Run("invalidates catalog caches", func(t *testing.T) {
		f := newFixture(t, true)

		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(3)

		err := f.runner.HandleAvailabilityEvent(context.Background(), kafkaGo.Message{
			Value: []byte(`{"kind":"availability.swept","car_ids":["car-1"]}`),
		})

		require.NoError(t, err)
	})

	t.Run("malformed message is skipped", func(t *testing.T) {
		f := newFixture(t, true)

		err := f.runner.HandleAvailabilityEvent(context.Background(), kafkaGo.Message{Value: []byte("not json")})

		require.NoError(t, err)
	})
}

func TestListenAvailabilityEvents(t *testing.T) {
	f := newFixture(t, true)

	f.kafka.EXPECT().Consume(gomock.Any(), "rentwheels", "rentwheels.availability", gomock.Any()).Return(nil)

	require.NoError(t, f.runner.ListenAvailabilityEvents(context.Background()))
}
