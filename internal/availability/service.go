package availability

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/engine_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"rentwheels/infras/otel"
	carModel "rentwheels/internal/domains/car/model"
	carRepo "rentwheels/internal/domains/car/repository"
	reservationModel "rentwheels/internal/domains/reservation/model"
	reservationRepo "rentwheels/internal/domains/reservation/repository"
	"rentwheels/shared"
	"rentwheels/shared/cache"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/lock"
	gRepo "rentwheels/shared/repository"
	"rentwheels/shared/timezone"
)

// SweepResult reports what a sweep changed.
type SweepResult struct {
	Changed                 bool     `json:"changed"`
	CompletedReservationIDs []string `json:"completed_reservation_ids"`
	ReleasedCarIDs          []string `json:"released_car_ids"`
}

type Engine interface {
	Sweep(ctx context.Context, today time.Time) (SweepResult, error)
	DescribeReturn(ctx context.Context, carName string, today time.Time) (string, error)
	ReturnInfoByID(ctx context.Context, carID string, today time.Time) (string, error)
}

type engineImpl struct {
	carRepo         carRepo.Car
	reservationRepo reservationRepo.Reservation
	transactor      gRepo.Transactor
	locks           *lock.KeyedMutex
	notifier        Notifier
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	carRepo carRepo.Car,
	reservationRepo reservationRepo.Reservation,
	transactor gRepo.Transactor,
	locks *lock.KeyedMutex,
	notifier Notifier,
	cache cache.RedisCache,
	otel otel.Otel,
) Engine {
	return &engineImpl{
		carRepo:         carRepo,
		reservationRepo: reservationRepo,
		transactor:      transactor,
		locks:           locks,
		notifier:        notifier,
		cache:           cache,
		otel:            otel,
	}
}

// Sweep completes every Upcoming reservation that has ended by today and
// releases its car. Each transition commits on its own under the car's lock;
// a failed transition is reported and the rest still run.
func (e *engineImpl) Sweep(ctx context.Context, today time.Time) (res SweepResult, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelEngineScopeName, constant.OtelEngineScopeName+".Sweep")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = SweepResult{CompletedReservationIDs: []string{}, ReleasedCarIDs: []string{}}

	due, err := e.reservationRepo.GetAll(ctx, gDto.QueryParams{}, gDto.NewFilterGroup(
		gDto.Filter{Field: reservationModel.FieldStatus, Value: reservationModel.StatusUpcoming, Operator: gDto.FilterOperatorEq, Table: reservationModel.TableName},
		gDto.Filter{Field: reservationModel.FieldEndDate, Value: today, Operator: gDto.FilterOperatorLessEq, Table: reservationModel.TableName},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to load active reservations")

		return res, fmt.Errorf("failed to load active reservations: %w", err)
	}

	transitions := Reconcile(due, today)
	if len(transitions) == 0 {
		return res, nil
	}

	var errs []error

	for _, transition := range transitions {
		completed, released, err := e.apply(ctx, transition)
		if err != nil {
			log.Error().Err(err).Str("reservation_id", transition.ReservationID).Msg("failed to complete reservation")

			errs = append(errs, err)

			continue
		}

		if completed {
			res.CompletedReservationIDs = append(res.CompletedReservationIDs, transition.ReservationID)
		}

		if released {
			res.ReleasedCarIDs = append(res.ReleasedCarIDs, transition.CarID)
		}
	}

	res.Changed = len(res.ReleasedCarIDs) > 0

	if len(res.CompletedReservationIDs) > 0 {
		log.Info().
			Int("completed", len(res.CompletedReservationIDs)).
			Int("released", len(res.ReleasedCarIDs)).
			Msg("reservations swept")

		e.notifier.Publish(Event{
			Kind:           EventSwept,
			CarIDs:         res.ReleasedCarIDs,
			ReservationIDs: res.CompletedReservationIDs,
			OccurredAt:     timezone.Now(),
		})

		go func() {
			c := context.WithoutCancel(ctx)

			shared.InvalidateCaches(c, e.cache, carModel.CachePrefixes()...)
		}()
	}

	return res, errors.Join(errs...)
}

// apply commits one transition. The reservation is re-read under lock so a
// transition already applied elsewhere is skipped.
func (e *engineImpl) apply(ctx context.Context, transition Transition) (completed, released bool, err error) {
	unlock := e.locks.Lock(transition.CarID)
	defer unlock()

	err = e.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		reservationFilter := shared.FilterByID(transition.ReservationID, reservationModel.FieldID, reservationModel.TableName)

		reservation, err := e.reservationRepo.GetForUpdateTx(ctx, tx, reservationFilter)
		if err != nil {
			return fmt.Errorf("failed to lock reservation: %w", err)
		}

		if !reservation.IsUpcoming() {
			return nil
		}

		now := timezone.Now()

		if err = e.reservationRepo.UpdateTx(ctx, tx, map[string]any{
			reservationModel.FieldStatus: reservationModel.StatusCompleted,
			constant.FieldModifiedAt:     now,
			constant.FieldModifiedBy:     constant.ContextSystem,
		}, reservationFilter); err != nil {
			return fmt.Errorf("failed to complete reservation: %w", err)
		}

		completed = true

		carFilter := shared.FilterByID(transition.CarID, carModel.FieldID, carModel.TableName)

		car, err := e.carRepo.GetForUpdateTx(ctx, tx, carFilter)
		if err != nil {
			return fmt.Errorf("failed to lock car: %w", err)
		}

		if !car.IsBooked() {
			return nil
		}

		if err = e.carRepo.UpdateTx(ctx, tx, map[string]any{
			carModel.FieldStatus:     carModel.StatusAvailable,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: constant.ContextSystem,
		}, carFilter); err != nil {
			return fmt.Errorf("failed to release car: %w", err)
		}

		released = true

		return nil
	})
	if err != nil {
		return false, false, err
	}

	return completed, released, nil
}

// DescribeReturn reports when the Booked car named carName comes back. Cars
// that are not booked, or have no active reservation, yield "".
func (e *engineImpl) DescribeReturn(ctx context.Context, carName string, today time.Time) (res string, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelEngineScopeName, constant.OtelEngineScopeName+".DescribeReturn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return e.describe(ctx, gDto.NewFilterGroup(
		gDto.Filter{Field: carModel.FieldName, Value: carName, Operator: gDto.FilterOperatorEq, Table: carModel.TableName},
	), today)
}

func (e *engineImpl) ReturnInfoByID(ctx context.Context, carID string, today time.Time) (res string, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelEngineScopeName, constant.OtelEngineScopeName+".ReturnInfoByID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return e.describe(ctx, shared.FilterByID(carID, carModel.FieldID, carModel.TableName), today)
}

func (e *engineImpl) describe(ctx context.Context, carFilter gDto.FilterGroup, today time.Time) (string, error) {
	car, err := e.carRepo.Get(ctx, carFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get car")

		return constant.Empty, fmt.Errorf("failed to get car: %w", err)
	}

	if !car.IsBooked() {
		return constant.Empty, nil
	}

	reservation, err := e.reservationRepo.Get(ctx, gDto.NewFilterGroup(
		gDto.Filter{Field: reservationModel.FieldCarID, Value: car.ID, Operator: gDto.FilterOperatorEq, Table: reservationModel.TableName},
		gDto.Filter{Field: reservationModel.FieldStatus, Value: reservationModel.StatusUpcoming, Operator: gDto.FilterOperatorEq, Table: reservationModel.TableName},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to get active reservation")

		return constant.Empty, fmt.Errorf("failed to get active reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return constant.Empty, nil
	}

	return ReturnInfo(reservation.EndDate, today), nil
}
