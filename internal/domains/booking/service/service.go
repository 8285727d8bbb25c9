package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"rentwheels/infras/otel"
	"rentwheels/internal/availability"
	"rentwheels/internal/domains/booking/model"
	"rentwheels/internal/domains/booking/model/dto"
	carModel "rentwheels/internal/domains/car/model"
	carRepo "rentwheels/internal/domains/car/repository"
	invoiceModel "rentwheels/internal/domains/invoice/model"
	invoiceRepo "rentwheels/internal/domains/invoice/repository"
	reservationModel "rentwheels/internal/domains/reservation/model"
	reservationRepo "rentwheels/internal/domains/reservation/repository"
	"rentwheels/shared"
	"rentwheels/shared/cache"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/failure"
	"rentwheels/shared/lock"
	gRepo "rentwheels/shared/repository"
	"rentwheels/shared/timezone"
)

const (
	MessageCarNotAvailable = "This car is no longer available!"
	MessageNotCancellable  = "Only upcoming reservations can be cancelled!"
	MessageNotOwner        = "You can only manage your own reservations!"
	MessageLoginRequired   = "Please log in to continue!"
)

type Booking interface {
	Book(ctx context.Context, req dto.BookRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, reservationID string) error
	CancelByName(ctx context.Context, req dto.CancelByNameRequest) error
	ClearAll(ctx context.Context) (dto.ClearReservationsResponse, error)
}

type serviceImpl struct {
	carRepo         carRepo.Car
	reservationRepo reservationRepo.Reservation
	invoiceRepo     invoiceRepo.Invoice
	transactor      gRepo.Transactor
	locks           *lock.KeyedMutex
	notifier        availability.Notifier
	clock           timezone.Clock
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	carRepo carRepo.Car,
	reservationRepo reservationRepo.Reservation,
	invoiceRepo invoiceRepo.Invoice,
	transactor gRepo.Transactor,
	locks *lock.KeyedMutex,
	notifier availability.Notifier,
	clock timezone.Clock,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		carRepo:         carRepo,
		reservationRepo: reservationRepo,
		invoiceRepo:     invoiceRepo,
		transactor:      transactor,
		locks:           locks,
		notifier:        notifier,
		clock:           clock,
		cache:           cache,
		otel:            otel,
	}
}

// Book reserves a car and issues its invoice. The reservation, the invoice
// and the car's Booked status are written in one transaction.
func (s *serviceImpl) Book(ctx context.Context, req dto.BookRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := req.Check()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	customer := customerFrom(ctx)
	if customer.ID == constant.Empty {
		return res, failure.Unauthorized(MessageLoginRequired) // nolint:wrapcheck
	}

	car, err := s.carRepo.Get(ctx, req.CarFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get car")

		return res, fmt.Errorf("failed to get car: %w", err)
	}

	if car.ID == constant.Empty {
		return res, failure.NotFound(carModel.EntityName) // nolint:wrapcheck
	}

	unlock := s.locks.Lock(car.ID)
	defer unlock()

	now := s.clock.Now()
	today := timezone.Date(now)

	var booking model.Booking

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		carFilter := shared.FilterByID(car.ID, carModel.FieldID, carModel.TableName)

		locked, err := s.carRepo.GetForUpdateTx(ctx, tx, carFilter)
		if err != nil {
			return fmt.Errorf("failed to lock car: %w", err)
		}

		if !locked.IsAvailable() {
			return failure.Conflict(MessageCarNotAvailable) // nolint:wrapcheck
		}

		cost, err := availability.ComputeCost(locked.PricePerDay, start, end)
		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}

		issued, err := s.invoiceRepo.CountTx(ctx, tx, gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("failed to count invoices: %w", err)
		}

		booking = req.ToModel(locked, customer, start, end, cost, issued+1, today, now)

		if err = s.reservationRepo.InsertTx(ctx, tx, booking.Reservation); err != nil {
			return fmt.Errorf("failed to insert reservation: %w", err)
		}

		if err = s.invoiceRepo.InsertTx(ctx, tx, booking.Invoice); err != nil {
			return fmt.Errorf("failed to insert invoice: %w", err)
		}

		if err = s.carRepo.UpdateTx(ctx, tx, map[string]any{
			carModel.FieldStatus:     carModel.StatusBooked,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: customer.ID,
		}, carFilter); err != nil {
			return fmt.Errorf("failed to mark car booked: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("car_id", car.ID).Msg("failed to book car")

		return res, fmt.Errorf("failed to book car: %w", err)
	}

	log.Info().
		Str("reservation_id", booking.Reservation.ID).
		Str("invoice_number", booking.Invoice.InvoiceNumber).
		Msg("car booked")

	s.announce(ctx, availability.EventBooked, []string{car.ID}, []string{booking.Reservation.ID})

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, reservationID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.reservationRepo.Get(ctx, shared.FilterByID(reservationID, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	return s.cancel(ctx, reservation)
}

// CancelByName cancels the upcoming reservation of customerName for carName.
func (s *serviceImpl) CancelByName(ctx context.Context, req dto.CancelByNameRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelByName")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.IsValid() {
		return failure.BadRequestFromString(dto.MessageRequiredCancelKey) // nolint:wrapcheck
	}

	reservation, err := s.reservationRepo.Get(ctx, gDto.NewFilterGroup(
		gDto.Filter{Field: reservationModel.FieldCarName, Value: req.CarName, Operator: gDto.FilterOperatorEq, Table: reservationModel.TableName},
		gDto.Filter{Field: reservationModel.FieldCustomerName, Value: req.CustomerName, Operator: gDto.FilterOperatorEq, Table: reservationModel.TableName},
		gDto.Filter{Field: reservationModel.FieldStatus, Value: reservationModel.StatusUpcoming, Operator: gDto.FilterOperatorEq, Table: reservationModel.TableName},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	return s.cancel(ctx, reservation)
}

func (s *serviceImpl) cancel(ctx context.Context, reservation reservationModel.Reservation) error {
	if reservation.ID == constant.Empty {
		return failure.NotFound(reservationModel.EntityName) // nolint:wrapcheck
	}

	actor, admin := shared.Actor(ctx)
	if !admin && !reservation.IsOwnedBy(actor) {
		return failure.Forbidden(MessageNotOwner) // nolint:wrapcheck
	}

	if !reservation.IsUpcoming() {
		return failure.Conflict(MessageNotCancellable) // nolint:wrapcheck
	}

	unlock := s.locks.Lock(reservation.CarID)
	defer unlock()

	var released bool

	err := s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.reservationRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(reservation.ID, reservationModel.FieldID, reservationModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock reservation: %w", err)
		}

		if locked.ID == constant.Empty {
			return failure.NotFound(reservationModel.EntityName) // nolint:wrapcheck
		}

		if !locked.IsUpcoming() {
			return failure.Conflict(MessageNotCancellable) // nolint:wrapcheck
		}

		released, err = s.remove(ctx, tx, locked, actor)

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("failed to cancel reservation")

		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	log.Info().Str("reservation_id", reservation.ID).Bool("released", released).Msg("reservation cancelled")

	s.announce(ctx, availability.EventCancelled, []string{reservation.CarID}, []string{reservation.ID})

	return nil
}

// ClearAll removes every reservation visible to the caller: all of them for
// an admin, the caller's own otherwise. Each reservation is removed in its
// own transaction; failures are collected and the rest still run.
func (s *serviceImpl) ClearAll(ctx context.Context) (res dto.ClearReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClearAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, admin := shared.Actor(ctx)
	if actor == constant.Empty {
		return res, failure.Unauthorized(MessageLoginRequired) // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{}
	if !admin {
		filter = gDto.NewFilterGroup(gDto.Filter{Field: reservationModel.FieldCustomerID, Value: actor, Operator: gDto.FilterOperatorEq, Table: reservationModel.TableName})
	}

	reservations, err := s.reservationRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	var (
		errs           []error
		carIDs         []string
		reservationIDs []string
	)

	for _, reservation := range reservations {
		if err := s.clear(ctx, reservation, actor); err != nil {
			log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("failed to clear reservation")

			errs = append(errs, err)

			continue
		}

		reservationIDs = append(reservationIDs, reservation.ID)
		carIDs = append(carIDs, reservation.CarID)
	}

	res.Cleared = len(reservationIDs)

	if res.Cleared > 0 {
		s.announce(ctx, availability.EventCleared, carIDs, reservationIDs)
	}

	if err = errors.Join(errs...); err != nil {
		return res, fmt.Errorf("failed to clear reservations: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) clear(ctx context.Context, reservation reservationModel.Reservation, actor string) error {
	unlock := s.locks.Lock(reservation.CarID)
	defer unlock()

	return s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.reservationRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(reservation.ID, reservationModel.FieldID, reservationModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock reservation: %w", err)
		}

		if locked.ID == constant.Empty {
			return nil
		}

		_, err = s.remove(ctx, tx, locked, actor)

		return err
	})
}

// remove deletes reservation and its paired invoice. The car is released
// only when the reservation was still holding it.
func (s *serviceImpl) remove(ctx context.Context, tx *sqlx.Tx, reservation reservationModel.Reservation, actor string) (released bool, err error) {
	if err = s.reservationRepo.DeleteTx(ctx, tx, shared.FilterByID(reservation.ID, reservationModel.FieldID, reservationModel.TableName)); err != nil {
		return false, fmt.Errorf("failed to delete reservation: %w", err)
	}

	invoice, err := s.invoiceRepo.GetPairedTx(ctx, tx, reservation.ID, reservation.CarName, reservation.CustomerName)
	if err != nil {
		return false, fmt.Errorf("failed to find invoice: %w", err)
	}

	if invoice.ID != constant.Empty {
		if err = s.invoiceRepo.DeleteTx(ctx, tx, shared.FilterByID(invoice.ID, invoiceModel.FieldID, invoiceModel.TableName)); err != nil {
			return false, fmt.Errorf("failed to delete invoice: %w", err)
		}
	}

	if !reservation.IsUpcoming() {
		return false, nil
	}

	carFilter := shared.FilterByID(reservation.CarID, carModel.FieldID, carModel.TableName)

	car, err := s.carRepo.GetForUpdateTx(ctx, tx, carFilter)
	if err != nil {
		return false, fmt.Errorf("failed to lock car: %w", err)
	}

	if !car.IsBooked() {
		return false, nil
	}

	if err = s.carRepo.UpdateTx(ctx, tx, map[string]any{
		carModel.FieldStatus:     carModel.StatusAvailable,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: actor,
	}, carFilter); err != nil {
		return false, fmt.Errorf("failed to release car: %w", err)
	}

	return true, nil
}

func (s *serviceImpl) announce(ctx context.Context, kind availability.EventKind, carIDs, reservationIDs []string) {
	s.notifier.Publish(availability.Event{
		Kind:           kind,
		CarIDs:         carIDs,
		ReservationIDs: reservationIDs,
		OccurredAt:     s.clock.Now(),
	})

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, carModel.CachePrefixes()...)
	}()
}

func customerFrom(ctx context.Context) dto.Customer {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	name, _ := ctx.Value(constant.ContextKeyUserName).(string)

	if name == constant.Empty {
		name, _ = ctx.Value(constant.ContextKeyUserUsername).(string)
	}

	return dto.Customer{ID: id, Name: name}
}
