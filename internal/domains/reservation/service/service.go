package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"rentwheels/infras/otel"
	"rentwheels/internal/domains/reservation/model"
	"rentwheels/internal/domains/reservation/model/dto"
	"rentwheels/internal/domains/reservation/repository"
	"rentwheels/shared"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/failure"
)

const MessageNotOwner = "You can only view your own reservations!"

type Reservation interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.ReservationFilter) (dto.GetReservationsResponse, error)
	GetByCustomer(ctx context.Context, customerID string, req gDto.QueryParams) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo repository.Reservation
	otel otel.Otel
}

func New(repo repository.Reservation, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.ReservationFilter) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, req, filter.ToFilterGroup())
}

// GetByCustomer lists the reservations owned by customerID, newest first.
func (s *serviceImpl) GetByCustomer(ctx context.Context, customerID string, req gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByCustomer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := dto.ReservationFilter{CustomerID: customerID}

	return s.list(ctx, req, filter.ToFilterGroup())
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	user, admin := shared.Actor(ctx)
	if !admin && !reservation.IsOwnedBy(user) {
		return res, failure.Forbidden(MessageNotOwner) // nolint:wrapcheck
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	req.Sortable(model.SortableFields...)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}
