package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"rentwheels/infras/otel"
	"rentwheels/internal/domains/invoice/model"
	"rentwheels/internal/domains/invoice/model/dto"
	"rentwheels/internal/domains/invoice/repository"
	reservationModel "rentwheels/internal/domains/reservation/model"
	reservationRepo "rentwheels/internal/domains/reservation/repository"
	"rentwheels/shared"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/failure"
)

const (
	MessageNotOwner      = "You can only view your own invoices!"
	MessageLoginRequired = "Please log in to continue!"
)

type Invoice interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.InvoiceFilter) (dto.GetInvoicesResponse, error)
	GetByCustomer(ctx context.Context, customerID string, req gDto.QueryParams) (dto.GetInvoicesResponse, error)
	Get(ctx context.Context, id string) (dto.InvoiceResponse, error)
	GetByReservation(ctx context.Context, reservationID string) (*dto.InvoiceResponse, error)
	ClearAll(ctx context.Context) (dto.ClearInvoicesResponse, error)
}

type serviceImpl struct {
	repo            repository.Invoice
	reservationRepo reservationRepo.Reservation
	otel            otel.Otel
}

func New(repo repository.Invoice, reservationRepo reservationRepo.Reservation, otel otel.Otel) Invoice {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		otel:            otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.InvoiceFilter) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, req, filter.ToFilterGroup())
}

func (s *serviceImpl) GetByCustomer(ctx context.Context, customerID string, req gDto.QueryParams) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByCustomer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := dto.InvoiceFilter{CustomerID: customerID}

	return s.list(ctx, req, filter.ToFilterGroup())
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	invoice, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return res, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if err = canView(ctx, invoice); err != nil {
		return res, err
	}

	res.FromModel(invoice)

	return res, nil
}

// GetByReservation returns the invoice paired with a reservation, or nil when
// there is none.
func (s *serviceImpl) GetByReservation(ctx context.Context, reservationID string) (res *dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByReservation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.reservationRepo.Get(ctx, shared.FilterByID(reservationID, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	invoice, err := s.repo.GetPaired(ctx, reservationID, reservation.CarName, reservation.CustomerName)
	if err != nil {
		log.Error().Err(err).Msg("failed to get paired invoice")

		return nil, fmt.Errorf("failed to get paired invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		return nil, nil
	}

	if err = canView(ctx, invoice); err != nil {
		return nil, err
	}

	res = &dto.InvoiceResponse{}
	res.FromModel(invoice)

	return res, nil
}

// ClearAll deletes the caller's invoices, or every invoice for an admin.
// Reservations are left in place.
func (s *serviceImpl) ClearAll(ctx context.Context) (res dto.ClearInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClearAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, admin := shared.Actor(ctx)
	if actor == constant.Empty {
		return res, failure.Unauthorized(MessageLoginRequired) // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{}
	if !admin {
		owned := dto.InvoiceFilter{CustomerID: actor}
		filter = owned.ToFilterGroup()
	}

	deleted, err := s.repo.DeleteAll(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to clear invoices")

		return res, fmt.Errorf("failed to clear invoices: %w", err)
	}

	log.Info().Int64("count", deleted).Str("actor", actor).Bool("admin", admin).Msg("invoices cleared")

	res.Cleared = int(deleted)

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	req.Sortable(model.SortableFields...)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func canView(ctx context.Context, invoice model.Invoice) error {
	user, admin := shared.Actor(ctx)
	if admin || invoice.CustomerID == user {
		return nil
	}

	return failure.Forbidden(MessageNotOwner) // nolint:wrapcheck
}
