package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"rentwheels/infras/otel"
	"rentwheels/infras/postgres"
	"rentwheels/internal/domains/invoice/model"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	gRepo "rentwheels/shared/repository"
)

type Invoice interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Invoice) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Invoice, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Invoice, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CountTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	DeleteAll(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	GetPaired(ctx context.Context, reservationID, carName, customerName string) (model.Invoice, error)
	GetPairedTx(ctx context.Context, sqltx *sqlx.Tx, reservationID, carName, customerName string) (model.Invoice, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Invoice]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Invoice {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Invoice](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type lister func(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Invoice, error)

// GetPaired returns the invoice written for reservationID. Rows created before
// invoices carried a reservation id are matched on car and customer name,
// most recent first. The zero Invoice means there is none.
func (r *repositoryImpl) GetPaired(ctx context.Context, reservationID, carName, customerName string) (model.Invoice, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetPaired")
	defer scope.End()

	return paired(ctx, func(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Invoice, error) {
		return r.Repository.GetAll(ctx, params, filter)
	}, reservationID, carName, customerName)
}

func (r *repositoryImpl) GetPairedTx(ctx context.Context, sqltx *sqlx.Tx, reservationID, carName, customerName string) (model.Invoice, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetPairedTx")
	defer scope.End()

	return paired(ctx, func(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Invoice, error) {
		return r.Repository.GetAllTx(ctx, sqltx, params, filter)
	}, reservationID, carName, customerName)
}

func paired(ctx context.Context, list lister, reservationID, carName, customerName string) (model.Invoice, error) {
	latest := gDto.QueryParams{Limit: 1, SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	filters := []gDto.FilterGroup{}

	if reservationID != constant.Empty {
		filters = append(filters, gDto.NewFilterGroup(
			gDto.Filter{Field: model.FieldReservationID, Value: reservationID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		))
	}

	if carName != constant.Empty && customerName != constant.Empty {
		filters = append(filters, gDto.NewFilterGroup(
			gDto.Filter{Field: model.FieldCarName, Value: carName, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCustomerName, Value: customerName, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		))
	}

	for _, filter := range filters {
		found, err := list(ctx, latest, filter)
		if err != nil {
			return model.Invoice{}, err
		}

		if len(found) > 0 {
			return found[0], nil
		}
	}

	return model.Invoice{}, nil
}
