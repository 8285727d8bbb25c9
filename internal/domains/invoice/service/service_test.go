package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentwheels/infras/otel/mocks"
	invoiceMocks "rentwheels/internal/domains/invoice/mocks"
	"rentwheels/internal/domains/invoice/model"
	"rentwheels/internal/domains/invoice/service"
	reservationMocks "rentwheels/internal/domains/reservation/mocks"
	reservationModel "rentwheels/internal/domains/reservation/model"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/failure"
)

type fixture struct {
	repo        *invoiceMocks.MockInvoice
	reservation *reservationMocks.MockReservation
	svc         service.Invoice
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        invoiceMocks.NewMockInvoice(ctrl),
		reservation: reservationMocks.NewMockReservation(ctrl),
	}
	f.svc = service.New(f.repo, f.reservation, mocks.NewOtel())

	return f
}

func actorContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func sampleInvoice() model.Invoice {
	return model.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-2024-001",
		ReservationID: "res-1",
		CarName:       "Tesla Model S",
		CustomerID:    "user-1",
		CustomerName:  "Jane",
		RentalPeriod:  "January 1, 2024 - January 3, 2024",
		Total:         2000,
		IssueDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PaymentMethod: model.PaymentUPI,
	}
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2024-001", model.InvoiceNumber(2024, 1))
	assert.Equal(t, "INV-2025-042", model.InvoiceNumber(2025, 42))
	assert.Equal(t, "INV-2025-1234", model.InvoiceNumber(2025, 1234))
}

func TestInvoiceService_Get(t *testing.T) {
	t.Run("owner sees display issue date", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleInvoice(), nil)

		res, err := f.svc.Get(actorContext("user-1", constant.RoleUser), "inv-1")

		require.NoError(t, err)
		assert.Equal(t, "January 1, 2024", res.IssueDate)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleInvoice(), nil)

		_, err := f.svc.Get(actorContext("user-2", constant.RoleUser), "inv-1")

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)

		_, err := f.svc.Get(actorContext("user-1", constant.RoleUser), "inv-1")

		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestInvoiceService_GetByReservation(t *testing.T) {
	reservation := reservationModel.Reservation{ID: "res-1", CarName: "Tesla Model S", CustomerName: "Jane"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantNil   bool
		wantErr   bool
	}{
		{
			name: "paired invoice",
			setupMock: func(f fixture) {
				f.reservation.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation, nil)
				f.repo.EXPECT().GetPaired(gomock.Any(), "res-1", "Tesla Model S", "Jane").Return(sampleInvoice(), nil)
			},
		},
		{
			name: "absent invoice is not an error",
			setupMock: func(f fixture) {
				f.reservation.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservationModel.Reservation{}, nil)
				f.repo.EXPECT().GetPaired(gomock.Any(), "res-1", "", "").Return(model.Invoice{}, nil)
			},
			wantNil: true,
		},
		{
			name: "storage failure",
			setupMock: func(f fixture) {
				f.reservation.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation, nil)
				f.repo.EXPECT().GetPaired(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Invoice{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetByReservation(actorContext("admin", constant.RoleAdmin), "res-1")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, res)

				return
			}

			require.NotNil(t, res)
			assert.Equal(t, "INV-2024-001", res.InvoiceNumber)
		})
	}
}

func TestInvoiceService_ClearAll(t *testing.T) {
	t.Run("admin deletes every invoice", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().DeleteAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int64, error) {
				assert.True(t, filter.IsEmpty())

				return 3, nil
			})

		res, err := f.svc.ClearAll(actorContext("admin-1", constant.RoleAdmin))

		require.NoError(t, err)
		assert.Equal(t, 3, res.Cleared)
	})

	t.Run("user deletes only own invoices", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().DeleteAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int64, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, model.FieldCustomerID)
				assert.Equal(t, "user-1", args[model.FieldCustomerID])

				return 2, nil
			})

		res, err := f.svc.ClearAll(actorContext("user-1", constant.RoleUser))

		require.NoError(t, err)
		assert.Equal(t, 2, res.Cleared)
	})

	t.Run("reports rows actually deleted", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().DeleteAll(gomock.Any(), gomock.Any()).Return(int64(0), nil)

		res, err := f.svc.ClearAll(actorContext("user-1", constant.RoleUser))

		require.NoError(t, err)
		assert.Zero(t, res.Cleared)
	})

	t.Run("anonymous caller rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ClearAll(context.Background())

		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().DeleteAll(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))

		_, err := f.svc.ClearAll(actorContext("admin-1", constant.RoleAdmin))

		assert.Error(t, err)
	})
}

func TestInvoiceService_GetByCustomer(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Invoice{sampleInvoice()}, nil)

	res, err := f.svc.GetByCustomer(context.Background(), "user-1", gDto.QueryParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, res.Invoices, 1)
}
