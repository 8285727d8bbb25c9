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
	reservationMocks "rentwheels/internal/domains/reservation/mocks"
	"rentwheels/internal/domains/reservation/model"
	"rentwheels/internal/domains/reservation/model/dto"
	"rentwheels/internal/domains/reservation/service"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/failure"
)

func sampleReservation() model.Reservation {
	return model.Reservation{
		ID:           "res-1",
		CarID:        "car-1",
		CarName:      "Tesla Model S",
		CustomerID:   "user-1",
		CustomerName: "Jane",
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		TotalCost:    2000,
		Status:       model.StatusUpcoming,
	}
}

func actorContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestReservationService_Get(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(repo *reservationMocks.MockReservation)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "owner can read",
			ctx:  actorContext("user-1", constant.RoleUser),
			setupMock: func(repo *reservationMocks.MockReservation) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleReservation(), nil)
			},
		},
		{
			name: "admin can read",
			ctx:  actorContext("admin-1", constant.RoleAdmin),
			setupMock: func(repo *reservationMocks.MockReservation) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleReservation(), nil)
			},
		},
		{
			name: "other user is forbidden",
			ctx:  actorContext("user-2", constant.RoleUser),
			setupMock: func(repo *reservationMocks.MockReservation) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleReservation(), nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "missing reservation",
			ctx:  actorContext("user-1", constant.RoleUser),
			setupMock: func(repo *reservationMocks.MockReservation) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "repository error",
			ctx:  actorContext("user-1", constant.RoleUser),
			setupMock: func(repo *reservationMocks.MockReservation) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := reservationMocks.NewMockReservation(ctrl)
			tt.setupMock(repo)

			svc := service.New(repo, mocks.NewOtel())

			res, err := svc.Get(tt.ctx, "res-1")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "2024-01-01", res.StartDate)
			assert.Equal(t, "January 1, 2024 - January 3, 2024", res.RentalPeriod)
		})
	}
}

func TestReservationService_GetByCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reservationMocks.NewMockReservation(ctrl)
	svc := service.New(repo, mocks.NewOtel())

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
		where, args := filter.GetWhereClause()
		assert.Equal(t, "(reservations.customer_id = :customer_id)", where)
		assert.Equal(t, "user-1", args["customer_id"])

		return 1, nil
	})
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
			assert.Equal(t, "created_at", params.SortBy)
			assert.Equal(t, "DESC", params.SortDir)

			return []model.Reservation{sampleReservation()}, nil
		})

	res, err := svc.GetByCustomer(context.Background(), "user-1", gDto.QueryParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, res.Reservations, 1)
	assert.Equal(t, 1, res.TotalData)
}

func TestReservationService_GetAll_Filter(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reservationMocks.NewMockReservation(ctrl)
	svc := service.New(repo, mocks.NewOtel())

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Reservation{}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ReservationFilter{CarName: "Tesla Model S"})

	require.NoError(t, err)
	assert.Empty(t, res.Reservations)
	assert.Equal(t, 1, res.TotalPage)
}
