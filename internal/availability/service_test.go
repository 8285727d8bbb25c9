package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentwheels/infras/otel/mocks"
	"rentwheels/internal/availability"
	carMocks "rentwheels/internal/domains/car/mocks"
	carModel "rentwheels/internal/domains/car/model"
	reservationMocks "rentwheels/internal/domains/reservation/mocks"
	reservationModel "rentwheels/internal/domains/reservation/model"
	cacheMocks "rentwheels/shared/cache/mocks"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/lock"
	repoMocks "rentwheels/shared/repository/mocks"
)

type engineFixture struct {
	cars         *carMocks.MockCar
	reservations *reservationMocks.MockReservation
	transactor   *repoMocks.MockTransactor
	notifier     availability.Notifier
	engine       availability.Engine
}

func newEngineFixture(t *testing.T) engineFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f := engineFixture{
		cars:         carMocks.NewMockCar(ctrl),
		reservations: reservationMocks.NewMockReservation(ctrl),
		transactor:   repoMocks.NewMockTransactor(ctrl),
		notifier:     availability.NewNotifier(),
	}

	f.engine = availability.New(f.cars, f.reservations, f.transactor, lock.NewKeyedMutex(), f.notifier, mockCache, mocks.NewOtel())

	return f
}

func runInTransaction(transactor *repoMocks.MockTransactor) *gomock.Call {
	return transactor.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		})
}

func upcoming(id, carID string, end time.Time) reservationModel.Reservation {
	return reservationModel.Reservation{
		ID:      id,
		CarID:   carID,
		CarName: "Tesla Model S",
		EndDate: end,
		Status:  reservationModel.StatusUpcoming,
	}
}

func TestEngine_Sweep_NoPendingTransitions(t *testing.T) {
	f := newEngineFixture(t)

	f.reservations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]reservationModel.Reservation{}, nil)

	res, err := f.engine.Sweep(context.Background(), day(2024, 1, 3))

	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Empty(t, res.CompletedReservationIDs)
}

func TestEngine_Sweep_CompletesAndReleases(t *testing.T) {
	f := newEngineFixture(t)
	today := day(2024, 1, 3)
	events, cancel := f.notifier.Subscribe(1)
	defer cancel()

	f.reservations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]reservationModel.Reservation, error) {
			where, args := filter.GetWhereClause()
			assert.Equal(t, "(reservations.status = :status AND reservations.end_date <= :end_date)", where)
			assert.Equal(t, today, args["end_date"])

			return []reservationModel.Reservation{upcoming("r1", "c1", today)}, nil
		})

	runInTransaction(f.transactor)
	f.reservations.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(upcoming("r1", "c1", today), nil)
	f.reservations.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, reservationModel.StatusCompleted, fields[reservationModel.FieldStatus])

			return nil
		})
	f.cars.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(carModel.Car{ID: "c1", Status: carModel.StatusBooked}, nil)
	f.cars.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, carModel.StatusAvailable, fields[carModel.FieldStatus])

			return nil
		})

	res, err := f.engine.Sweep(context.Background(), today)

	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"r1"}, res.CompletedReservationIDs)
	assert.Equal(t, []string{"c1"}, res.ReleasedCarIDs)

	event := <-events
	assert.Equal(t, availability.EventSwept, event.Kind)
	assert.Equal(t, []string{"c1"}, event.CarIDs)
}

func TestEngine_Sweep_SkipsAlreadyCompleted(t *testing.T) {
	f := newEngineFixture(t)
	today := day(2024, 1, 3)

	f.reservations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]reservationModel.Reservation{upcoming("r1", "c1", today)}, nil)

	runInTransaction(f.transactor)

	done := upcoming("r1", "c1", today)
	done.Status = reservationModel.StatusCompleted
	f.reservations.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(done, nil)

	res, err := f.engine.Sweep(context.Background(), today)

	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Empty(t, res.CompletedReservationIDs)
}

func TestEngine_Sweep_FailureIsolated(t *testing.T) {
	f := newEngineFixture(t)
	today := day(2024, 1, 3)

	f.reservations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]reservationModel.Reservation{
		upcoming("r1", "c1", today),
		upcoming("r2", "c2", today),
	}, nil)

	gomock.InOrder(
		f.transactor.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).Return(errors.New("deadlock")),
		runInTransaction(f.transactor),
	)

	f.reservations.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(upcoming("r2", "c2", today), nil)
	f.reservations.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.cars.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(carModel.Car{ID: "c2", Status: carModel.StatusBooked}, nil)
	f.cars.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.engine.Sweep(context.Background(), today)

	require.Error(t, err)
	assert.Equal(t, []string{"r2"}, res.CompletedReservationIDs)
	assert.Equal(t, []string{"c2"}, res.ReleasedCarIDs)
	assert.True(t, res.Changed)
}

func TestEngine_Sweep_LoadFailure(t *testing.T) {
	f := newEngineFixture(t)

	f.reservations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := f.engine.Sweep(context.Background(), day(2024, 1, 3))

	assert.Error(t, err)
}

func TestEngine_DescribeReturn(t *testing.T) {
	today := day(2024, 1, 2)

	tests := []struct {
		name      string
		setupMock func(f engineFixture)
		want      string
	}{
		{
			name: "booked car with active reservation",
			setupMock: func(f engineFixture) {
				f.cars.EXPECT().Get(gomock.Any(), gomock.Any()).Return(carModel.Car{ID: "c1", Status: carModel.StatusBooked}, nil)
				f.reservations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming("r1", "c1", day(2024, 1, 3)), nil)
			},
			want: "Returns tomorrow",
		},
		{
			name: "available car",
			setupMock: func(f engineFixture) {
				f.cars.EXPECT().Get(gomock.Any(), gomock.Any()).Return(carModel.Car{ID: "c1", Status: carModel.StatusAvailable}, nil)
			},
			want: "",
		},
		{
			name: "unknown car",
			setupMock: func(f engineFixture) {
				f.cars.EXPECT().Get(gomock.Any(), gomock.Any()).Return(carModel.Car{}, nil)
			},
			want: "",
		},
		{
			name: "booked car without reservation",
			setupMock: func(f engineFixture) {
				f.cars.EXPECT().Get(gomock.Any(), gomock.Any()).Return(carModel.Car{ID: "c1", Status: carModel.StatusBooked}, nil)
				f.reservations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservationModel.Reservation{}, nil)
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t)
			tt.setupMock(f)

			got, err := f.engine.DescribeReturn(context.Background(), "Tesla Model S", today)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_ReturnInfoByID(t *testing.T) {
	f := newEngineFixture(t)

	f.cars.EXPECT().Get(gomock.Any(), gomock.Any()).Return(carModel.Car{ID: "c1", Status: carModel.StatusBooked}, nil)
	f.reservations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(upcoming("r1", "c1", day(2024, 1, 1)), nil)

	got, err := f.engine.ReturnInfoByID(context.Background(), "c1", day(2024, 1, 2))

	require.NoError(t, err)
	assert.Equal(t, "Overdue return", got)
}
