package car_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rentwheels/infras/otel/mocks"
	engineMocks "rentwheels/internal/availability/mocks"
	"rentwheels/internal/handlers/car"
	"rentwheels/shared/timezone"
)

var today = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func newRouter(t *testing.T) (*engineMocks.MockEngine, chi.Router) {
	t.Helper()

	engine := engineMocks.NewMockEngine(gomock.NewController(t))
	clock := timezone.FixedClock{At: today.Add(10 * time.Hour)}

	handler := car.New(nil, engine, clock, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return engine, router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestGetReturnInfo(t *testing.T) {
	engine, router := newRouter(t)
	engine.EXPECT().ReturnInfoByID(gomock.Any(), "car-1", today).Return("Returns tomorrow", nil)

	rec := get(router, "/cars/car-1/return-info")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"return_info":"Returns tomorrow"}}`, rec.Body.String())
}

func TestGetReturnInfoByName(t *testing.T) {
	t.Run("requires a name", func(t *testing.T) {
		_, router := newRouter(t)

		rec := get(router, "/cars/return-info")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("describes the return", func(t *testing.T) {
		engine, router := newRouter(t)
		engine.EXPECT().DescribeReturn(gomock.Any(), "Tesla Model S", today).Return("Overdue return", nil)

		rec := get(router, "/cars/return-info?name=Tesla+Model+S")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Overdue return")
	})

	t.Run("storage failure is masked", func(t *testing.T) {
		engine, router := newRouter(t)
		engine.EXPECT().DescribeReturn(gomock.Any(), "BMW X5", today).Return("", errors.New("connection reset"))

		rec := get(router, "/cars/return-info?name=BMW+X5")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}
