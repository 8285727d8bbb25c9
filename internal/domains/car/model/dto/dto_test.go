package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwheels/internal/domains/car/model"
	"rentwheels/internal/domains/car/model/dto"
	"rentwheels/shared/failure"
)

func TestCreateCarRequest_Check(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateCarRequest
		price   float64
		seats   int
		wantMsg string
	}{
		{
			name:  "valid",
			req:   dto.CreateCarRequest{Name: "Maruti Swift", PricePerDay: "1200.50", Seats: "5", Transmission: "Manual", FuelType: "Petrol"},
			price: 1200.50,
			seats: 5,
		},
		{
			name:  "currency prefix accepted",
			req:   dto.CreateCarRequest{Name: "Maruti Swift", PricePerDay: "₹900", Seats: "5", Transmission: "Manual", FuelType: "Petrol"},
			price: 900,
			seats: 5,
		},
		{
			name:    "required fields checked before price",
			req:     dto.CreateCarRequest{PricePerDay: "abc"},
			wantMsg: dto.MessageRequiredFields,
		},
		{
			name:    "non numeric price",
			req:     dto.CreateCarRequest{Name: "Maruti Swift", PricePerDay: "abc", Seats: "5", Transmission: "Manual", FuelType: "Petrol"},
			wantMsg: dto.MessageInvalidPrice,
		},
		{
			name:    "zero price",
			req:     dto.CreateCarRequest{Name: "Maruti Swift", PricePerDay: "0", Seats: "5", Transmission: "Manual", FuelType: "Petrol"},
			wantMsg: dto.MessageInvalidPrice,
		},
		{
			name:    "bad seats",
			req:     dto.CreateCarRequest{Name: "Maruti Swift", PricePerDay: "100", Seats: "x", Transmission: "Manual", FuelType: "Petrol"},
			wantMsg: dto.MessageInvalidSeats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, seats, err := tt.req.Check()

			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantMsg, failure.GetMessage(err))

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.price, price, 0.001)
			assert.Equal(t, tt.seats, seats)
		})
	}
}

func TestCarFilter_ToFilterGroup(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/cars?name=Swift&seats=5&transmission=Manual&fuel_type=Petrol&max_price=1500", nil)

	var filter dto.CarFilter
	filter.FromRequest(r)

	group := filter.ToFilterGroup()
	where, args := group.GetWhereClause()

	assert.Equal(t, "(LOWER(cars.name) LIKE LOWER(:name) AND cars.seats = :seats AND cars.transmission = :transmission AND cars.fuel_type = :fuel_type AND cars.price_per_day <= :max_price)", where)
	assert.Equal(t, "%Swift%", args["name"])
	assert.Equal(t, 5, args["seats"])
	assert.InDelta(t, 1500.0, args["max_price"], 0.001)
}

func TestCarFilter_Empty(t *testing.T) {
	var filter dto.CarFilter
	filter.FromRequest(httptest.NewRequest("GET", "/v1/cars?seats=many", nil))

	group := filter.ToFilterGroup()

	assert.True(t, group.IsEmpty())
}

func TestUpdateCarRequest_ToFields(t *testing.T) {
	req := dto.UpdateCarRequest{Name: "Honda City", Seats: "4"}

	fields, err := req.ToFields()

	require.NoError(t, err)
	assert.Equal(t, map[string]any{model.FieldName: "Honda City", model.FieldSeats: 4}, fields)
}

func TestGetCarsResponse_FromModels(t *testing.T) {
	var res dto.GetCarsResponse
	res.FromModels([]model.Car{{ID: "a"}, {ID: "b"}}, 11, 10)

	assert.Len(t, res.Cars, 2)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, 11, res.TotalData)
}
