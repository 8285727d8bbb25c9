package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwheels/internal/domains/booking/model/dto"
	carModel "rentwheels/internal/domains/car/model"
	invoiceModel "rentwheels/internal/domains/invoice/model"
	reservationModel "rentwheels/internal/domains/reservation/model"
)

func TestBookRequest_Check(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.BookRequest
		wantErr error
		days    int
	}{
		{
			name: "same day",
			req:  dto.BookRequest{CarID: "car-1", StartDate: "2024-01-01", EndDate: "2024-01-01", PaymentMethod: invoiceModel.PaymentCashOnReturn},
		},
		{
			name: "three nights",
			req:  dto.BookRequest{CarName: "Tesla Model S", StartDate: "2024-01-01", EndDate: "2024-01-04", PaymentMethod: invoiceModel.PaymentCashOnDelivery},
			days: 3,
		},
		{
			name:    "end before start",
			req:     dto.BookRequest{CarID: "car-1", StartDate: "2024-01-05", EndDate: "2024-01-04", PaymentMethod: invoiceModel.PaymentUPI},
			wantErr: dto.ErrEndBeforeStart,
		},
		{
			name:    "dates are checked before payment",
			req:     dto.BookRequest{CarID: "car-1", StartDate: "2024-01-05", EndDate: "2024-01-04"},
			wantErr: dto.ErrEndBeforeStart,
		},
		{
			name:    "missing end date",
			req:     dto.BookRequest{CarID: "car-1", StartDate: "2024-01-05", PaymentMethod: invoiceModel.PaymentUPI},
			wantErr: dto.ErrSelectDates,
		},
		{
			name:    "blank car",
			req:     dto.BookRequest{CarName: "  ", StartDate: "2024-01-01", EndDate: "2024-01-02", PaymentMethod: invoiceModel.PaymentUPI},
			wantErr: dto.ErrSelectCar,
		},
		{
			name:    "payment not offered",
			req:     dto.BookRequest{CarID: "car-1", StartDate: "2024-01-01", EndDate: "2024-01-02", PaymentMethod: "cheque"},
			wantErr: dto.ErrUnknownPayment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := tt.req.Check()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.days, int(end.Sub(start).Hours()/24))
		})
	}
}

func TestBookRequest_CarFilter(t *testing.T) {
	byID := dto.BookRequest{CarID: "car-1", CarName: "Ignored"}
	filter := byID.CarFilter()
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(cars.id = :id)", where)
	assert.Equal(t, "car-1", args["id"])

	byName := dto.BookRequest{CarName: " Tesla Model S "}
	filter = byName.CarFilter()
	where, args = filter.GetWhereClause()

	assert.Equal(t, "(cars.name = :name)", where)
	assert.Equal(t, "Tesla Model S", args["name"])
}

func TestBookRequest_ToModel(t *testing.T) {
	req := dto.BookRequest{PaymentMethod: invoiceModel.PaymentQRCode}
	car := carModel.Car{ID: "car-1", Name: "Tesla Model S", PricePerDay: 1000}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	booking := req.ToModel(car, dto.Customer{ID: "user-1", Name: "Jane Doe"}, start, end, 2000, 1, start, at)

	assert.NotEmpty(t, booking.Reservation.ID)
	assert.Equal(t, reservationModel.StatusUpcoming, booking.Reservation.Status)
	assert.Equal(t, "Tesla Model S", booking.Reservation.CarName)
	assert.Equal(t, "user-1", booking.Reservation.CreatedBy)

	assert.Equal(t, booking.Reservation.ID, booking.Invoice.ReservationID)
	assert.Equal(t, "INV-2024-001", booking.Invoice.InvoiceNumber)
	assert.Equal(t, "January 1, 2024 - January 3, 2024", booking.Invoice.RentalPeriod)
	assert.InDelta(t, 2000, booking.Invoice.Total, 0.001)
	assert.Equal(t, invoiceModel.PaymentQRCode, booking.Invoice.PaymentMethod)
	assert.Equal(t, "Jane Doe", booking.Invoice.CustomerName)
}

func TestCancelByNameRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/bookings/cancel?car_name=Tesla+Model+S&customer_name=Jane+Doe", nil)

	var req dto.CancelByNameRequest
	assert.False(t, req.IsValid())

	req.FromRequest(r)

	assert.True(t, req.IsValid())
	assert.Equal(t, "Tesla Model S", req.CarName)
	assert.Equal(t, "Jane Doe", req.CustomerName)
}
