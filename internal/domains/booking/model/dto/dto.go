package dto

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentwheels/internal/domains/booking/model"
	carModel "rentwheels/internal/domains/car/model"
	invoiceModel "rentwheels/internal/domains/invoice/model"
	invoiceDto "rentwheels/internal/domains/invoice/model/dto"
	reservationModel "rentwheels/internal/domains/reservation/model"
	reservationDto "rentwheels/internal/domains/reservation/model/dto"
	gDto "rentwheels/shared/dto"
	gModel "rentwheels/shared/model"
	"rentwheels/shared/timezone"
)

const (
	MessageSelectCar         = "Please select a car!"
	MessageSelectDates       = "Please select a start and end date!"
	MessageEndBeforeStart    = "End date cannot be before start date!"
	MessageSelectPayment     = "Please select a payment method."
	MessageUnknownPayment    = "Unsupported payment method!"
	MessageRequiredCancelKey = "Please provide the car name and customer name!"
)

var (
	ErrSelectCar      = errors.New(MessageSelectCar)
	ErrSelectDates    = errors.New(MessageSelectDates)
	ErrEndBeforeStart = errors.New(MessageEndBeforeStart)
	ErrSelectPayment  = errors.New(MessageSelectPayment)
	ErrUnknownPayment = errors.New(MessageUnknownPayment)
)

// BookRequest identifies the car by id or, for older clients, by name.
type BookRequest struct {
	CarID         string `json:"car_id"`
	CarName       string `json:"car_name"`
	StartDate     string `json:"start_date"     example:"2024-01-01"`
	EndDate       string `json:"end_date"       example:"2024-01-03"`
	PaymentMethod string `json:"payment_method" example:"Scan QR Code"`
}

// Check validates the request in checkout order and returns the parsed
// calendar dates.
func (r *BookRequest) Check() (start, end time.Time, err error) {
	if strings.TrimSpace(r.CarID) == "" && strings.TrimSpace(r.CarName) == "" {
		return start, end, ErrSelectCar
	}

	start, err = timezone.ParseDate(strings.TrimSpace(r.StartDate))
	if err != nil {
		return start, end, ErrSelectDates
	}

	end, err = timezone.ParseDate(strings.TrimSpace(r.EndDate))
	if err != nil {
		return start, end, ErrSelectDates
	}

	if end.Before(start) {
		return start, end, ErrEndBeforeStart
	}

	if r.PaymentMethod == "" {
		return start, end, ErrSelectPayment
	}

	if !slices.Contains(invoiceModel.PaymentMethods, r.PaymentMethod) {
		return start, end, ErrUnknownPayment
	}

	return start, end, nil
}

func (r *BookRequest) CarFilter() gDto.FilterGroup {
	if r.CarID != "" {
		return gDto.NewFilterGroup(gDto.Filter{Field: carModel.FieldID, Value: r.CarID, Operator: gDto.FilterOperatorEq, Table: carModel.TableName})
	}

	return gDto.NewFilterGroup(gDto.Filter{Field: carModel.FieldName, Value: strings.TrimSpace(r.CarName), Operator: gDto.FilterOperatorEq, Table: carModel.TableName})
}

// Customer is the account the booking is made for.
type Customer struct {
	ID   string
	Name string
}

// ToModel builds the reservation and its invoice. seq is the invoice
// sequence number for the issue year.
func (r *BookRequest) ToModel(car carModel.Car, customer Customer, start, end time.Time, cost float64, seq int, today, at time.Time) model.Booking {
	meta := gModel.Metadata{
		CreatedAt:  at,
		ModifiedAt: at,
		CreatedBy:  customer.ID,
		ModifiedBy: customer.ID,
	}

	reservation := reservationModel.Reservation{
		ID:           uuid.NewString(),
		CarID:        car.ID,
		CarName:      car.Name,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		StartDate:    start,
		EndDate:      end,
		TotalCost:    cost,
		Status:       reservationModel.StatusUpcoming,
		Metadata:     meta,
	}

	return model.Booking{
		Reservation: reservation,
		Invoice: invoiceModel.Invoice{
			ID:            uuid.NewString(),
			InvoiceNumber: invoiceModel.InvoiceNumber(today.Year(), seq),
			ReservationID: reservation.ID,
			CarID:         car.ID,
			CarName:       car.Name,
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			RentalPeriod:  reservationDto.RentalPeriod(reservation),
			Total:         cost,
			IssueDate:     today,
			PaymentMethod: r.PaymentMethod,
			Metadata:      meta,
		},
	}
}

// CancelByNameRequest locates an upcoming reservation the way the desktop
// client did, by car name and customer name.
type CancelByNameRequest struct {
	CarName      string `json:"car_name"`
	CustomerName string `json:"customer_name"`
}

func (r *CancelByNameRequest) IsValid() bool {
	return strings.TrimSpace(r.CarName) != "" && strings.TrimSpace(r.CustomerName) != ""
}

type BookingResponse struct {
	Reservation reservationDto.ReservationResponse `json:"reservation"`
	Invoice     invoiceDto.InvoiceResponse         `json:"invoice"`
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.Reservation.FromModel(booking.Reservation)
	r.Invoice.FromModel(booking.Invoice)
}

type ClearReservationsResponse struct {
	Cleared int `json:"cleared"`
}

// FromRequest reads a cancel-by-name request from either the JSON body or
// the query string.
func (r *CancelByNameRequest) FromRequest(req *http.Request) {
	if r.CarName == "" {
		r.CarName = req.URL.Query().Get("car_name")
	}

	if r.CustomerName == "" {
		r.CustomerName = req.URL.Query().Get("customer_name")
	}
}
