package model

import (
	invoiceModel "rentwheels/internal/domains/invoice/model"
	reservationModel "rentwheels/internal/domains/reservation/model"
)

const (
	EntityName = "booking"
)

// Booking is the pair written by one successful checkout.
type Booking struct {
	Reservation reservationModel.Reservation
	Invoice     invoiceModel.Invoice
}
