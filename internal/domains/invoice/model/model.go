package model

import (
	"fmt"
	"time"

	"rentwheels/shared/model"
)

const (
	TableName  = "invoices"
	EntityName = "invoice"

	FieldID            = "id"
	FieldInvoiceNumber = "invoice_number"
	FieldReservationID = "reservation_id"
	FieldCarID         = "car_id"
	FieldCarName       = "car_name"
	FieldCustomerID    = "customer_id"
	FieldCustomerName  = "customer_name"
	FieldIssueDate     = "issue_date"
	FieldTotal         = "total"
)

const (
	PaymentUPI            = "UPI / Google Pay / PhonePe"
	PaymentQRCode         = "Scan QR Code"
	PaymentCashOnDelivery = "Cash on Delivery"
	PaymentCashOnReturn   = "Cash on Return"
)

var PaymentMethods = []string{PaymentUPI, PaymentQRCode, PaymentCashOnDelivery, PaymentCashOnReturn}

var SortableFields = []string{FieldInvoiceNumber, FieldIssueDate, FieldTotal, "created_at"}

// Invoice is the immutable billing record written together with a reservation.
type Invoice struct {
	ID            string    `db:"id"`
	InvoiceNumber string    `db:"invoice_number"`
	ReservationID string    `db:"reservation_id"`
	CarID         string    `db:"car_id"`
	CarName       string    `db:"car_name"`
	CustomerID    string    `db:"customer_id"`
	CustomerName  string    `db:"customer_name"`
	RentalPeriod  string    `db:"rental_period"`
	Total         float64   `db:"total"`
	IssueDate     time.Time `db:"issue_date"`
	PaymentMethod string    `db:"payment_method"`
	model.Metadata
}

// InvoiceNumber renders INV-{year}-{seq} with seq zero padded to three digits.
func InvoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV-%d-%03d", year, seq)
}
