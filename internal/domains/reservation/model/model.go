package model

import (
	"time"

	"rentwheels/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID           = "id"
	FieldCarID        = "car_id"
	FieldCarName      = "car_name"
	FieldCustomerID   = "customer_id"
	FieldCustomerName = "customer_name"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldTotalCost    = "total_cost"
	FieldStatus       = "status"
)

const (
	StatusUpcoming  = "Upcoming"
	StatusCompleted = "Completed"
)

var SortableFields = []string{FieldStartDate, FieldEndDate, FieldTotalCost, FieldCarName, "created_at"}

// Reservation is a booked rental period. Dates are calendar dates stored at
// midnight UTC; TotalCost is fixed when the reservation is made.
type Reservation struct {
	ID           string    `db:"id"`
	CarID        string    `db:"car_id"`
	CarName      string    `db:"car_name"`
	CustomerID   string    `db:"customer_id"`
	CustomerName string    `db:"customer_name"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	TotalCost    float64   `db:"total_cost"`
	Status       string    `db:"status"`
	model.Metadata
}

func (r Reservation) IsUpcoming() bool {
	return r.Status == StatusUpcoming
}

func (r Reservation) IsOwnedBy(customerID string) bool {
	return r.CustomerID == customerID
}
