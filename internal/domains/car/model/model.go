package model

import "rentwheels/shared/model"

const (
	TableName  = "cars"
	EntityName = "car"

	FieldID           = "id"
	FieldName         = "name"
	FieldPricePerDay  = "price_per_day"
	FieldSeats        = "seats"
	FieldTransmission = "transmission"
	FieldFuelType     = "fuel_type"
	FieldStatus       = "status"
	FieldImageRef     = "image_ref"
)

const (
	StatusAvailable   = "Available"
	StatusBooked      = "Booked"
	StatusUnavailable = "Unavailable"
)

const (
	TransmissionManual    = "Manual"
	TransmissionAutomatic = "Automatic"
)

const (
	FuelPetrol   = "Petrol"
	FuelDiesel   = "Diesel"
	FuelElectric = "Electric"
	FuelHybrid   = "Hybrid"
)

// Catalog cache prefixes. Anything that changes a car's row or status must
// clear all of them.
const (
	CacheGetCar    = "car:get"
	CacheGetAllCar = "car:gets"
	CacheCountCar  = "car:count"
)

func CachePrefixes() []string {
	return []string{CacheGetCar, CacheGetAllCar, CacheCountCar}
}

// SortableFields are the columns a catalog listing may be ordered by.
var SortableFields = []string{FieldName, FieldPricePerDay, FieldSeats, "created_at"}

type Car struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	PricePerDay  float64 `db:"price_per_day"`
	Seats        int     `db:"seats"`
	Transmission string  `db:"transmission"`
	FuelType     string  `db:"fuel_type"`
	Status       string  `db:"status"`
	ImageRef     string  `db:"image_ref"`
	model.Metadata
}

func (c Car) IsAvailable() bool {
	return c.Status == StatusAvailable
}

func (c Car) IsBooked() bool {
	return c.Status == StatusBooked
}
