package dto

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentwheels/internal/domains/car/model"
	"rentwheels/shared"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/failure"
	gModel "rentwheels/shared/model"
)

const (
	MessageRequiredFields = "Please fill in all required fields!"
	MessageInvalidPrice   = "Please enter a valid price!"
	MessageInvalidSeats   = "Please enter a valid number of seats!"
)

type CreateCarRequest struct {
	Name         string                `json:"name"          validate:"required,max=100"`
	PricePerDay  string                `json:"price_per_day" validate:"required"`
	Seats        string                `json:"seats"         validate:"required"`
	Transmission string                `json:"transmission"  validate:"required,oneof=Manual Automatic"`
	FuelType     string                `json:"fuel_type"     validate:"required,oneof=Petrol Diesel Electric Hybrid"`
	Status       string                `json:"status"        validate:"omitempty,oneof=Available Unavailable"`
	Image        *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile    multipart.File        `json:"-"`
}

// FromForm reads a multipart or url-encoded car form. The image part is optional.
func (c *CreateCarRequest) FromForm(r *http.Request) {
	c.Name = strings.TrimSpace(r.FormValue("name"))
	c.PricePerDay = strings.TrimSpace(r.FormValue("price_per_day"))
	c.Seats = strings.TrimSpace(r.FormValue("seats"))
	c.Transmission = r.FormValue("transmission")
	c.FuelType = r.FormValue("fuel_type")
	c.Status = r.FormValue("status")

	if file, header, err := r.FormFile("image"); err == nil {
		c.ImageFile = file
		c.Image = header
	}
}

// Check applies the catalog form rules in the order the storefront reports
// them: missing fields first, then a malformed price or seat count.
func (c *CreateCarRequest) Check() (price float64, seats int, err error) {
	if c.Name == "" || c.PricePerDay == "" || c.Seats == "" || c.Transmission == "" || c.FuelType == "" {
		return 0, 0, failure.BadRequestFromString(MessageRequiredFields)
	}

	price, ok := parsePrice(c.PricePerDay)
	if !ok {
		return 0, 0, failure.BadRequestFromString(MessageInvalidPrice)
	}

	seats, err = strconv.Atoi(c.Seats)
	if err != nil || seats <= 0 {
		return 0, 0, failure.BadRequestFromString(MessageInvalidSeats)
	}

	return price, seats, nil
}

func (c *CreateCarRequest) ToModel(user, imageRef string, price float64, seats int, at time.Time) model.Car {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	return model.Car{
		ID:           uuid.NewString(),
		Name:         c.Name,
		PricePerDay:  price,
		Seats:        seats,
		Transmission: c.Transmission,
		FuelType:     c.FuelType,
		Status:       status,
		ImageRef:     imageRef,
		Metadata:     gModel.NewMetadata(user, at),
	}
}

type UpdateCarRequest struct {
	Name         string                `json:"name"          validate:"omitempty,max=100"`
	PricePerDay  string                `json:"price_per_day"`
	Seats        string                `json:"seats"`
	Transmission string                `json:"transmission"  validate:"omitempty,oneof=Manual Automatic"`
	FuelType     string                `json:"fuel_type"     validate:"omitempty,oneof=Petrol Diesel Electric Hybrid"`
	Image        *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile    multipart.File        `json:"-"`
}

func (u *UpdateCarRequest) FromForm(r *http.Request) {
	u.Name = strings.TrimSpace(r.FormValue("name"))
	u.PricePerDay = strings.TrimSpace(r.FormValue("price_per_day"))
	u.Seats = strings.TrimSpace(r.FormValue("seats"))
	u.Transmission = r.FormValue("transmission")
	u.FuelType = r.FormValue("fuel_type")

	if file, header, err := r.FormFile("image"); err == nil {
		u.ImageFile = file
		u.Image = header
	}
}

func (u *UpdateCarRequest) IsEmpty() bool {
	return u.Name == "" && u.PricePerDay == "" && u.Seats == "" && u.Transmission == "" && u.FuelType == "" && u.Image == nil
}

// ToFields converts the non-empty parts of the request into column updates.
// The image column is set by the caller after the upload succeeds.
func (u *UpdateCarRequest) ToFields() (map[string]any, error) {
	fields := map[string]any{}

	if u.Name != "" {
		fields[model.FieldName] = u.Name
	}

	if u.PricePerDay != "" {
		price, ok := parsePrice(u.PricePerDay)
		if !ok {
			return nil, failure.BadRequestFromString(MessageInvalidPrice)
		}

		fields[model.FieldPricePerDay] = price
	}

	if u.Seats != "" {
		seats, err := strconv.Atoi(u.Seats)
		if err != nil || seats <= 0 {
			return nil, failure.BadRequestFromString(MessageInvalidSeats)
		}

		fields[model.FieldSeats] = seats
	}

	if u.Transmission != "" {
		fields[model.FieldTransmission] = u.Transmission
	}

	if u.FuelType != "" {
		fields[model.FieldFuelType] = u.FuelType
	}

	return fields, nil
}

func parsePrice(value string) (float64, bool) {
	price, err := strconv.ParseFloat(strings.TrimPrefix(value, "₹"), 64)
	if err != nil || price <= 0 {
		return 0, false
	}

	return price, true
}

type UpdateCarStatusRequest struct {
	Name   string `json:"name"   validate:"required"`
	Status string `json:"status" validate:"required,oneof=Available Booked Unavailable"`
}

// CarFilter holds the catalog browse criteria. Zero values mean "any".
type CarFilter struct {
	Name         string
	Seats        *int
	Transmission string
	FuelType     string
	MaxPrice     *float64
	Status       string
}

func (f *CarFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Name = strings.TrimSpace(query.Get("name"))
	f.Seats = shared.ConvertStringToInt(query.Get("seats"))
	f.Transmission = query.Get("transmission")
	f.FuelType = query.Get("fuel_type")
	f.MaxPrice = shared.ConvertStringToFloat(query.Get("max_price"))
	f.Status = query.Get("status")
}

func (f *CarFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.NewFilterGroup()

	if f.Name != "" {
		group = group.And(gDto.Filter{Field: model.FieldName, Value: f.Name, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if f.Seats != nil {
		group = group.And(gDto.Filter{Field: model.FieldSeats, Value: *f.Seats, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Transmission != "" {
		group = group.And(gDto.Filter{Field: model.FieldTransmission, Value: f.Transmission, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.FuelType != "" {
		group = group.And(gDto.Filter{Field: model.FieldFuelType, Value: f.FuelType, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.MaxPrice != nil {
		group = group.And(gDto.Filter{ArgName: "max_price", Field: model.FieldPricePerDay, Value: *f.MaxPrice, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	if f.Status != "" {
		group = group.And(gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return group
}

type CarResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PricePerDay  float64 `json:"price_per_day"`
	Seats        int     `json:"seats"`
	Transmission string  `json:"transmission"`
	FuelType     string  `json:"fuel_type"`
	Status       string  `json:"status"`
	ImageRef     string  `json:"image_ref"`
	gDto.Metadata
}

func (r *CarResponse) FromModel(car model.Car) {
	r.ID = car.ID
	r.Name = car.Name
	r.PricePerDay = car.PricePerDay
	r.Seats = car.Seats
	r.Transmission = car.Transmission
	r.FuelType = car.FuelType
	r.Status = car.Status
	r.ImageRef = car.ImageRef
	r.Metadata.FromModel(car.Metadata)
}

type GetCarsResponse struct {
	Cars      []CarResponse `json:"cars"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetCarsResponse) FromModels(models []model.Car, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cars = make([]CarResponse, len(models))
	for i, mod := range models {
		r.Cars[i].FromModel(mod)
	}
}
