package dto

import (
	"net/http"
	"strings"

	"rentwheels/internal/domains/reservation/model"
	"rentwheels/shared"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/timezone"
)

type ReservationFilter struct {
	CarID        string
	CarName      string
	CustomerID   string
	CustomerName string
	Status       string
}

func (f *ReservationFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.CarID = query.Get("car_id")
	f.CarName = strings.TrimSpace(query.Get("car_name"))
	f.CustomerName = strings.TrimSpace(query.Get("customer_name"))
	f.Status = query.Get("status")
}

func (f *ReservationFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.NewFilterGroup()

	eq := func(field string, value string) {
		if value != "" {
			group = group.And(gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.TableName})
		}
	}

	eq(model.FieldCarID, f.CarID)
	eq(model.FieldCarName, f.CarName)
	eq(model.FieldCustomerID, f.CustomerID)
	eq(model.FieldCustomerName, f.CustomerName)
	eq(model.FieldStatus, f.Status)

	return group
}

type ReservationResponse struct {
	ID           string  `json:"id"`
	CarID        string  `json:"car_id"`
	CarName      string  `json:"car_name"`
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	RentalPeriod string  `json:"rental_period"`
	TotalCost    float64 `json:"total_cost"`
	Status       string  `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(res model.Reservation) {
	r.ID = res.ID
	r.CarID = res.CarID
	r.CarName = res.CarName
	r.CustomerID = res.CustomerID
	r.CustomerName = res.CustomerName
	r.StartDate = res.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = res.EndDate.Format(constant.DateOnlyFormat)
	r.RentalPeriod = RentalPeriod(res)
	r.TotalCost = res.TotalCost
	r.Status = res.Status
	r.Metadata.FromModel(res.Metadata)
}

// RentalPeriod renders "January 2, 2006 - January 4, 2006".
func RentalPeriod(res model.Reservation) string {
	return timezone.FormatDate(res.StartDate, constant.DisplayDateFormat) + " - " + timezone.FormatDate(res.EndDate, constant.DisplayDateFormat)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
