package dto

import (
	"net/http"
	"strings"

	"rentwheels/internal/domains/invoice/model"
	"rentwheels/shared"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/timezone"
)

type InvoiceFilter struct {
	CustomerID    string
	CustomerName  string
	CarName       string
	PaymentMethod string
}

func (f *InvoiceFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.CustomerName = strings.TrimSpace(query.Get("customer_name"))
	f.CarName = strings.TrimSpace(query.Get("car_name"))
	f.PaymentMethod = query.Get("payment_method")
}

func (f *InvoiceFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.NewFilterGroup()

	if f.CustomerID != "" {
		group = group.And(gDto.Filter{Field: model.FieldCustomerID, Value: f.CustomerID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.CustomerName != "" {
		group = group.And(gDto.Filter{Field: model.FieldCustomerName, Value: f.CustomerName, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.CarName != "" {
		group = group.And(gDto.Filter{Field: model.FieldCarName, Value: f.CarName, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if f.PaymentMethod != "" {
		group = group.And(gDto.Filter{Field: "payment_method", Value: f.PaymentMethod, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return group
}

type InvoiceResponse struct {
	ID            string  `json:"id"`
	InvoiceNumber string  `json:"invoice_number"`
	ReservationID string  `json:"reservation_id"`
	CarID         string  `json:"car_id"`
	CarName       string  `json:"car_name"`
	CustomerID    string  `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	RentalPeriod  string  `json:"rental_period"`
	Total         float64 `json:"total"`
	IssueDate     string  `json:"issue_date"`
	PaymentMethod string  `json:"payment_method"`
	gDto.Metadata
}

func (r *InvoiceResponse) FromModel(inv model.Invoice) {
	r.ID = inv.ID
	r.InvoiceNumber = inv.InvoiceNumber
	r.ReservationID = inv.ReservationID
	r.CarID = inv.CarID
	r.CarName = inv.CarName
	r.CustomerID = inv.CustomerID
	r.CustomerName = inv.CustomerName
	r.RentalPeriod = inv.RentalPeriod
	r.Total = inv.Total
	r.IssueDate = timezone.FormatDate(inv.IssueDate, constant.DisplayDateFormat)
	r.PaymentMethod = inv.PaymentMethod
	r.Metadata.FromModel(inv.Metadata)
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Invoices[i].FromModel(mod)
	}
}

type ClearInvoicesResponse struct {
	Cleared int `json:"cleared"`
}
