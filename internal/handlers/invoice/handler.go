package invoice

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"rentwheels/infras/otel"
	"rentwheels/internal/domains/invoice/model"
	"rentwheels/internal/domains/invoice/model/dto"
	"rentwheels/internal/domains/invoice/service"
	"rentwheels/shared"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/failure"
	"rentwheels/transport/http/response"
)

type Handler struct {
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/invoices", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInvoices)
		routerGroup.Delete("/", handler.ClearInvoices)
		routerGroup.Get("/mine", handler.GetMyInvoices)
		routerGroup.Get("/reservation/{id}", handler.GetInvoiceByReservation)
		routerGroup.Get("/{id}", handler.GetInvoiceByID)
	})
}

// GetInvoices lists every invoice.
// @Summary Get all invoices
// @Tags Invoice
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param customer_name query string false "Customer name"
// @Param car_name query string false "Car name"
// @Param payment_method query string false "Payment method"
// @Success 200 {object} response.Data[dto.GetInvoicesResponse] "List of invoices"
// @Failure 500 {object} response.Error
// @Router /v1/invoices [get]
// @Security BearerAuth
func (handler *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.InvoiceFilter{}
	filter.FromRequest(r)

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyInvoices lists the caller's invoices.
// @Summary Get my invoices
// @Tags Invoice
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetInvoicesResponse] "List of invoices"
// @Router /v1/invoices/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyInvoices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	userID, _ := shared.Actor(ctx)

	res, err := handler.service.GetByCustomer(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("customer_id", userID).Msg("failed to get customer invoices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetInvoiceByID returns one invoice.
// @Summary Get an invoice
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Data[dto.InvoiceResponse] "Invoice"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/invoices/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoiceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get invoice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetInvoiceByReservation returns the invoice paired with a reservation.
// @Summary Get the invoice of a reservation
// @Tags Invoice
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.InvoiceResponse] "Invoice"
// @Failure 404 {object} response.Error
// @Router /v1/invoices/reservation/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInvoiceByReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoiceByReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.GetByReservation(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to get invoice by reservation")

		response.WithError(w, err)

		return
	}

	if res == nil {
		response.WithError(w, failure.NotFound(model.EntityName))

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ClearInvoices deletes the caller's invoices; an admin clears every invoice.
// Reservations are left untouched.
// @Summary Clear invoices
// @Tags Invoice
// @Produce json
// @Success 200 {object} response.Data[dto.ClearInvoicesResponse] "Number of invoices cleared"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices [delete]
// @Security BearerAuth
func (handler *Handler) ClearInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearInvoices")
	defer scope.End()

	res, err := handler.service.ClearAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to clear invoices")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Invoices cleared")

	response.WithJSON(w, http.StatusOK, res)
}
