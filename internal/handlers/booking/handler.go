package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"rentwheels/infras/otel"
	"rentwheels/internal/domains/booking/model/dto"
	"rentwheels/internal/domains/booking/service"
	"rentwheels/shared/constant"
	"rentwheels/shared/validator"
	"rentwheels/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Delete("/", handler.ClearBookings)
		routerGroup.Post("/cancel", handler.CancelBookingByName)
		routerGroup.Delete("/{id}", handler.CancelBooking)
	})
}

// CreateBooking reserves a car and issues its invoice.
// @Summary Book a car
// @Description Checkout: validates the request, reserves the car for the inclusive date range, issues the invoice and marks the car Booked.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.BookRequest true "Booking request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking confirmed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.BookRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Book(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// CancelBooking cancels an upcoming reservation and deletes its invoice.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// CancelBookingByName cancels the upcoming reservation matching a car name
// and a customer name.
// @Summary Cancel a booking by name
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CancelByNameRequest false "Car and customer name"
// @Param car_name query string false "Car name"
// @Param customer_name query string false "Customer name"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBookingByName(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBookingByName")
	defer scope.End()

	req := dto.CancelByNameRequest{}

	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	req.FromRequest(r)

	if err := handler.service.CancelByName(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking by name")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// ClearBookings deletes reservations in bulk. Admins clear everything,
// users clear their own.
// @Summary Clear reservations
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.ClearReservationsResponse] "Number of reservations cleared"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [delete]
// @Security BearerAuth
func (handler *Handler) ClearBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearBookings")
	defer scope.End()

	res, err := handler.service.ClearAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("cleared", res.Cleared).Msg("failed to clear bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
