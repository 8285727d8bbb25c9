package car

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"rentwheels/infras/otel"
	"rentwheels/internal/availability"
	"rentwheels/internal/domains/car/model/dto"
	"rentwheels/internal/domains/car/service"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/failure"
	"rentwheels/shared/timezone"
	"rentwheels/shared/validator"
	"rentwheels/transport/http/response"
)

type Handler struct {
	service service.Car
	engine  availability.Engine
	clock   timezone.Clock
	otel    otel.Otel
}

func New(service service.Car, engine availability.Engine, clock timezone.Clock, otel otel.Otel) Handler {
	return Handler{
		service: service,
		engine:  engine,
		clock:   clock,
		otel:    otel,
	}
}

type ReturnInfoResponse struct {
	ReturnInfo string `json:"return_info"`
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cars", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCar)
		routerGroup.Get("/", handler.GetCars)
		routerGroup.Get("/return-info", handler.GetReturnInfoByName)
		routerGroup.Patch("/status", handler.UpdateCarStatus)
		routerGroup.Get("/{id}", handler.GetCarByID)
		routerGroup.Get("/{id}/return-info", handler.GetReturnInfo)
		routerGroup.Patch("/{id}", handler.UpdateCar)
		routerGroup.Patch("/{id}/toggle-status", handler.ToggleCarStatus)
		routerGroup.Delete("/{id}", handler.DeleteCar)
	})
}

// CreateCar adds a car to the catalog.
// @Summary Create a car
// @Tags Car
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Car name"
// @Param price_per_day formData string true "Daily rate, e.g. 1500 or ₹1500"
// @Param seats formData integer true "Seats"
// @Param transmission formData string true "Manual or Automatic"
// @Param fuel_type formData string true "Petrol, Diesel, Electric or Hybrid"
// @Param status formData string false "Available or Unavailable"
// @Param image formData file false "Car image"
// @Success 201 {object} response.Data[dto.CarResponse] "Car created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cars [post]
// @Security BearerAuth
func (handler *Handler) CreateCar(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCar")
	defer scope.End()

	if err := parseForm(request); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse car form")

		response.WithError(writer, err)

		return
	}

	req := dto.CreateCarRequest{}
	req.FromForm(request)

	if req.ImageFile != nil {
		defer req.ImageFile.Close()
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create car")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Car created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetCars browses the catalog.
// @Summary List cars
// @Description Catalog browse, newest first by default.
// @Tags Car
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Name contains (case-insensitive)"
// @Param seats query integer false "Seats"
// @Param transmission query string false "Transmission"
// @Param fuel_type query string false "Fuel type"
// @Param max_price query number false "Maximum daily rate"
// @Param status query string false "Available, Booked or Unavailable"
// @Success 200 {object} response.Data[dto.GetCarsResponse] "List of cars"
// @Failure 500 {object} response.Error
// @Router /v1/cars [get]
func (handler *Handler) GetCars(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCars")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.CarFilter{}
	filter.FromRequest(r)

	res, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cars")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetCarByID returns one car.
// @Summary Get a car
// @Tags Car
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} response.Data[dto.CarResponse] "Car"
// @Failure 404 {object} response.Error
// @Router /v1/cars/{id} [get]
func (handler *Handler) GetCarByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCarByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get car")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReturnInfo reports when a booked car comes back.
// @Summary Car return info
// @Description "Returns today", "Returns tomorrow", "Returns in N days" or "Overdue return". Empty when the car is not booked.
// @Tags Car
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} response.Data[ReturnInfoResponse] "Return info"
// @Router /v1/cars/{id}/return-info [get]
func (handler *Handler) GetReturnInfo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReturnInfo")
	defer scope.End()

	info, err := handler.engine.ReturnInfoByID(ctx, chi.URLParam(r, constant.RequestParamID), timezone.Today(handler.clock))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to describe car return")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, ReturnInfoResponse{ReturnInfo: info})
}

// GetReturnInfoByName is the by-name variant of GetReturnInfo.
// @Summary Car return info by name
// @Tags Car
// @Produce json
// @Param name query string true "Car name"
// @Success 200 {object} response.Data[ReturnInfoResponse] "Return info"
// @Failure 400 {object} response.Error
// @Router /v1/cars/return-info [get]
func (handler *Handler) GetReturnInfoByName(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReturnInfoByName")
	defer scope.End()

	name := r.URL.Query().Get("name")
	if name == "" {
		response.WithError(w, failure.BadRequestFromString("name is required"))

		return
	}

	info, err := handler.engine.DescribeReturn(ctx, name, timezone.Today(handler.clock))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to describe car return")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, ReturnInfoResponse{ReturnInfo: info})
}

// UpdateCar edits a car.
// @Summary Update a car
// @Tags Car
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Car ID"
// @Param name formData string false "Car name"
// @Param price_per_day formData string false "Daily rate"
// @Param seats formData integer false "Seats"
// @Param transmission formData string false "Transmission"
// @Param fuel_type formData string false "Fuel type"
// @Param image formData file false "Replacement image"
// @Success 200 {object} response.Message "Car updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/cars/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCar")
	defer scope.End()

	if err := parseForm(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse car form")

		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateCarRequest{}
	req.FromForm(r)

	if req.ImageFile != nil {
		defer req.ImageFile.Close()
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update car")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Car updated successfully")
}

// ToggleCarStatus flips a car between Available and Unavailable.
// @Summary Toggle car status
// @Tags Car
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} response.Data[dto.CarResponse] "Updated car"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/cars/{id}/toggle-status [patch]
// @Security BearerAuth
func (handler *Handler) ToggleCarStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleCarStatus")
	defer scope.End()

	res, err := handler.service.ToggleStatus(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle car status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateCarStatus sets a car's status by name.
// @Summary Update car status by name
// @Tags Car
// @Accept json
// @Produce json
// @Param request body dto.UpdateCarStatusRequest true "Status update"
// @Success 200 {object} response.Message "Car status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/cars/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCarStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCarStatus")
	defer scope.End()

	req := dto.UpdateCarStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update car status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Car status updated successfully")
}

// DeleteCar removes a car from the catalog.
// @Summary Delete a car
// @Tags Car
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} response.Message "Car deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/cars/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCar")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete car")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Car deleted successfully")
}

// parseForm accepts both multipart and url-encoded car forms.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(constant.RequestMaxMemory)
	if err == nil || err == http.ErrNotMultipart {
		return nil
	}

	return failure.BadRequest(err) // nolint:wrapcheck
}
