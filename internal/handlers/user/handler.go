package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"rentwheels/infras/otel"
	"rentwheels/internal/domains/user/model/dto"
	"rentwheels/internal/domains/user/service"
	"rentwheels/shared/constant"
	gDto "rentwheels/shared/dto"
	"rentwheels/shared/validator"
	"rentwheels/transport/http/response"
)

// Handler serves the admin account management screen.
type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(accounts chi.Router) {
		accounts.Get("/", handler.GetUsers)
		accounts.Post("/", handler.CreateUser)

		accounts.Route("/{id}", func(account chi.Router) {
			account.Get("/", handler.GetUserByID)
			account.Patch("/", handler.UpdateUser)
			account.Delete("/", handler.DeleteUser)
		})
	})
}

func (handler *Handler) fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// CreateUser registers an account from the admin dashboard. Unlike
// self-registration the admin may pick the role.
// @Summary Create account
// @Description Admin creates a customer or admin account. The password is stored hashed.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Account details"
// @Success 201 {object} response.Data[dto.UserResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Username already exists"
// @Failure 500 {object} response.Error
// @Router /v1/users [post]
// @Security BearerAuth
func (handler *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	var req dto.CreateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "invalid account payload")

		return
	}

	account, err := handler.service.Create(ctx, req)
	if err != nil {
		handler.fail(w, scope, err, "admin could not create account")

		return
	}

	response.WithJSON(w, http.StatusCreated, account)
}

// GetUsers lists accounts, newest first.
// @Summary List accounts
// @Tags User
// @Produce json
// @Param pagination query gDto.QueryParams false "Paging and sorting"
// @Param search query string false "Name or username contains"
// @Param role query string false "admin or user"
// @Success 200 {object} response.Data[dto.GetUsersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	var filter dto.UserFilter
	filter.FromRequest(r)

	accounts, err := handler.service.GetAll(ctx, params, filter.ToFilterGroup())
	if err != nil {
		handler.fail(w, scope, err, "could not list accounts")

		return
	}

	response.WithJSON(w, http.StatusOK, accounts)
}

// GetUserByID
// @Summary Get account
// @Tags User
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	account, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		handler.fail(w, scope, err, "could not load account")

		return
	}

	response.WithJSON(w, http.StatusOK, account)
}

// UpdateUser edits name, email or role. The admin account keeps its role.
// @Summary Update account
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error "Admin role cannot be removed"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	var req dto.UpdateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "invalid account update payload")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		handler.fail(w, scope, err, "could not update account")

		return
	}

	response.WithMessage(w, http.StatusOK, "Account updated")
}

// DeleteUser removes an account. The configured admin username is refused.
// @Summary Delete account
// @Tags User
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error "Cannot delete the admin account!"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		handler.fail(w, scope, err, "could not delete account")

		return
	}

	response.WithMessage(w, http.StatusOK, "Account deleted")
}
