package router

import (
	"github.com/go-chi/chi/v5"

	"rentwheels/internal/handlers/auth"
	"rentwheels/internal/handlers/availability"
	"rentwheels/internal/handlers/booking"
	"rentwheels/internal/handlers/car"
	"rentwheels/internal/handlers/invoice"
	"rentwheels/internal/handlers/reservation"
	"rentwheels/internal/handlers/user"
	"rentwheels/transport/http/middleware"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Car          car.Handler
	Booking      booking.Handler
	Reservation  reservation.Handler
	Invoice      invoice.Handler
	User         user.Handler
	Availability availability.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Car.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Invoice.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
