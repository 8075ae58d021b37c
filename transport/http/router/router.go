package router

import (
	"saleema/internal/handlers/booking"
	"saleema/internal/handlers/payment"
	"saleema/internal/handlers/tourpackage"
	"saleema/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Package tourpackage.Handler
	Booking booking.Handler
	Payment payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.AuthRole
}

// SetupRoutes mounts every API route under /v1. Public routes are marked
// skip in permissions.json; everything else needs a token or the API key.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Auth.APIKey, r.Auth.Auth, r.Auth.RBAC)

		r.DomainHandlers.Package.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, auth middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           auth,
	}
}
