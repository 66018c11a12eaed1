package router

import (
	"atrium/internal/handlers/auth"
	"atrium/internal/handlers/penalty"
	"atrium/internal/handlers/rating"
	"atrium/internal/handlers/reservation"
	"atrium/internal/handlers/space"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Space       space.Handler
	Reservation reservation.Handler
	Penalty     penalty.Handler
	Rating      rating.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Space.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Penalty.Router(routerGroup)
		r.DomainHandlers.Rating.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
