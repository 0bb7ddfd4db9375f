package router

import (
	"pawstay/internal/handlers/booking"
	"pawstay/internal/handlers/chat"
	"pawstay/internal/handlers/matching"
	"pawstay/internal/handlers/notification"
	"pawstay/internal/handlers/pet"
	"pawstay/internal/handlers/session"
	"pawstay/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Session      session.Handler
	Pet          pet.Handler
	Booking      booking.Handler
	Notification notification.Handler
	Chat         chat.Handler
	Matching     matching.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Session        middleware.Session
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.Tracing, r.App.RateLimit(), r.Session.Attach)

		r.DomainHandlers.Session.Router(routerGroup)
		r.DomainHandlers.Pet.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
		r.DomainHandlers.Chat.Router(routerGroup)
		r.DomainHandlers.Matching.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, session middleware.Session) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		Session:        session,
	}
}
