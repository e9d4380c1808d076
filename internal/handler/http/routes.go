package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Route keys of the rate limiter.
const (
	routeRegister  = "register"
	routeLogin     = "login"
	routeProtected = "protected"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP, h.withTraceID, h.withLogging, middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Route("/auth", func(r chi.Router) {
		r.With(h.rateLimit(routeRegister, h.quotas.Register)).Post("/", h.register)
		r.With(h.rateLimit(routeLogin, h.quotas.Login)).Post("/token", h.login)
	})

	router.Get("/version", h.getServerVersion)

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(requireRoute(router), h.rateLimit(routeProtected, h.quotas.Protected), h.auth)

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", h.getMe)
			r.Put("/change-password", h.changePassword)
		})

		r.Route("/todos", func(r chi.Router) {
			r.Post("/", h.createTodo)
			r.Get("/", h.getTodos)
			r.Get("/{id}", h.getTodo)
			r.Put("/{id}", h.updateTodo)
			r.Put("/{id}/complete", h.completeTodo)
			r.Delete("/{id}", h.deleteTodo)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
