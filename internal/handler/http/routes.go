package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	// proxy headers are client controlled unless a trusted proxy rewrites them
	if h.trustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.metrics.Middleware)
	router.Use(h.withCORS())
	router.Use(middleware.Recoverer)

	router.Get("/metrics", h.metrics.Handler().ServeHTTP)

	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit)
		r.Use(withGZip)
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}

		// routes without authorization
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/health", h.checkHealth)
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/api/user/profile", h.profile)

			r.Post("/api/passwords", h.createEntry)
			r.Get("/api/passwords", h.listEntries)
			r.Get("/api/passwords/{id}", h.getEntry)
			r.Put("/api/passwords/{id}", h.updateEntry)
			r.Delete("/api/passwords/{id}", h.deleteEntry)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
