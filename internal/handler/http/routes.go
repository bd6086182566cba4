package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, withGZip, h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/version/build", h.getBuildInfo)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.With(h.pushHashing).Post("/api/sync/push", h.push)
		r.Post("/api/sync/pull", h.pull)

		r.Get("/api/roster", h.listRoster)
		r.Put("/api/roster/{athleteID}", h.enrollAthlete)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
