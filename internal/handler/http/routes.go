package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization; the renew and sign-out endpoints are
	// authorized by the refresh token itself
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/sign-in", h.signIn)
		r.Get("/api/auth/renew", h.renew)
		r.Post("/api/auth/sign-out", h.signOut)
	})

	// routes requiring a valid access token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/auth/me", h.me)
		r.Delete("/api/auth/me", h.deleteMe)
	})

	return router
}
