package api

import (
	"github.com/St1cky1/flight-planner/internal/api/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(avatarHandler *handlers.AvatarHandler, healthHandler *handlers.HealthHandler, apiKey string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(handlers.APIKeyAuth(apiKey))

		r.Route("/employees/{id}/avatar", func(r chi.Router) {
			r.Get("/", avatarHandler.GetAvatar)
			r.Post("/", avatarHandler.UploadAvatar)
		})
	})

	return r
}
