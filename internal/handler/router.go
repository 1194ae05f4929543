package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propertyhub/propertyhub-go/internal/middleware"
	"github.com/propertyhub/propertyhub-go/internal/repository"
)

// NewRouter assembles the API routes. Register and login are open; every
// other /api route sits behind the bearer-token gate plus RequireAuth.
func NewRouter(auth *AuthHandler, properties *PropertyHandler, users repository.UserRepository, jwtSecret string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/auth/register", auth.HandleRegister)
	r.Post("/api/auth/login", auth.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(users, jwtSecret))
		r.Use(middleware.RequireAuth)

		r.Get("/api/auth/me", auth.HandleMe)

		r.Route("/api/properties", func(r chi.Router) {
			r.Get("/", properties.HandleList)
			r.Post("/", properties.HandleCreate)
			r.Get("/{id}", properties.HandleGet)
			r.Put("/{id}", properties.HandleUpdate)
			r.Delete("/{id}", properties.HandleDelete)
		})
	})

	return r
}
