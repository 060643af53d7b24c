package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { Register(registerHealthz) }

// liveness stays open so orchestrators can always probe it
func registerHealthz(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
}
