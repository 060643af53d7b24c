package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { Register(registerPage) }

func registerPage(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Page(d))
	r.Handle("/static/*", handlers.Static())
}
