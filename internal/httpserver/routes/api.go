package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.CORS(d.CORSOrigins))
		api.Get("/directory", handlers.Directory(d))
	})
}
