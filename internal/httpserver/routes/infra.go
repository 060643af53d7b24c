package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/mw"
)

func init() { Register(registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/infra", handlers.Infra(d))
}
