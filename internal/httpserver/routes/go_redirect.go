package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/mw"
)

func init() { Register(registerGo) }

func registerGo(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.GoBurst,
		RefillPerIPPerMin: d.GoRefillPerMin,
		MaxEntries:        10_000,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
		Logger:            d.Logger,
		Now:               d.TimeNow,
	})
	r.With(limit).Get("/go/{id}", handlers.Go(d))
}
