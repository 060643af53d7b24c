package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	redisstore "github.com/MrSnakeDoc/shelf/internal/store/redis"
)

// Go counts a click on an entry and redirects to its url.
// Unknown ids and entries without url answer 404.
func Go(d deps.Deps) http.HandlerFunc {
	var store *redisstore.Store
	if d.RedisClient != nil {
		store = redisstore.NewStore(d.RedisClient)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		entry, ok := d.MemoryIndex.Entry(id)
		if !ok || !entry.Clickable() {
			d.Logger.Debug("unknown or empty entry", logger.String("id", id))
			http.NotFound(w, r)
			return
		}

		// Increment usage counter (best effort)
		if store != nil {
			if err := store.IncrementUsage(r.Context(), entry.ID); err != nil {
				d.Logger.Warn("failed to count click",
					logger.String("id", entry.ID),
					logger.Error(err))
			}
		}

		d.Logger.Info("redirecting",
			logger.String("id", entry.ID),
			logger.String("category", entry.Category),
			logger.String("title", entry.Title))

		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, entry.URL, http.StatusFound)
	}
}
