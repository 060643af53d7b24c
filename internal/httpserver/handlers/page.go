package handlers

import (
	"bytes"
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/render"
)

// Page renders the directory from the current snapshot.
// Query parameters: q (search), c (clicked category).
func Page(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, failure := d.MemoryIndex.LastFailure()

		req := render.Request{
			Query:   r.URL.Query().Get("q"),
			Clicked: r.URL.Query().Get("c"),
			Failure: failure,
		}

		var buf bytes.Buffer
		if err := d.Renderer.Page(&buf, d.MemoryIndex.Directory(), req); err != nil {
			d.Logger.Error("failed to render page", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if _, err := buf.WriteTo(w); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}
