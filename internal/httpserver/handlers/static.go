package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/render"
)

// Static serves the embedded stylesheet and script under /static/.
func Static() http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(render.Assets())))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}
