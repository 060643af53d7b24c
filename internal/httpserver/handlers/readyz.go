package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready      bool   `json:"ready"`
	Entries    int    `json:"entries"`
	LastReload string `json:"last_reload,omitempty"`
}

// Readyz answers 503 until the source has been loaded once.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastReload := d.MemoryIndex.GetLastReload()

		resp := readyzResponse{
			Ready:   !lastReload.IsZero(),
			Entries: d.MemoryIndex.Count(),
		}
		if resp.Ready {
			resp.LastReload = lastReload.Format(time.RFC3339)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if resp.Ready {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
