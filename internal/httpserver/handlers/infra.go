package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	redisstore "github.com/MrSnakeDoc/shelf/internal/store/redis"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	EntriesLoaded *int   `json:"entries_loaded,omitempty"`
	Categories    *int   `json:"categories,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	LastError     string `json:"last_error,omitempty"`
	Source        string `json:"source,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		components := map[string]componentStatus{
			"directory": checkDirectory(d),
			"redis":     checkRedis(r.Context(), d),
		}

		response := infraResponse{
			Status:     determineStatus(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func checkDirectory(d deps.Deps) componentStatus {
	dir := d.MemoryIndex.Directory()
	entries := dir.Len()
	categories := len(dir.Categories())

	lastReload := d.MemoryIndex.GetLastReload()
	lastReloadStr := "never"
	if !lastReload.IsZero() {
		lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
	}

	status := componentStatus{
		OK:            !lastReload.IsZero(),
		EntriesLoaded: &entries,
		Categories:    &categories,
		LastReload:    lastReloadStr,
		Source:        d.Source,
	}
	if at, err := d.MemoryIndex.LastFailure(); err != nil {
		status.LastError = at.Format("2006-01-02 15:04:05") + ": " + err.Error()
	}
	return status
}

// determineStatus: no loaded directory is critical, redis down is degraded.
func determineStatus(components map[string]componentStatus) string {
	if dir, exists := components["directory"]; exists && !dir.OK {
		return "critical"
	}

	if redis, exists := components["redis"]; exists && !redis.OK && redis.Mode != "disabled" {
		return "degraded"
	}

	return "ok"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "no-snapshot-no-usage",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := redisstore.NewStore(d.RedisClient).Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "no-snapshot-no-usage",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "snapshot-and-usage-enabled",
	}
}
