package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	redisstore "github.com/MrSnakeDoc/shelf/internal/store/redis"
)

type entryResponse struct {
	domain.Entry
	IconSrc string `json:"icon_src"`
	Visible bool   `json:"visible"`
	Clicks  int64  `json:"clicks,omitempty"`
}

type sectionResponse struct {
	Name    string          `json:"name"`
	Visible bool            `json:"visible"`
	Entries []entryResponse `json:"entries"`
}

type directoryResponse struct {
	Query    string            `json:"query,omitempty"`
	Active   string            `json:"active,omitempty"`
	Visible  int               `json:"visible"`
	LoadedAt string            `json:"loaded_at,omitempty"`
	Error    string            `json:"error,omitempty"`
	Sections []sectionResponse `json:"sections"`
}

// Directory returns the grouped directory as JSON with the same filtering
// and highlight rules as the page (q and c query parameters).
func Directory(d deps.Deps) http.HandlerFunc {
	var store *redisstore.Store
	if d.RedisClient != nil {
		store = redisstore.NewStore(d.RedisClient)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		dir := d.MemoryIndex.Directory()
		res := domain.Filter(dir, r.URL.Query().Get("q"))

		resp := directoryResponse{
			Query:    res.Query,
			Active:   domain.ResolveActive(domain.NavSignals{Search: res, Clicked: r.URL.Query().Get("c")}),
			Visible:  res.Visible,
			Sections: make([]sectionResponse, 0, len(res.Sections)),
		}
		if !dir.LoadedAt.IsZero() {
			resp.LoadedAt = dir.LoadedAt.Format(time.RFC3339)
		}
		if _, err := d.MemoryIndex.LastFailure(); err != nil {
			resp.Error = err.Error()
		}

		clicks := usageStats(r.Context(), store, d.Logger)
		for _, sec := range res.Sections {
			sr := sectionResponse{
				Name:    sec.Name,
				Visible: sec.Visible,
				Entries: make([]entryResponse, 0, len(sec.Cards)),
			}
			for _, c := range sec.Cards {
				sr.Entries = append(sr.Entries, entryResponse{
					Entry:   c.Entry,
					IconSrc: c.Entry.IconSource(),
					Visible: c.Visible,
					Clicks:  clicks[c.Entry.ID],
				})
			}
			resp.Sections = append(resp.Sections, sr)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}

// usageStats is best effort: a redis failure only drops the click counts.
func usageStats(ctx context.Context, store *redisstore.Store, log logger.Logger) map[string]int64 {
	if store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats, err := store.GetUsageStats(ctx)
	if err != nil {
		log.Warn("failed to read usage stats", logger.Error(err))
		return nil
	}
	return stats
}
