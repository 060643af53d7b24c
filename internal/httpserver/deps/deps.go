package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/render"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time   // for testing, defaults to time.Now
	AllowedHosts   []string           // Host headers allowed to access ops endpoints
	AllowedCIDRS   []string           // IPs allowed to access ops endpoints
	TrustProxy     bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins    []string           // origins allowed on /api
	Source         string             // file path or URL of the bookmark document
	GoBurst        int                // /go/{id} tokens per client
	GoRefillPerMin int                // /go/{id} tokens refilled per minute
	RedisClient    *redis.Client      // nil when redis is disabled
	MemoryIndex    *index.MemoryIndex // current directory snapshot
	Renderer       *render.Renderer   // page renderer
	ReloadTrigger  chan struct{}      // channel to trigger a manual directory reload
}

// Now returns TimeNow() or time.Now() when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
