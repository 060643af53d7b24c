package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Directory source
	Source         string        // file path or http(s) URL of the bookmark document (default: output.json)
	Title          string        // page title
	FetchTimeout   time.Duration // timeout for remote sources (default: 10s)
	ReloadInterval time.Duration // interval to reload the source (default: 1h)
	PruneInterval  time.Duration // interval to prune usage counters of removed entries (default: 24h)
	BannerTTL      time.Duration // how long a load failure banner stays visible (default: 3s)
	ScrollOffset   int           // px added to scrollY before picking the highlighted category (default: 100)

	// /go/{id} rate limiting
	GoBurst        int // tokens per client
	GoRefillPerMin int // tokens refilled per minute

	// Redis (optional, empty RedisAddr disables snapshots and usage counters)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // optional, restrict ops endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // origins allowed on /api
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SHELF_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SHELF_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SHELF_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SHELF_PRETTY_LOG", true),

		// Directory source
		Source:         getenv("SHELF_SOURCE", "output.json"),
		Title:          getenv("SHELF_TITLE", "Bookmarks"),
		FetchTimeout:   mustDuration("SHELF_FETCH_TIMEOUT", 10*time.Second),
		ReloadInterval: mustDuration("SHELF_RELOAD_INTERVAL", time.Hour),
		PruneInterval:  mustDuration("SHELF_PRUNE_INTERVAL", 24*time.Hour),
		BannerTTL:      mustDuration("SHELF_ERROR_BANNER_TTL", 3*time.Second),
		ScrollOffset:   getenvInt("SHELF_SCROLL_OFFSET", 100),

		GoBurst:        getenvInt("SHELF_GO_BURST", 30),
		GoRefillPerMin: getenvInt("SHELF_GO_REFILL_PER_MIN", 60),

		// Redis settings
		RedisAddr:           getenv("SHELF_REDIS_ADDR", ""),
		RedisUser:           getenv("SHELF_REDIS_USERNAME", ""),
		RedisPassword:       getenv("SHELF_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("SHELF_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SHELF_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("SHELF_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SHELF_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("SHELF_CORS_ORIGINS", "*")),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// RedisEnabled reports whether a redis address is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
