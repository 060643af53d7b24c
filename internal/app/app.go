package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shelf/internal/config"
	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/redis"
	"github.com/MrSnakeDoc/shelf/internal/render"
	"github.com/MrSnakeDoc/shelf/internal/scheduler"
	"github.com/MrSnakeDoc/shelf/internal/sources/directory"
	redisstore "github.com/MrSnakeDoc/shelf/internal/store/redis"
	"github.com/MrSnakeDoc/shelf/internal/utils"
	"github.com/MrSnakeDoc/shelf/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.DirectoryReloader
	pruner      *scheduler.UsagePruner // nil when redis is disabled
}

// New wires the service. Redis is optional: when it is not configured or
// cannot be reached the directory is still served, without snapshot and
// usage counters.
func New(cfg *config.Config) (*App, error) {
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	renderer, err := render.New(render.Options{
		Title:        cfg.Title,
		ScrollOffset: cfg.ScrollOffset,
		BannerTTL:    cfg.BannerTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build renderer: %w", err)
	}

	memIndex := index.NewMemoryIndex()

	redisClient := connectRedis(cfg, loggerClient)

	// Interfaces stay nil (not typed-nil) when redis is disabled.
	var snapshots scheduler.SnapshotStore
	var pruner *scheduler.UsagePruner
	if redisClient != nil {
		store := redisstore.NewStore(redisClient)
		snapshots = store

		// Serve the last good directory until the source answers
		syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync from redis on startup, will load from source",
				logger.Error(err))
		}

		pruner = scheduler.NewUsagePruner(store, memIndex, loggerClient, cfg.PruneInterval)
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewDirectoryReloader(
		directory.NewLoader(cfg.Source, cfg.FetchTimeout),
		snapshots,
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		CORSOrigins:    cfg.CORSOrigins,
		Source:         cfg.Source,
		GoBurst:        cfg.GoBurst,
		GoRefillPerMin: cfg.GoRefillPerMin,
		RedisClient:    redisClient,
		MemoryIndex:    memIndex,
		Renderer:       renderer,
		ReloadTrigger:  reloadTrigger,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		pruner:      pruner,
	}, nil
}

func connectRedis(cfg *config.Config, log logger.Logger) *goredis.Client {
	if !cfg.RedisEnabled() {
		log.Info("redis not configured, snapshots and usage counters disabled")
		return nil
	}

	log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	client, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, log)
	if err != nil {
		log.Error("failed to connect to redis, continuing without it", logger.Error(err))
		return nil
	}
	log.Info("Redis initialized successfully")
	return client
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Shelf v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Shelf %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial load, then periodic refresh. A failed initial load is not fatal.
	a.reloader.Start(ctx)
	a.logger.Info("directory reloader started",
		logger.String("source", a.cfg.Source),
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.pruner != nil {
		a.pruner.Start(ctx)
		a.logger.Info("usage pruner started",
			logger.Duration("interval", a.cfg.PruneInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.reloader.Stop()
	if a.pruner != nil {
		a.pruner.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, "redis", a.logger)
	}

	if runErr == nil {
		a.logger.Info("✅ Shelf stopped cleanly")
	}
	_ = a.logger.Sync()
	return runErr
}

// Export loads the source once and writes the self-contained static page to w.
func Export(ctx context.Context, cfg *config.Config, w io.Writer) error {
	doc, err := directory.NewLoader(cfg.Source, cfg.FetchTimeout).Load(ctx)
	if err != nil {
		return err
	}

	renderer, err := render.New(render.Options{
		Title:        cfg.Title,
		ScrollOffset: cfg.ScrollOffset,
		BannerTTL:    cfg.BannerTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to build renderer: %w", err)
	}

	dir := domain.NewDirectory(directory.NewMapper().MapEntries(doc), time.Now())
	if err := renderer.Static(w, dir); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
