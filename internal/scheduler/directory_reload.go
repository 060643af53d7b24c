package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/sources/directory"
)

// SnapshotStore persists the last good directory.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, dir *domain.Directory) error
	LoadSnapshot(ctx context.Context) (*domain.Directory, error)
}

// DirectoryReloader loads the bookmark document into the memory index,
// once at start, then periodically and on manual trigger.
type DirectoryReloader struct {
	loader        *directory.Loader
	mapper        *directory.Mapper
	store         SnapshotStore // nil when redis is disabled
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	now           func() time.Time
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewDirectoryReloader creates a new directory reloader
func NewDirectoryReloader(
	loader *directory.Loader,
	store SnapshotStore,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *DirectoryReloader {
	return &DirectoryReloader{
		loader:        loader,
		mapper:        directory.NewMapper(),
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		now:           time.Now,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads immediately, then keeps reloading in the background.
// A failed first load is logged and recorded, not fatal: the page then
// shows the empty (or cache-warmed) directory with the error banner.
func (dr *DirectoryReloader) Start(ctx context.Context) {
	if err := dr.Reload(ctx); err != nil {
		dr.logger.Error("initial directory load failed", logger.Error(err))
	}

	ticker := time.NewTicker(dr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := dr.Reload(ctx); err != nil {
					dr.logger.Error("failed to reload directory", logger.Error(err))
				}
			case <-dr.manualTrigger:
				dr.logger.Info("manual reload triggered")
				if err := dr.Reload(ctx); err != nil {
					dr.logger.Error("failed to reload directory", logger.Error(err))
				}
			case <-dr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reloader
func (dr *DirectoryReloader) Stop() {
	dr.stopOnce.Do(func() { close(dr.stopCh) })
}

// Reload reads the source and publishes a new snapshot. On failure the
// current snapshot is kept and the failure is recorded on the index.
func (dr *DirectoryReloader) Reload(ctx context.Context) error {
	dr.logger.Info("loading directory", logger.String("source", dr.loader.Source()))

	doc, err := dr.loader.Load(ctx)
	if err != nil {
		dr.index.RecordFailure(err, dr.now())
		return fmt.Errorf("failed to load directory: %w", err)
	}

	dir := domain.NewDirectory(dr.mapper.MapEntries(doc), dr.now())
	dr.index.Update(dir)

	dr.logger.Info("directory loaded",
		logger.Int("categories", len(doc)),
		logger.Int("entries", dir.Len()))

	// Redis is a warm-start cache only
	if dr.store != nil {
		if err := dr.store.SaveSnapshot(ctx, dir); err != nil {
			dr.logger.Warn("failed to save snapshot to redis", logger.Error(err))
		} else {
			dr.logger.Debug("snapshot saved to redis")
		}
	}

	return nil
}
