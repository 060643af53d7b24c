package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// UsageStore keeps click counters per entry.
type UsageStore interface {
	PruneUsage(ctx context.Context, keep map[string]bool) (int, error)
}

// UsagePruner removes click counters of entries that left the directory
type UsagePruner struct {
	store    UsageStore
	index    *index.MemoryIndex
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewUsagePruner creates a new usage pruner
func NewUsagePruner(
	store UsageStore,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
) *UsagePruner {
	return &UsagePruner{
		store:    store,
		index:    idx,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic pruning
func (up *UsagePruner) Start(ctx context.Context) {
	ticker := time.NewTicker(up.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := up.Prune(ctx); err != nil {
					up.logger.Error("usage pruning failed", logger.Error(err))
				}
			case <-up.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the pruner
func (up *UsagePruner) Stop() {
	up.stopOnce.Do(func() { close(up.stopCh) })
}

// Prune drops counters whose entry is not in the current directory.
// Nothing is pruned until the source has been loaded at least once, so a
// cache-warmed or empty index never wipes the counters.
func (up *UsagePruner) Prune(ctx context.Context) (int, error) {
	if up.index.GetLastReload().IsZero() {
		up.logger.Debug("skipping usage pruning, directory not loaded yet")
		return 0, nil
	}

	removed, err := up.store.PruneUsage(ctx, up.index.Directory().IDs())
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		up.logger.Info("pruned usage counters", logger.Int("removed", removed))
	} else {
		up.logger.Debug("no usage counters to prune")
	}

	return removed, nil
}
