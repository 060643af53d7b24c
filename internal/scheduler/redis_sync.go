package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// RedisSyncer warms the memory index from the last snapshot on startup
type RedisSyncer struct {
	store  SnapshotStore
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store SnapshotStore,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads the snapshot from Redis into the memory index
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("warming directory from redis snapshot")

	dir, err := rs.store.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	if dir == nil {
		rs.logger.Info("no snapshot found in redis")
		return nil
	}

	rs.index.Warm(dir)

	rs.logger.Info("warmed directory from redis",
		logger.Int("entries", dir.Len()),
		logger.Time("loaded_at", dir.LoadedAt))

	return nil
}
