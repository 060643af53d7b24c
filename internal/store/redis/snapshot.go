package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

const (
	// DefaultSnapshotTTL is how long the last good directory is kept (7 days)
	DefaultSnapshotTTL = 7 * 24 * time.Hour
)

// Store handles Redis operations for snapshots and usage counters
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

type snapshot struct {
	LoadedAt time.Time      `json:"loaded_at"`
	Entries  []domain.Entry `json:"entries"`
}

// SaveSnapshot stores the directory as the last good load
func (s *Store) SaveSnapshot(ctx context.Context, dir *domain.Directory) error {
	data, err := json.Marshal(snapshot{LoadedAt: dir.LoadedAt, Entries: dir.Entries})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, SnapshotKey(), data, DefaultSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot returns the last good directory, or nil when none is stored
func (s *Store) LoadSnapshot(ctx context.Context) (*domain.Directory, error) {
	data, err := s.client.Get(ctx, SnapshotKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return domain.NewDirectory(snap.Entries, snap.LoadedAt), nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
