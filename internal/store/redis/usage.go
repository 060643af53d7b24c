package redis

import (
	"context"
	"fmt"
	"strconv"
)

// IncrementUsage increments the click counter for an entry
func (s *Store) IncrementUsage(ctx context.Context, entryID string) error {
	if err := s.client.HIncrBy(ctx, UsageKey(), entryID, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

// GetUsageStats returns click counts for all entries
func (s *Store) GetUsageStats(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, UsageKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for id, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		stats[id] = n
	}

	return stats, nil
}

// PruneUsage removes counters of entries not in keep and returns how many were removed
func (s *Store) PruneUsage(ctx context.Context, keep map[string]bool) (int, error) {
	ids, err := s.client.HKeys(ctx, UsageKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list usage keys: %w", err)
	}

	var stale []string
	for _, id := range ids {
		if !keep[id] {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := s.client.HDel(ctx, UsageKey(), stale...).Err(); err != nil {
		return 0, fmt.Errorf("failed to prune usage: %w", err)
	}

	return len(stale), nil
}
