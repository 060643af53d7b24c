package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

type fakeUsage struct {
	counters map[string]int64
	err      error
}

func (f *fakeUsage) PruneUsage(_ context.Context, keep map[string]bool) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	removed := 0
	for id := range f.counters {
		if !keep[id] {
			delete(f.counters, id)
			removed++
		}
	}
	return removed, nil
}

func TestUsagePruner_Prune(t *testing.T) {
	log := logger.New("error", false)
	memIndex := index.NewMemoryIndex()

	kept := domain.NewEntry("Tools", "kept", "http://kept", "", "", "")
	memIndex.Update(domain.NewDirectory([]domain.Entry{kept}, time.Now()))

	store := &fakeUsage{counters: map[string]int64{
		kept.ID:   3,
		"gone-id": 5,
	}}

	pruner := NewUsagePruner(store, memIndex, log, time.Hour)

	removed, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune removed %d counters, want 1", removed)
	}
	if _, ok := store.counters[kept.ID]; !ok {
		t.Error("counter of a live entry was removed")
	}
	if _, ok := store.counters["gone-id"]; ok {
		t.Error("counter of a removed entry was kept")
	}
}

func TestUsagePruner_SkipsBeforeFirstLoad(t *testing.T) {
	memIndex := index.NewMemoryIndex()
	store := &fakeUsage{counters: map[string]int64{"a": 1}}

	pruner := NewUsagePruner(store, memIndex, logger.New("error", false), time.Hour)

	removed, err := pruner.Prune(context.Background())
	if err != nil || removed != 0 {
		t.Errorf("Prune() = %d, %v; want 0, nil", removed, err)
	}
	if len(store.counters) != 1 {
		t.Error("counters pruned before the directory was loaded")
	}
}

func TestUsagePruner_StoreError(t *testing.T) {
	memIndex := index.NewMemoryIndex()
	memIndex.Update(domain.NewDirectory(nil, time.Now()))

	pruner := NewUsagePruner(&fakeUsage{err: errors.New("down")}, memIndex, logger.New("error", false), time.Hour)
	if _, err := pruner.Prune(context.Background()); err == nil {
		t.Error("Prune() should surface store errors")
	}

	pruner.Stop()
	pruner.Stop() // idempotent
}
