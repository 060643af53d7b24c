package scheduler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/index"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/sources/directory"
)

const testDocument = `{"Tools":[{"title":"A","url":"http://a"}],"Docs":[{"title":"B","url":"http://b","description":"desc"}]}`

type fakeSnapshots struct {
	saved *domain.Directory
	load  *domain.Directory
	err   error
}

func (f *fakeSnapshots) SaveSnapshot(_ context.Context, dir *domain.Directory) error {
	if f.err != nil {
		return f.err
	}
	f.saved = dir
	return nil
}

func (f *fakeSnapshots) LoadSnapshot(context.Context) (*domain.Directory, error) {
	return f.load, f.err
}

// sourceServer serves testDocument until failing is set, then 404s.
func sourceServer(t *testing.T, failing *atomic.Bool) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(testDocument))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestDirectoryReloader_Reload(t *testing.T) {
	var failing atomic.Bool
	ts := sourceServer(t, &failing)

	memIndex := index.NewMemoryIndex()
	store := &fakeSnapshots{}
	reloader := NewDirectoryReloader(
		directory.NewLoader(ts.URL+"/output.json", time.Second),
		store,
		memIndex,
		logger.New("error", false),
		time.Hour,
		make(chan struct{}, 1),
	)

	if err := reloader.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if memIndex.Count() != 2 {
		t.Errorf("index has %d entries, want 2", memIndex.Count())
	}
	if store.saved == nil || store.saved.Len() != 2 {
		t.Error("snapshot was not saved")
	}

	// A failing source keeps the previous snapshot and records the failure.
	failing.Store(true)
	err := reloader.Reload(context.Background())
	if !errors.Is(err, directory.ErrLoad) {
		t.Fatalf("Reload() error = %v, want ErrLoad", err)
	}
	if memIndex.Count() != 2 {
		t.Errorf("failed reload changed the index, got %d entries", memIndex.Count())
	}
	if _, ferr := memIndex.LastFailure(); ferr == nil {
		t.Error("failure was not recorded")
	}
}

func TestDirectoryReloader_NotFoundLeavesModelEmpty(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	ts := sourceServer(t, &failing)

	memIndex := index.NewMemoryIndex()
	reloader := NewDirectoryReloader(
		directory.NewLoader(ts.URL+"/output.json", time.Second),
		nil,
		memIndex,
		logger.New("error", false),
		time.Hour,
		nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloader.Start(ctx)
	defer reloader.Stop()

	if memIndex.Count() != 0 {
		t.Errorf("index has %d entries after a 404, want 0", memIndex.Count())
	}
	if len(memIndex.Directory().Groups()) != 0 {
		t.Error("no section should exist after a 404")
	}
	if _, err := memIndex.LastFailure(); !errors.Is(err, directory.ErrLoad) {
		t.Errorf("LastFailure() = %v, want ErrLoad", err)
	}
}

func TestDirectoryReloader_ManualTrigger(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	ts := sourceServer(t, &failing)

	memIndex := index.NewMemoryIndex()
	trigger := make(chan struct{}, 1)
	reloader := NewDirectoryReloader(
		directory.NewLoader(ts.URL+"/output.json", time.Second),
		nil,
		memIndex,
		logger.New("error", false),
		time.Hour,
		trigger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloader.Start(ctx)
	defer reloader.Stop()

	failing.Store(false)
	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for memIndex.Count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if memIndex.Count() != 2 {
		t.Errorf("manual trigger did not reload, got %d entries", memIndex.Count())
	}
}

func TestRedisSyncer_Sync(t *testing.T) {
	memIndex := index.NewMemoryIndex()
	cached := domain.NewDirectory([]domain.Entry{
		domain.NewEntry("Tools", "A", "http://a", "", "", ""),
	}, time.Now().Add(-time.Hour))

	syncer := NewRedisSyncer(&fakeSnapshots{load: cached}, memIndex, logger.New("error", false))
	if err := syncer.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if memIndex.Count() != 1 {
		t.Errorf("Sync() should warm the index, got %d entries", memIndex.Count())
	}

	empty := index.NewMemoryIndex()
	if err := NewRedisSyncer(&fakeSnapshots{}, empty, logger.New("error", false)).Sync(context.Background()); err != nil {
		t.Errorf("Sync() with no snapshot error = %v", err)
	}
	if empty.Count() != 0 {
		t.Error("Sync() without snapshot should leave the index empty")
	}
}
