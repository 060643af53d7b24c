package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// MemoryIndex holds the directory snapshot currently served and the
// outcome of the latest load attempt.
type MemoryIndex struct {
	mu         sync.RWMutex
	dir        *domain.Directory
	lastReload time.Time // Timestamp of last successful load
	lastErr    error     // Last load failure, cleared by a successful load
	lastErrAt  time.Time
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		dir: domain.NewDirectory(nil, time.Time{}),
	}
}

// Update publishes a new snapshot and clears the recorded failure.
func (idx *MemoryIndex) Update(dir *domain.Directory) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.dir = dir
	idx.lastReload = dir.LoadedAt
	idx.lastErr = nil
	idx.lastErrAt = time.Time{}
}

// Warm publishes a snapshot restored from cache. It does not count as a
// load: the last reload time stays zero until the source is read.
func (idx *MemoryIndex) Warm(dir *domain.Directory) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.lastReload.IsZero() {
		idx.dir = dir
	}
}

// RecordFailure stores a load failure. The snapshot is left untouched.
func (idx *MemoryIndex) RecordFailure(err error, at time.Time) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lastErr = err
	idx.lastErrAt = at
}

// Directory returns the current snapshot. It is never nil.
func (idx *MemoryIndex) Directory() *domain.Directory {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.dir
}

// Entry looks up an entry of the current snapshot.
func (idx *MemoryIndex) Entry(id string) (domain.Entry, bool) {
	return idx.Directory().Find(id)
}

// Count returns the number of entries in the current snapshot.
func (idx *MemoryIndex) Count() int {
	return idx.Directory().Len()
}

// GetLastReload returns the timestamp of the last successful load.
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// LastFailure returns the last load failure and when it happened.
func (idx *MemoryIndex) LastFailure() (time.Time, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastErrAt, idx.lastErr
}
