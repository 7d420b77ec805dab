package cache

import (
	"sync"
	"time"

	"sleepboard/internal/domain"
)

// Snapshot is one fully built result of the ingest pipeline. It is stored
// and handed out as a whole value, so readers either see the previous
// complete table or the new one, never a partial mix.
type Snapshot struct {
	Entries   []domain.Entry
	Metrics   domain.Metrics
	FetchedAt time.Time
}

type slot struct {
	snap     Snapshot
	storedAt time.Time
}

// SnapshotCache keeps at most one Snapshot per source URL for a bounded TTL.
type SnapshotCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	slots map[string]slot

	now func() time.Time // overridable in tests
}

func New(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		ttl:   ttl,
		slots: make(map[string]slot),
		now:   time.Now,
	}
}

// Get returns the cached snapshot for key, or ok=false on miss or staleness.
func (c *SnapshotCache) Get(key string) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[key]
	if !ok || c.now().Sub(s.storedAt) >= c.ttl {
		return Snapshot{}, false
	}
	return s.snap, true
}

// Set replaces the slot for key with a fresh snapshot.
func (c *SnapshotCache) Set(key string, snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[key] = slot{snap: snap, storedAt: c.now()}
}

// Invalidate drops the slot for key so the next Get misses (manual refresh).
func (c *SnapshotCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.slots, key)
}
