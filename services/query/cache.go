// Package query caches content fetched from the backend. Each cache key has
// at most one fetch in flight; every caller waiting on that key receives the
// same settled outcome. Fetches are never retried.
package query

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Status is the tri-state exposed to views
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "loading"
	}
}

// Entry is the cached state of one key. Data survives a failed refetch so
// callers can fall back to the last known value.
type Entry struct {
	Data      any
	HasData   bool
	UpdatedAt time.Time // when Data was fetched
	Status    Status
	Err       error
	Fetching  bool
	Stale     bool // set by Invalidate until the next successful fetch
}

// fetchFunc produces the value for a key
type fetchFunc func(ctx context.Context) (any, error)

// Cache maps query keys to entries. It lives for the whole process and is
// only emptied through Invalidate, Remove or Clear.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	group   singleflight.Group
	now     func() time.Time
	store   SnapshotStore
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// WithSnapshotStore persists every successful fetch to store.
func WithSnapshotStore(store SnapshotStore) CacheOption {
	return func(c *Cache) {
		c.store = store
	}
}

// NewCache creates an empty cache
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the entry for key.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Keys returns the cached keys
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Invalidate marks key stale. Its data is kept as a fallback until the next
// successful fetch.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.Stale = true
	}
}

// Remove drops key entirely
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
}

// isFresh reports whether e holds data fetched less than staleTime ago.
func (c *Cache) isFresh(e *Entry, staleTime time.Duration) bool {
	return e != nil && e.HasData && e.Status == StatusSuccess && !e.Stale &&
		c.now().Sub(e.UpdatedAt) < staleTime
}

// fresh returns the entry for key when it is within staleTime.
func (c *Cache) fresh(key string, staleTime time.Duration) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e := c.entries[key]
	if !c.isFresh(e, staleTime) {
		return Entry{}, false
	}
	return *e, true
}

// seed stores data fetched at fetchedAt unless key already has data.
func (c *Cache) seed(key string, data any, fetchedAt time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && e.HasData {
		return false
	}
	c.entries[key] = &Entry{
		Data:      data,
		HasData:   true,
		UpdatedAt: fetchedAt,
		Status:    StatusSuccess,
	}
	return true
}

// start joins or begins the single in-flight fetch for key. The fetch runs
// on a context detached from the caller so one caller going away does not
// fail the others.
func (c *Cache) start(ctx context.Context, key string, staleTime time.Duration, fetch fetchFunc) <-chan singleflight.Result {
	detached := context.WithoutCancel(ctx)

	return c.group.DoChan(key, func() (any, error) {
		// a fetch that settled between the caller's freshness check and
		// joining the group already satisfies this call
		if e, ok := c.fresh(key, staleTime); ok {
			cacheHits.WithLabelValues(key).Inc()
			return e, nil
		}

		c.markFetching(key)
		// fetch duration is wall time, whatever clock the cache uses
		started := time.Now()
		data, err := fetch(detached)
		fetchDuration.WithLabelValues(key).Observe(time.Since(started).Seconds())

		return c.settle(detached, key, data, err), nil
	})
}

func (c *Cache) markFetching(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &Entry{Status: StatusLoading}
		c.entries[key] = e
	}
	e.Fetching = true
}

// settle records the outcome of a fetch and returns the resulting entry.
func (c *Cache) settle(ctx context.Context, key string, data any, err error) Entry {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &Entry{}
		c.entries[key] = e
	}
	e.Fetching = false
	if err != nil {
		e.Status = StatusError
		e.Err = err
	} else {
		e.Data = data
		e.HasData = true
		e.UpdatedAt = c.now()
		e.Status = StatusSuccess
		e.Err = nil
		e.Stale = false
	}
	settled := *e
	c.mu.Unlock()

	if err != nil {
		fetchesTotal.WithLabelValues(key, "error").Inc()
		log.Printf("[WARNING] Content fetch failed for %s: %v", key, err)
		return settled
	}

	fetchesTotal.WithLabelValues(key, "success").Inc()
	c.persist(ctx, key, data, settled.UpdatedAt)
	return settled
}

func (c *Cache) persist(ctx context.Context, key string, data any, fetchedAt time.Time) {
	if c.store == nil {
		return
	}
	payload, err := snapshotPayload(data)
	if err != nil {
		log.Printf("[WARNING] Failed to encode snapshot for %s: %v", key, err)
		return
	}
	if err := c.store.Save(ctx, key, payload, fetchedAt); err != nil {
		log.Printf("[WARNING] Failed to save snapshot for %s: %v", key, err)
	}
}

// rawJSON is implemented by values that keep their source JSON
type rawJSON interface {
	RawJSON() []byte
}

func snapshotPayload(data any) ([]byte, error) {
	if raw, ok := data.(rawJSON); ok {
		return raw.RawJSON(), nil
	}
	return json.Marshal(data)
}
