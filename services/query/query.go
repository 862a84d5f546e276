package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultStaleTime is the freshness window of cached content
const DefaultStaleTime = 5 * time.Minute

// Result is what a view receives from a query.
type Result[T any] struct {
	Data      T
	Status    Status
	Err       error
	UpdatedAt time.Time
	hasData   bool
}

func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading }
func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }
func (r Result[T]) IsError() bool   { return r.Status == StatusError }

// HasData reports whether Data holds a fetched value. An errored result may
// still carry the last known data.
func (r Result[T]) HasData() bool { return r.hasData }

// Succeeded returns a successful result holding data
func Succeeded[T any](data T, updatedAt time.Time) Result[T] {
	return Result[T]{Data: data, Status: StatusSuccess, UpdatedAt: updatedAt, hasData: true}
}

// Failed returns an errored result without data
func Failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusError, Err: err}
}

// Pending returns a loading result
func Pending[T any]() Result[T] {
	return Result[T]{Status: StatusLoading}
}

// Fetcher loads the current value of a resource
type Fetcher[T any] func(ctx context.Context) (T, error)

// Query binds a cache key to the fetcher that fills it.
type Query[T any] struct {
	key       string
	cache     *Cache
	fetch     Fetcher[T]
	staleTime time.Duration
}

// Option configures a Query
type Option func(*options)

type options struct {
	staleTime time.Duration
}

// WithStaleTime overrides DefaultStaleTime. Non-positive values are ignored.
func WithStaleTime(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.staleTime = d
		}
	}
}

// New creates a query for key backed by cache.
func New[T any](cache *Cache, key string, fetch func(ctx context.Context) (T, error), opts ...Option) *Query[T] {
	o := options{staleTime: DefaultStaleTime}
	for _, opt := range opts {
		opt(&o)
	}
	return &Query[T]{
		key:       key,
		cache:     cache,
		fetch:     fetch,
		staleTime: o.staleTime,
	}
}

// Key returns the cache key
func (q *Query[T]) Key() string {
	return q.key
}

// Fetch returns fresh cached data without touching the network, otherwise
// waits for the single in-flight fetch of this key. A failed fetch is not
// retried: the result is StatusError, with the last known data if any.
//
// If ctx ends first the caller gets ctx.Err(); the fetch itself continues
// and still updates the cache.
func (q *Query[T]) Fetch(ctx context.Context) Result[T] {
	if e, ok := q.cache.fresh(q.key, q.staleTime); ok {
		cacheHits.WithLabelValues(q.key).Inc()
		return q.result(e)
	}

	ch := q.cache.start(ctx, q.key, q.staleTime, q.run)
	select {
	case <-ctx.Done():
		e, _ := q.cache.Get(q.key)
		r := q.result(e)
		r.Status = StatusError
		r.Err = ctx.Err()
		return r
	case res := <-ch:
		return q.result(res.Val.(Entry))
	}
}

// Peek returns the current state without waiting. When the cached data is
// missing or stale it starts a background fetch, so a first Peek reports
// StatusLoading.
func (q *Query[T]) Peek(ctx context.Context) Result[T] {
	if e, ok := q.cache.fresh(q.key, q.staleTime); ok {
		cacheHits.WithLabelValues(q.key).Inc()
		return q.result(e)
	}

	q.cache.start(ctx, q.key, q.staleTime, q.run)

	e, _ := q.cache.Get(q.key)
	r := q.result(e)
	if !r.HasData() {
		// the fetch just started counts as loading even after an earlier error
		r.Status = StatusLoading
		r.Err = nil
	}
	return r
}

// Load serves cached data at once, even when stale, and revalidates stale
// data in the background. Without data it waits like Fetch.
func (q *Query[T]) Load(ctx context.Context) Result[T] {
	if r := q.Peek(ctx); r.HasData() {
		return r
	}
	return q.Fetch(ctx)
}

// Invalidate marks the cached value stale
func (q *Query[T]) Invalidate() {
	q.cache.Invalidate(q.key)
}

// Restore seeds the cache from the snapshot store, keeping the original
// fetch time so an old snapshot is revalidated on first use. It reports
// whether a snapshot was loaded.
func (q *Query[T]) Restore(ctx context.Context) (bool, error) {
	if q.cache.store == nil {
		return false, nil
	}

	payload, fetchedAt, err := q.cache.store.Load(ctx, q.key)
	if errors.Is(err, ErrNoSnapshot) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load snapshot %s: %w", q.key, err)
	}

	var data T
	if err := json.Unmarshal(payload, &data); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s: %w", q.key, err)
	}
	return q.cache.seed(q.key, data, fetchedAt), nil
}

func (q *Query[T]) run(ctx context.Context) (any, error) {
	return q.fetch(ctx)
}

func (q *Query[T]) result(e Entry) Result[T] {
	r := Result[T]{
		Status:    e.Status,
		Err:       e.Err,
		UpdatedAt: e.UpdatedAt,
	}
	if e.HasData {
		if data, ok := e.Data.(T); ok {
			r.Data = data
			r.hasData = true
		}
	}
	if r.Status == StatusSuccess && !r.hasData {
		r.Status = StatusLoading
	}
	return r
}
