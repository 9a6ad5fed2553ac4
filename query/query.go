package query

import "context"

// Result carries a query outcome to the consumer. A query never panics;
// fetch failures land in Err.
type Result[T any] struct {
	Data    T
	Err     error
	Loading bool
}

// FetchFunc loads fresh data for a query.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Query binds one fetch to a cache key with an enabled gate. Queries do
// not fire until the gate passes (identity resolved, not in demo mode,
// parameters present); once fetched, the cached value is served until an
// overlapping mutation invalidates it.
type Query[T any] struct {
	cache   *Cache
	key     Key
	fetch   FetchFunc[T]
	enabled func() bool
}

// New creates a query bound to key.
func New[T any](cache *Cache, key Key, fetch FetchFunc[T]) *Query[T] {
	return &Query[T]{cache: cache, key: key, fetch: fetch}
}

// Enabled gates the query. While the gate returns false, Get performs no
// fetch. Threaded from session-derived values so queries do not fire
// before the session has resolved an identity.
func (q *Query[T]) Enabled(gate func() bool) *Query[T] {
	q.enabled = gate
	return q
}

// Get returns the cached value, or fetches it. Concurrent Gets with the
// same key share one fetch. The fetch is retried up to the cache's fixed
// query retry count, with no backoff; the final error is surfaced in the
// result, never panicked.
func (q *Query[T]) Get(ctx context.Context) Result[T] {
	var zero T

	if q.enabled != nil && !q.enabled() {
		return Result[T]{Data: zero}
	}

	if cached, ok := q.cache.lookup(q.key); ok {
		return Result[T]{Data: cached.(T)}
	}

	value, err, _ := q.cache.group.Do(q.key.String(), func() (any, error) {
		var lastErr error
		for attempt := 0; attempt <= q.cache.retries; attempt++ {
			v, err := q.fetch(ctx)
			if err == nil {
				return v, nil
			}
			lastErr = err
			if ctx.Err() != nil {
				break
			}
		}
		return nil, lastErr
	})
	if err != nil {
		return Result[T]{Data: zero, Err: err}
	}

	q.cache.store(q.key, value)
	return Result[T]{Data: value.(T)}
}

// Refetch drops the cached value and fetches again.
func (q *Query[T]) Refetch(ctx context.Context) Result[T] {
	q.cache.Invalidate(q.key)
	return q.Get(ctx)
}

// Watch runs Get in the background. The channel first yields a loading
// result, then the final one, then closes. For consumers that render
// intermediate loading state instead of blocking.
func (q *Query[T]) Watch(ctx context.Context) <-chan Result[T] {
	out := make(chan Result[T], 2)
	out <- Result[T]{Loading: true}
	go func() {
		defer close(out)
		out <- q.Get(ctx)
	}()
	return out
}
