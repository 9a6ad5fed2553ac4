package query

import "context"

// MutateFunc performs the server-state change.
type MutateFunc[T any] func(ctx context.Context) (T, error)

// Mutation is one write operation. On success it invalidates every
// cached query under its configured resource prefixes, so overlapping
// reads refetch. Mutations never retry; failures propagate to the caller
// unchanged, and user-facing presentation is the caller's concern.
type Mutation[T any] struct {
	cache       *Cache
	invalidates []Key
	run         MutateFunc[T]
}

// NewMutation creates a mutation that invalidates the given key prefixes
// when it succeeds.
func NewMutation[T any](cache *Cache, invalidates []Key, run MutateFunc[T]) *Mutation[T] {
	return &Mutation[T]{cache: cache, invalidates: invalidates, run: run}
}

// Do executes the mutation.
func (m *Mutation[T]) Do(ctx context.Context) (T, error) {
	result, err := m.run(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	for _, prefix := range m.invalidates {
		m.cache.Invalidate(prefix)
	}
	return result, nil
}
