// Package tokenstore persists the session bearer token across restarts.
// Exactly one token is stored; the user profile is always re-fetched from
// the backend with the restored token, never persisted locally.
package tokenstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no token has been persisted.
var ErrNotFound = errors.New("tokenstore: token not found")

// Store saves, loads, and clears the single persisted bearer token.
type Store interface {
	// Save persists the token, replacing any previous value.
	Save(ctx context.Context, token string) error

	// Load returns the persisted token, or ErrNotFound.
	Load(ctx context.Context) (string, error)

	// Clear removes the persisted token. Clearing an empty store is not
	// an error.
	Clear(ctx context.Context) error
}
