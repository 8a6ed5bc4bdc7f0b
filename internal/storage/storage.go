// Package storage persists the small JSON documents goldwatch needs
// across restarts: the intraday price log, the day's opening prices
// and the alert list. The analysis core never touches storage; the
// app layer hands it in-memory shapes to keep and load back.
package storage

import "context"

// Store is a flat key/value blob store.
type Store interface {
	// Put stores the blob under the key, overwriting any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Get retrieves the blob stored under the key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Keys returns all keys with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the key holds a value.
	Exists(ctx context.Context, key string) (bool, error)
}
