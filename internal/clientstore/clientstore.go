// Package clientstore provides durable key-value storage for per-client
// state: the anonymous session identifier and the local vote ledger.
// It is best-effort attribution storage, not an authorization credential
// store; callers are expected to degrade gracefully when it fails.
package clientstore

import "context"

// Store is a small durable key-value store.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set persists the value for key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
}
