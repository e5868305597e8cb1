// Package identity manages the durable anonymous session identifier used
// to attribute votes and follow-ups without an account.
package identity

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/openama/askfeed/internal/clientstore"
)

const storageKey = "sessionId"

// Store hands out the per-client session identifier. The first call
// generates a random token and persists it; later calls return the same
// value for the lifetime of the backing storage.
type Store struct {
	storage clientstore.Store
	log     *slog.Logger

	mu     sync.Mutex
	cached string
}

// New creates a session identity store.
func New(log *slog.Logger, storage clientstore.Store) *Store {
	return &Store{
		storage: storage,
		log:     log.With("component", "identity"),
	}
}

// GetOrCreate returns the durable session identifier, generating and
// persisting one on first use. Storage failure degrades to a fresh
// transient identifier for this call: this is best-effort attribution,
// not a credential, so there is no error return.
func (s *Store) GetOrCreate(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != "" {
		return s.cached
	}

	v, ok, err := s.storage.Get(ctx, storageKey)
	if err != nil {
		s.log.WarnContext(ctx, "session id read failed, using transient id", slog.Any("error", err))
		return uuid.NewString()
	}
	if ok && v != "" {
		s.cached = v
		return v
	}

	id := uuid.NewString()
	if err := s.storage.Set(ctx, storageKey, id); err != nil {
		s.log.WarnContext(ctx, "session id write failed, using transient id", slog.Any("error", err))
		return id
	}

	s.cached = id
	return id
}
