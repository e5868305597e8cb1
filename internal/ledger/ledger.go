// Package ledger tracks which questions and answers the current session
// has upvoted. Membership is local client state: the authoritative vote
// rows live in the store, and counts arrive back via the change feed.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/openama/askfeed/internal/clientstore"
	"github.com/openama/askfeed/internal/domain"
)

const (
	questionsKey = "votedQuestions"
	answersKey   = "votedAnswers"
)

// Ledger is the per-session record of upvoted entity IDs, one independent
// set per entity kind, persisted to durable client storage.
type Ledger struct {
	storage clientstore.Store
	log     *slog.Logger

	mu   sync.Mutex
	sets map[domain.VoteKind]map[uuid.UUID]struct{}
}

// New creates a ledger and loads persisted membership. A read failure
// starts the affected set empty; membership rebuilds as the user votes.
func New(ctx context.Context, log *slog.Logger, storage clientstore.Store) *Ledger {
	l := &Ledger{
		storage: storage,
		log:     log.With("component", "ledger"),
		sets:    map[domain.VoteKind]map[uuid.UUID]struct{}{},
	}
	l.sets[domain.VoteKindQuestion] = l.loadSet(ctx, questionsKey)
	l.sets[domain.VoteKindAnswer] = l.loadSet(ctx, answersKey)
	return l
}

func (l *Ledger) loadSet(ctx context.Context, key string) map[uuid.UUID]struct{} {
	set := map[uuid.UUID]struct{}{}

	raw, ok, err := l.storage.Get(ctx, key)
	if err != nil {
		l.log.WarnContext(ctx, "ledger read failed, starting empty",
			slog.String("key", key), slog.Any("error", err))
		return set
	}
	if !ok || raw == "" {
		return set
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		l.log.WarnContext(ctx, "ledger decode failed, starting empty",
			slog.String("key", key), slog.Any("error", err))
		return set
	}

	for _, s := range ids {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

// HasVoted reports whether the session has voted for the entity.
func (l *Ledger) HasVoted(kind domain.VoteKind, entityID uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.sets[kind][entityID]
	return ok
}

// Toggle flips local membership for the entity and persists the updated
// set. It returns the membership state before the flip so the caller can
// issue the complementary write-through (insert if it was absent, delete
// if it was present).
//
// The flip is purely local: it never assumes the write-through succeeds,
// and a persistence failure is logged, not returned. The authoritative
// count arrives later via the subscribed change feed.
func (l *Ledger) Toggle(ctx context.Context, kind domain.VoteKind, entityID uuid.UUID) (wasVoted bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	set := l.sets[kind]
	if _, wasVoted = set[entityID]; wasVoted {
		delete(set, entityID)
	} else {
		set[entityID] = struct{}{}
	}

	if err := l.persist(ctx, kind); err != nil {
		l.log.WarnContext(ctx, "ledger persist failed",
			slog.String("kind", kind.String()), slog.Any("error", err))
	}

	return wasVoted
}

func (l *Ledger) persist(ctx context.Context, kind domain.VoteKind) error {
	key := questionsKey
	if kind == domain.VoteKindAnswer {
		key = answersKey
	}

	ids := make([]string, 0, len(l.sets[kind]))
	for id := range l.sets[kind] {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return l.storage.Set(ctx, key, string(data))
}
