package feed

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/openama/askfeed/internal/domain"
)

// Merger owns the canonical merged collection, keyed by question ID.
// Events are applied one at a time; the Live loop is the only writer.
// Reads (Snapshot, Row) are safe from any goroutine.
//
// Insertion order carries no meaning: display order is always re-derived
// by domain.Rank.
type Merger struct {
	log *slog.Logger

	mu          sync.RWMutex
	rows        map[uuid.UUID]*domain.MergedRow
	answerIndex map[uuid.UUID]uuid.UUID // answer ID -> question ID
	qGens       map[uuid.UUID]uint64    // last applied question vote generation
	aGens       map[uuid.UUID]uint64    // last applied answer vote generation
}

// NewMerger builds a merger seeded with the normalized cold-start rows.
func NewMerger(log *slog.Logger, initial []domain.MergedRow) *Merger {
	m := &Merger{
		log:         log.With("component", "merger"),
		rows:        make(map[uuid.UUID]*domain.MergedRow, len(initial)),
		answerIndex: map[uuid.UUID]uuid.UUID{},
		qGens:       map[uuid.UUID]uint64{},
		aGens:       map[uuid.UUID]uint64{},
	}
	for _, r := range initial {
		row := r.Clone()
		m.rows[row.Question.ID] = &row
		if row.Answer != nil {
			m.answerIndex[row.Answer.ID] = row.Question.ID
		}
	}
	return m
}

// Apply folds one event into the collection and reports whether state
// changed. Orphan events (IDs not present locally) never error: they are
// dropped and the view self-heals on the next cold start.
func (m *Merger) Apply(ev Event) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch e := ev.(type) {
	case QuestionInserted:
		return m.applyQuestionInserted(e)
	case QuestionUpdated:
		return m.applyQuestionUpdated(e)
	case QuestionDeleted:
		return m.applyQuestionDeleted(e)
	case AnswerInserted:
		return m.applyAnswerInserted(e)
	case FollowUpInserted:
		return m.applyFollowUpInserted(e)
	case QuestionVotesFetched:
		return m.applyQuestionVotes(e)
	case AnswerVotesFetched:
		return m.applyAnswerVotes(e)
	}
	return false
}

func (m *Merger) applyQuestionInserted(e QuestionInserted) bool {
	if _, ok := m.rows[e.Question.ID]; ok {
		// Duplicate delivery: inserts are idempotent by identifier.
		return false
	}
	m.rows[e.Question.ID] = &domain.MergedRow{Question: e.Question}
	return true
}

func (m *Merger) applyQuestionUpdated(e QuestionUpdated) bool {
	row, ok := m.rows[e.Question.ID]
	if !ok {
		// Update for a row not yet materialized: accepted lost update,
		// superseded by the next full refresh.
		m.dropOrphan("question update", e.Question.ID)
		return false
	}

	q := &row.Question
	q.Content = e.Question.Content
	q.AuthorName = e.Question.AuthorName
	q.AuthorID = e.Question.AuthorID
	q.SessionID = e.Question.SessionID
	// VoteCount and Answered stay derived: counts come from fetches, the
	// answered flag moves only together with answer attachment.
	return true
}

func (m *Merger) applyQuestionDeleted(e QuestionDeleted) bool {
	row, ok := m.rows[e.ID]
	if !ok {
		return false
	}
	if row.Answer != nil {
		delete(m.answerIndex, row.Answer.ID)
		delete(m.aGens, row.Answer.ID)
	}
	delete(m.rows, e.ID)
	delete(m.qGens, e.ID)
	return true
}

func (m *Merger) applyAnswerInserted(e AnswerInserted) bool {
	row, ok := m.rows[e.Answer.QuestionID]
	if !ok {
		m.dropOrphan("answer insert", e.Answer.QuestionID)
		return false
	}

	if row.Answer != nil {
		// A second answer is unexpected (1:1) but must not corrupt state:
		// last write wins, the stale index entry goes away.
		delete(m.answerIndex, row.Answer.ID)
		delete(m.aGens, row.Answer.ID)
	}

	a := e.Answer
	row.Answer = &a
	row.Question.Answered = true
	m.answerIndex[a.ID] = row.Question.ID
	return true
}

func (m *Merger) applyFollowUpInserted(e FollowUpInserted) bool {
	row, ok := m.rows[e.FollowUp.QuestionID]
	if !ok {
		m.dropOrphan("follow-up insert", e.FollowUp.QuestionID)
		return false
	}

	f := e.FollowUp
	row.FollowUp = &f
	return true
}

func (m *Merger) applyQuestionVotes(e QuestionVotesFetched) bool {
	row, ok := m.rows[e.QuestionID]
	if !ok {
		m.dropOrphan("question votes", e.QuestionID)
		return false
	}

	if e.Gen != 0 && e.Gen < m.qGens[e.QuestionID] {
		// A fetch for a newer notification already applied.
		return false
	}
	if e.Gen != 0 {
		m.qGens[e.QuestionID] = e.Gen
	}

	row.Question.VoteCount = e.Count
	return true
}

func (m *Merger) applyAnswerVotes(e AnswerVotesFetched) bool {
	questionID, ok := m.answerIndex[e.AnswerID]
	if !ok {
		m.dropOrphan("answer votes", e.AnswerID)
		return false
	}
	row := m.rows[questionID]

	if e.Gen != 0 && e.Gen < m.aGens[e.AnswerID] {
		return false
	}
	if e.Gen != 0 {
		m.aGens[e.AnswerID] = e.Gen
	}

	row.Answer.VoteCount = e.Count
	return true
}

func (m *Merger) dropOrphan(what string, id uuid.UUID) {
	m.log.Debug("dropping orphan event",
		slog.String("event", what),
		slog.String("id", id.String()),
		slog.Any("error", domain.ErrOrphanEvent),
	)
}

// Snapshot returns a copy of the collection in unspecified order.
func (m *Merger) Snapshot() []domain.MergedRow {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.MergedRow, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row.Clone())
	}
	return out
}

// Row returns a copy of one row by question ID.
func (m *Merger) Row(questionID uuid.UUID) (domain.MergedRow, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[questionID]
	if !ok {
		return domain.MergedRow{}, false
	}
	return row.Clone(), true
}

// QuestionIDForAnswer resolves an answer ID through the incremental
// index maintained by the merger.
func (m *Merger) QuestionIDForAnswer(answerID uuid.UUID) (uuid.UUID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.answerIndex[answerID]
	return id, ok
}

// Len returns the number of rows in the collection.
func (m *Merger) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}
