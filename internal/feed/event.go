// Package feed maintains the live merged view of one AMA: questions with
// their optional answer, optional follow-up, and derived vote counts,
// kept consistent under a stream of out-of-order change notifications
// from the backing store.
package feed

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/openama/askfeed/internal/domain"
)

// Table identifies one of the five change tables the feed observes.
type Table string

const (
	TableQuestions   Table = "questions"
	TableAnswers     Table = "answers"
	TableVotes       Table = "votes"
	TableAnswerVotes Table = "answer_votes"
	TableFollowUps   Table = "follow_up_questions"
)

// Tables lists every table the feed subscribes to.
var Tables = []Table{TableQuestions, TableAnswers, TableVotes, TableAnswerVotes, TableFollowUps}

// Op is a change operation reported by the store.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Notification is one raw change record from the store's push feed.
// New carries the row after the change (insert/update), Old the row
// before it (update/delete), both as the store's JSON encoding.
type Notification struct {
	Table Table           `json:"table"`
	Op    Op              `json:"op"`
	New   json.RawMessage `json:"new,omitempty"`
	Old   json.RawMessage `json:"old,omitempty"`
}

// Subscription is a handle on one table's change stream.
type Subscription interface {
	Close()
}

// Subscriber is the push side of the store boundary.
type Subscriber interface {
	Subscribe(table Table, fn func(Notification)) (Subscription, error)
}

// Source is the query side of the store boundary. Batch reads serve the
// cold start; the per-row reads return authoritative state for
// reconciliation (vote counts are never derived from event payloads).
type Source interface {
	Questions(ctx context.Context, amaID uuid.UUID) ([]domain.Question, error)
	Answers(ctx context.Context, amaID uuid.UUID) ([]domain.Answer, error)
	FollowUps(ctx context.Context, amaID uuid.UUID) ([]domain.FollowUp, error)

	Question(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	Answer(ctx context.Context, id uuid.UUID) (*domain.Answer, error)
	QuestionVoteCount(ctx context.Context, questionID uuid.UUID) (int, error)
	AnswerVoteCount(ctx context.Context, answerID uuid.UUID) (int, error)
}

// Event is one state transition applied to the merged collection. The
// merger consumes events one at a time; it never sees raw notifications.
type Event interface {
	isEvent()
}

// QuestionInserted adds a question row. Duplicate delivery for an ID
// already present is a no-op.
type QuestionInserted struct {
	Question domain.Question
}

// QuestionUpdated merges changed scalar fields into an existing row.
// Derived and linked state (vote count, answered flag, answer,
// follow-up) is preserved. Unknown ID is a no-op.
type QuestionUpdated struct {
	Question domain.Question
}

// QuestionDeleted removes a row; idempotent when already absent.
type QuestionDeleted struct {
	ID uuid.UUID
}

// AnswerInserted attaches an answer to its question and marks the row
// answered in the same transition. An event for a question not present
// locally is dropped.
type AnswerInserted struct {
	Answer domain.Answer
}

// FollowUpInserted attaches a follow-up to its question. A second
// delivery for an already-populated row overwrites (last write wins).
type FollowUpInserted struct {
	FollowUp domain.FollowUp
}

// QuestionVotesFetched carries an authoritative question vote count.
// Gen is the per-row generation assigned when the triggering vote
// notification arrived; a count older than the last applied generation
// for the row is discarded.
type QuestionVotesFetched struct {
	QuestionID uuid.UUID
	Count      int
	Gen        uint64
}

// AnswerVotesFetched carries an authoritative answer vote count, with
// the same generation semantics as QuestionVotesFetched.
type AnswerVotesFetched struct {
	AnswerID uuid.UUID
	Count    int
	Gen      uint64
}

func (QuestionInserted) isEvent()     {}
func (QuestionUpdated) isEvent()      {}
func (QuestionDeleted) isEvent()      {}
func (AnswerInserted) isEvent()       {}
func (FollowUpInserted) isEvent()     {}
func (QuestionVotesFetched) isEvent() {}
func (AnswerVotesFetched) isEvent()   {}
