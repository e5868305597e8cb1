package domain

import (
	"time"

	"github.com/google/uuid"
)

// Question is an attendee question within one AMA.
//
// VoteCount is derived: it always reflects the last authoritative read of
// the votes table and is never incremented or decremented locally.
// Answered is true iff an Answer referencing this question exists; the two
// are updated together, never independently.
type Question struct {
	ID         uuid.UUID
	AMAID      uuid.UUID
	Content    string
	AuthorName *string
	AuthorID   *uuid.UUID // nil = anonymous
	SessionID  *string    // anonymous session attribution, used for follow-up eligibility
	VoteCount  int
	Answered   bool
	CreatedAt  time.Time
}

// Answer is the host's answer to a question. Exactly one per question;
// content is immutable after creation, only the vote count changes.
type Answer struct {
	ID         uuid.UUID
	QuestionID uuid.UUID
	Content    string
	VoteCount  int
	CreatedAt  time.Time
}

// FollowUp is the single follow-up the original asker may attach once the
// question has been answered.
type FollowUp struct {
	ID         uuid.UUID
	QuestionID uuid.UUID
	Content    string
	AuthorID   *uuid.UUID
	SessionID  *string
	CreatedAt  time.Time
}

// MergedRow is the joined view of one question with its optional answer
// and optional follow-up. It is the unit the ranking sorts and the UI
// renders. The merger exclusively owns the canonical collection of rows;
// everything else reads snapshots.
type MergedRow struct {
	Question Question
	Answer   *Answer
	FollowUp *FollowUp
}

// AnsweredDisplay reports whether the row renders as answered. It is kept
// consistent with Answer presence by the merger.
func (r MergedRow) AnsweredDisplay() bool {
	return r.Question.Answered && r.Answer != nil
}

// Clone returns a copy whose Answer and FollowUp do not alias the receiver's.
func (r MergedRow) Clone() MergedRow {
	out := r
	if r.Answer != nil {
		a := *r.Answer
		out.Answer = &a
	}
	if r.FollowUp != nil {
		f := *r.FollowUp
		out.FollowUp = &f
	}
	return out
}

// VoteKind distinguishes the two votable entity kinds.
type VoteKind string

const (
	VoteKindQuestion VoteKind = "QUESTION"
	VoteKindAnswer   VoteKind = "ANSWER"
)

func (k VoteKind) String() string { return string(k) }

func (k VoteKind) IsValid() bool {
	switch k {
	case VoteKindQuestion, VoteKindAnswer:
		return true
	}
	return false
}
