package questions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
)

// ToggleQuestionVote flips the caller's vote on a question. The ledger is
// the source of truth for local membership: it is toggled first, then the
// complementary write-through runs against the store. A failed write is
// reported as ErrTransientWrite with the ledger left toggled; the
// authoritative count self-corrects on the next change event.
//
// Returns the caller's new membership state.
func (s *Service) ToggleQuestionVote(ctx context.Context, input ToggleQuestionVoteInput) (bool, error) {
	if err := input.Validate(); err != nil {
		return false, err
	}

	if _, ok := s.rows.Row(input.QuestionID); !ok {
		return false, fmt.Errorf("question %s: %w", input.QuestionID, domain.ErrNotFound)
	}

	sessionID := s.sessions.GetOrCreate(ctx)
	wasVoted := s.ledger.Toggle(ctx, domain.VoteKindQuestion, input.QuestionID)
	voted := !wasVoted

	if voted {
		err := s.votes.InsertQuestionVote(ctx, input.QuestionID, sessionID)
		return voted, s.wrapWriteThrough(ctx, err, "question vote insert", input.QuestionID.String())
	}
	err := s.votes.DeleteQuestionVote(ctx, input.QuestionID, sessionID)
	return voted, s.wrapWriteThrough(ctx, err, "question vote delete", input.QuestionID.String())
}

// ToggleAnswerVote flips the caller's vote on an answer, with the same
// ledger-first write-through semantics as ToggleQuestionVote.
func (s *Service) ToggleAnswerVote(ctx context.Context, input ToggleAnswerVoteInput) (bool, error) {
	if err := input.Validate(); err != nil {
		return false, err
	}

	if _, ok := s.rows.QuestionIDForAnswer(input.AnswerID); !ok {
		return false, fmt.Errorf("answer %s: %w", input.AnswerID, domain.ErrNotFound)
	}

	sessionID := s.sessions.GetOrCreate(ctx)
	wasVoted := s.ledger.Toggle(ctx, domain.VoteKindAnswer, input.AnswerID)
	voted := !wasVoted

	if voted {
		err := s.votes.InsertAnswerVote(ctx, input.AnswerID, sessionID)
		return voted, s.wrapWriteThrough(ctx, err, "answer vote insert", input.AnswerID.String())
	}
	err := s.votes.DeleteAnswerVote(ctx, input.AnswerID, sessionID)
	return voted, s.wrapWriteThrough(ctx, err, "answer vote delete", input.AnswerID.String())
}

// HasVoted reports the caller's current local vote membership.
func (s *Service) HasVoted(kind domain.VoteKind, entityID uuid.UUID) bool {
	return s.ledger.HasVoted(kind, entityID)
}

func (s *Service) wrapWriteThrough(ctx context.Context, err error, op, entityID string) error {
	if err == nil {
		return nil
	}
	s.log.WarnContext(ctx, "write-through failed, ledger left toggled",
		slog.String("op", op),
		slog.String("entity_id", entityID),
		slog.Any("error", err),
	)
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrTransientWrite)
}
