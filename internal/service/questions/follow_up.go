package questions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
	"github.com/openama/askfeed/pkg/ctxutil"
)

// SubmitFollowUp writes the single follow-up the original asker may
// attach after the question has been answered. Eligibility mirrors the
// store's authoritative gate: an answer exists, no follow-up exists yet,
// and the caller is the question's author, matched by account ID when
// authenticated or by session ID when anonymous.
func (s *Service) SubmitFollowUp(ctx context.Context, input SubmitFollowUpInput) (*domain.FollowUp, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	row, ok := s.rows.Row(input.QuestionID)
	if !ok {
		return nil, fmt.Errorf("question %s: %w", input.QuestionID, domain.ErrNotFound)
	}
	if row.Answer == nil {
		return nil, fmt.Errorf("question has no answer yet: %w", domain.ErrEligibility)
	}
	if row.FollowUp != nil {
		return nil, fmt.Errorf("follow-up already exists: %w", domain.ErrEligibility)
	}

	userID, authenticated := ctxutil.UserIDFromCtx(ctx)
	sessionID := s.sessions.GetOrCreate(ctx)
	if !isQuestionAuthor(row.Question, userID, authenticated, sessionID) {
		return nil, fmt.Errorf("caller is not the question author: %w", domain.ErrEligibility)
	}

	followUp := &domain.FollowUp{
		ID:         uuid.New(),
		QuestionID: input.QuestionID,
		Content:    strings.TrimSpace(input.Content),
		SessionID:  &sessionID,
		CreatedAt:  time.Now().UTC(),
	}
	if authenticated {
		followUp.AuthorID = &userID
	}

	created, err := s.followUps.Create(ctx, followUp)
	if err != nil {
		return nil, fmt.Errorf("create follow-up: %w", err)
	}

	s.log.InfoContext(ctx, "follow-up submitted",
		slog.String("question_id", input.QuestionID.String()),
		slog.String("follow_up_id", created.ID.String()),
	)

	return created, nil
}

// isQuestionAuthor matches the caller against the question's attribution.
// An authenticated author beats session attribution; a question with
// neither kind of attribution has no eligible follow-up author.
func isQuestionAuthor(q domain.Question, userID uuid.UUID, authenticated bool, sessionID string) bool {
	if q.AuthorID != nil {
		return authenticated && *q.AuthorID == userID
	}
	if q.SessionID != nil {
		return *q.SessionID == sessionID
	}
	return false
}
