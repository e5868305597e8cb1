package ama

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
)

// DeleteQuestion removes a question from the host's AMA. Dependent rows
// (answer, votes, follow-up) go with it via the store's cascade.
func (s *Service) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	if questionID == uuid.Nil {
		return domain.NewValidationError("question_id", "required")
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return fmt.Errorf("get question: %w", err)
	}

	_, hostID, err := s.hostFor(ctx, question.AMAID)
	if err != nil {
		return err
	}

	if err := s.questions.Delete(ctx, questionID); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	s.log.InfoContext(ctx, "question deleted",
		slog.String("question_id", questionID.String()),
		slog.String("host_id", hostID.String()),
	)
	return nil
}
