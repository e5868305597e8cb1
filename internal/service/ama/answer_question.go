package ama

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
)

// AnswerQuestion writes the host's answer. The answer insert and the
// question's answered flag are committed in one transaction so no reader
// of the store ever sees one without the other.
func (s *Service) AnswerQuestion(ctx context.Context, input AnswerQuestionInput) (*domain.Answer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	question, err := s.questions.GetByID(ctx, input.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	_, hostID, err := s.hostFor(ctx, question.AMAID)
	if err != nil {
		return nil, err
	}

	if question.Answered {
		return nil, fmt.Errorf("question already answered: %w", domain.ErrAlreadyExists)
	}

	answer := &domain.Answer{
		ID:         uuid.New(),
		QuestionID: input.QuestionID,
		Content:    strings.TrimSpace(input.Content),
		CreatedAt:  time.Now().UTC(),
	}

	var created *domain.Answer
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.answers.Create(txCtx, answer)
		if txErr != nil {
			return fmt.Errorf("create answer: %w", txErr)
		}
		if txErr := s.questions.SetAnswered(txCtx, input.QuestionID, true); txErr != nil {
			return fmt.Errorf("set answered: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "question answered",
		slog.String("question_id", input.QuestionID.String()),
		slog.String("answer_id", created.ID.String()),
		slog.String("host_id", hostID.String()),
	)

	return created, nil
}
