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

// SubmitQuestion writes a new question through to the store. The merged
// view picks the row up asynchronously via the change feed; the returned
// question is the written row, not the merged one.
func (s *Service) SubmitQuestion(ctx context.Context, input SubmitQuestionInput) (*domain.Question, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ama, err := s.amas.GetByID(ctx, input.AMAID)
	if err != nil {
		return nil, fmt.Errorf("get ama: %w", err)
	}
	if !ama.IsActive {
		return nil, fmt.Errorf("ama is not accepting questions: %w", domain.ErrPermission)
	}

	userID, authenticated := ctxutil.UserIDFromCtx(ctx)
	if !ama.AllowAnonymous && !authenticated {
		return nil, fmt.Errorf("anonymous submission disabled: %w", domain.ErrPermission)
	}

	sessionID := s.sessions.GetOrCreate(ctx)

	question := &domain.Question{
		ID:         uuid.New(),
		AMAID:      input.AMAID,
		Content:    strings.TrimSpace(input.Content),
		AuthorName: trimOrNil(input.AuthorName),
		SessionID:  &sessionID,
		CreatedAt:  time.Now().UTC(),
	}
	if authenticated {
		question.AuthorID = &userID
	}

	created, err := s.questions.Create(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	s.log.InfoContext(ctx, "question submitted",
		slog.String("ama_id", input.AMAID.String()),
		slog.String("question_id", created.ID.String()),
		slog.Bool("anonymous", !authenticated),
	)

	return created, nil
}
