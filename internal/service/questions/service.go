package questions

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
)

const (
	MaxQuestionLength   = 2000
	MaxAuthorNameLength = 100
	MaxFollowUpLength   = 2000
)

type amaReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AMA, error)
}

// rowReader is the live merged view; reads never block on the store.
type rowReader interface {
	Row(questionID uuid.UUID) (domain.MergedRow, bool)
	QuestionIDForAnswer(answerID uuid.UUID) (uuid.UUID, bool)
}

type questionRepo interface {
	Create(ctx context.Context, question *domain.Question) (*domain.Question, error)
}

type followUpRepo interface {
	Create(ctx context.Context, followUp *domain.FollowUp) (*domain.FollowUp, error)
}

type voteRepo interface {
	InsertQuestionVote(ctx context.Context, questionID uuid.UUID, sessionID string) error
	DeleteQuestionVote(ctx context.Context, questionID uuid.UUID, sessionID string) error
	InsertAnswerVote(ctx context.Context, answerID uuid.UUID, sessionID string) error
	DeleteAnswerVote(ctx context.Context, answerID uuid.UUID, sessionID string) error
}

type voteLedger interface {
	HasVoted(kind domain.VoteKind, entityID uuid.UUID) bool
	Toggle(ctx context.Context, kind domain.VoteKind, entityID uuid.UUID) bool
}

type sessionStore interface {
	GetOrCreate(ctx context.Context) string
}

// Service provides attendee operations: submitting questions, toggling
// votes, and submitting follow-ups.
type Service struct {
	amas      amaReader
	rows      rowReader
	questions questionRepo
	followUps followUpRepo
	votes     voteRepo
	ledger    voteLedger
	sessions  sessionStore
	log       *slog.Logger
}

// NewService creates a new Questions service.
func NewService(
	log *slog.Logger,
	amas amaReader,
	rows rowReader,
	questions questionRepo,
	followUps followUpRepo,
	votes voteRepo,
	ledger voteLedger,
	sessions sessionStore,
) *Service {
	return &Service{
		amas:      amas,
		rows:      rows,
		questions: questions,
		followUps: followUps,
		votes:     votes,
		ledger:    ledger,
		sessions:  sessions,
		log:       log.With("service", "questions"),
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
