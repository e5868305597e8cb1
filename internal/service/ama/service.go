package ama

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
	"github.com/openama/askfeed/pkg/ctxutil"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxAnswerLength      = 5000
)

type amaRepo interface {
	Create(ctx context.Context, ama *domain.AMA) (*domain.AMA, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AMA, error)
	GetBySlug(ctx context.Context, slug string) (*domain.AMA, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetAllowAnonymous(ctx context.Context, id uuid.UUID, allow bool) error
}

type questionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	SetAnswered(ctx context.Context, id uuid.UUID, answered bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type answerRepo interface {
	Create(ctx context.Context, answer *domain.Answer) (*domain.Answer, error)
}

// txManager defines the transaction manager interface needed by ama service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides host operations on AMA events and their questions.
type Service struct {
	amas      amaRepo
	questions questionRepo
	answers   answerRepo
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new AMA service.
func NewService(
	log *slog.Logger,
	amas amaRepo,
	questions questionRepo,
	answers answerRepo,
	tx txManager,
) *Service {
	return &Service{
		amas:      amas,
		questions: questions,
		answers:   answers,
		tx:        tx,
		log:       log.With("service", "ama"),
	}
}

// GetBySlug resolves an AMA by its public slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.AMA, error) {
	if slug == "" {
		return nil, domain.NewValidationError("slug", "required")
	}
	ama, err := s.amas.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get ama by slug: %w", err)
	}
	return ama, nil
}

// hostFor loads the AMA and checks that the caller is its host.
func (s *Service) hostFor(ctx context.Context, amaID uuid.UUID) (*domain.AMA, uuid.UUID, error) {
	hostID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, uuid.Nil, fmt.Errorf("host identity required: %w", domain.ErrPermission)
	}
	ama, err := s.amas.GetByID(ctx, amaID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("get ama: %w", err)
	}
	if ama.HostID != hostID {
		return nil, uuid.Nil, fmt.Errorf("caller is not the host: %w", domain.ErrPermission)
	}
	return ama, hostID, nil
}
