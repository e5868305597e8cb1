// Package feedstore bundles the per-entity repositories into the single
// query-side surface the live feed reconciles against.
package feedstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openama/askfeed/internal/adapter/postgres/answer"
	"github.com/openama/askfeed/internal/adapter/postgres/followup"
	"github.com/openama/askfeed/internal/adapter/postgres/question"
	"github.com/openama/askfeed/internal/domain"
)

// Store implements the feed's Source over the PostgreSQL repositories.
type Store struct {
	questions *question.Repo
	answers   *answer.Repo
	followUps *followup.Repo
}

// New creates a feed source over one connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{
		questions: question.New(pool),
		answers:   answer.New(pool),
		followUps: followup.New(pool),
	}
}

// Questions returns every question of the AMA with current vote counts.
func (s *Store) Questions(ctx context.Context, amaID uuid.UUID) ([]domain.Question, error) {
	return s.questions.ListByAMA(ctx, amaID)
}

// Answers returns every answer within the AMA with current vote counts.
func (s *Store) Answers(ctx context.Context, amaID uuid.UUID) ([]domain.Answer, error) {
	return s.answers.ListByAMA(ctx, amaID)
}

// FollowUps returns every follow-up within the AMA.
func (s *Store) FollowUps(ctx context.Context, amaID uuid.UUID) ([]domain.FollowUp, error) {
	return s.followUps.ListByAMA(ctx, amaID)
}

// Question returns the authoritative state of one question.
func (s *Store) Question(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	return s.questions.GetByID(ctx, id)
}

// Answer returns the authoritative state of one answer.
func (s *Store) Answer(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
	return s.answers.GetByID(ctx, id)
}

// QuestionVoteCount returns the current vote count of one question.
func (s *Store) QuestionVoteCount(ctx context.Context, questionID uuid.UUID) (int, error) {
	return s.questions.VoteCount(ctx, questionID)
}

// AnswerVoteCount returns the current vote count of one answer.
func (s *Store) AnswerVoteCount(ctx context.Context, answerID uuid.UUID) (int, error) {
	return s.answers.VoteCount(ctx, answerID)
}
