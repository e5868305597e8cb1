// Package vote implements the vote repository using PostgreSQL.
// Inserts are idempotent per (entity, session): a repeated insert for the
// same pair is a no-op and a delete of an absent vote succeeds. The local
// ledger is authoritative for toggle direction; the store only converges.
package vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/openama/askfeed/internal/adapter/postgres"
	"github.com/openama/askfeed/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides vote persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vote repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// InsertQuestionVote records a question vote for the session.
// Voting twice for the same question is a no-op.
func (r *Repo) InsertQuestionVote(ctx context.Context, questionID uuid.UUID, sessionID string) error {
	return r.insert(ctx, "votes", "question_id", questionID, sessionID)
}

// DeleteQuestionVote removes the session's vote from a question.
// Deleting an absent vote is a no-op.
func (r *Repo) DeleteQuestionVote(ctx context.Context, questionID uuid.UUID, sessionID string) error {
	return r.delete(ctx, "votes", "question_id", questionID, sessionID)
}

// InsertAnswerVote records an answer vote for the session.
func (r *Repo) InsertAnswerVote(ctx context.Context, answerID uuid.UUID, sessionID string) error {
	return r.insert(ctx, "answer_votes", "answer_id", answerID, sessionID)
}

// DeleteAnswerVote removes the session's vote from an answer.
func (r *Repo) DeleteAnswerVote(ctx context.Context, answerID uuid.UUID, sessionID string) error {
	return r.delete(ctx, "answer_votes", "answer_id", answerID, sessionID)
}

func (r *Repo) insert(ctx context.Context, table, fkColumn string, entityID uuid.UUID, sessionID string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert(table).
		Columns("id", fkColumn, "session_id").
		Values(uuid.New(), entityID, sessionID).
		Suffix(fmt.Sprintf("ON CONFLICT (%s, session_id) DO NOTHING", fkColumn)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", table, err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return mapError(err, table, entityID)
	}

	return nil
}

func (r *Repo) delete(ctx context.Context, table, fkColumn string, entityID uuid.UUID, sessionID string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete(table).
		Where(squirrel.Eq{fkColumn: entityID, "session_id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", table, err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return mapError(err, table, entityID)
	}

	return nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
