// Package followup implements the follow-up question repository using
// PostgreSQL.
package followup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/openama/askfeed/internal/adapter/postgres"
	"github.com/openama/askfeed/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// followUpRow mirrors the follow_up_questions table for scany.
type followUpRow struct {
	ID         uuid.UUID  `db:"id"`
	QuestionID uuid.UUID  `db:"question_id"`
	Content    string     `db:"content"`
	AuthorID   *uuid.UUID `db:"author_id"`
	SessionID  *string    `db:"session_id"`
	CreatedAt  time.Time  `db:"created_at"`
}

// Repo provides follow-up persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new follow-up repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts the follow-up for a question and returns the persisted
// row. A second follow-up for the same question results in
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, followUp *domain.FollowUp) (*domain.FollowUp, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("follow_up_questions").
		Columns("id", "question_id", "content", "author_id", "session_id", "created_at").
		Values(followUp.ID, followUp.QuestionID, followUp.Content,
			followUp.AuthorID, followUp.SessionID, followUp.CreatedAt).
		Suffix("RETURNING id, question_id, content, author_id, session_id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create follow-up: %w", err)
	}

	var row followUpRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, mapError(err, "follow-up", followUp.ID)
	}

	out := toDomain(row)
	return &out, nil
}

// ListByAMA returns every follow-up within one AMA.
func (r *Repo) ListByAMA(ctx context.Context, amaID uuid.UUID) ([]domain.FollowUp, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(
		"f.id", "f.question_id", "f.content", "f.author_id", "f.session_id", "f.created_at",
	).
		From("follow_up_questions f").
		Join("questions q ON q.id = f.question_id").
		Where(squirrel.Eq{"q.ama_id": amaID}).
		OrderBy("f.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list follow-ups: %w", err)
	}

	var rows []followUpRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, mapError(err, "follow-up", uuid.Nil)
	}

	followUps := make([]domain.FollowUp, 0, len(rows))
	for _, row := range rows {
		followUps = append(followUps, toDomain(row))
	}

	return followUps, nil
}

func toDomain(row followUpRow) domain.FollowUp {
	return domain.FollowUp{
		ID:         row.ID,
		QuestionID: row.QuestionID,
		Content:    row.Content,
		AuthorID:   row.AuthorID,
		SessionID:  row.SessionID,
		CreatedAt:  row.CreatedAt,
	}
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
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
