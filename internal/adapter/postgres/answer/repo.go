// Package answer implements the answer repository using PostgreSQL.
// Reads go through the answers_with_votes view so every returned row
// carries an authoritative vote count.
package answer

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

var viewColumns = []string{"id", "question_id", "content", "created_at", "vote_count"}

// answerRow mirrors the answers_with_votes view for scany.
type answerRow struct {
	ID         uuid.UUID `db:"id"`
	QuestionID uuid.UUID `db:"question_id"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
	VoteCount  int       `db:"vote_count"`
}

// Repo provides answer persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new answer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts the answer for a question and returns the persisted row.
// A second answer for the same question results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, answer *domain.Answer) (*domain.Answer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("answers").
		Columns("id", "question_id", "content", "created_at").
		Values(answer.ID, answer.QuestionID, answer.Content, answer.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create answer: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return nil, mapError(err, "answer", answer.ID)
	}

	return r.GetByID(ctx, answer.ID)
}

// GetByID returns an answer by primary key, vote count included.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(viewColumns...).
		From("answers_with_votes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get answer: %w", err)
	}

	var row answerRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, mapError(err, "answer", id)
	}

	out := toDomain(row)
	return &out, nil
}

// ListByAMA returns every answer within one AMA with vote counts.
func (r *Repo) ListByAMA(ctx context.Context, amaID uuid.UUID) ([]domain.Answer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(
		"a.id", "a.question_id", "a.content", "a.created_at", "a.vote_count",
	).
		From("answers_with_votes a").
		Join("questions q ON q.id = a.question_id").
		Where(squirrel.Eq{"q.ama_id": amaID}).
		OrderBy("a.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list answers: %w", err)
	}

	var rows []answerRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, mapError(err, "answer", uuid.Nil)
	}

	answers := make([]domain.Answer, 0, len(rows))
	for _, row := range rows {
		answers = append(answers, toDomain(row))
	}

	return answers, nil
}

// VoteCount returns the current vote count of one answer.
// Returns domain.ErrNotFound when the answer does not exist.
func (r *Repo) VoteCount(ctx context.Context, answerID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	err := q.QueryRow(ctx,
		`SELECT vote_count FROM answers_with_votes WHERE id = $1`,
		answerID,
	).Scan(&count)
	if err != nil {
		return 0, mapError(err, "answer", answerID)
	}

	return count, nil
}

func toDomain(row answerRow) domain.Answer {
	return domain.Answer{
		ID:         row.ID,
		QuestionID: row.QuestionID,
		Content:    row.Content,
		VoteCount:  row.VoteCount,
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
