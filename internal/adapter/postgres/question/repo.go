// Package question implements the question repository using PostgreSQL.
// Reads go through the questions_with_votes view so every returned row
// carries an authoritative vote count.
package question

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

var viewColumns = []string{
	"id", "ama_id", "content", "author_name", "author_id",
	"session_id", "is_answered", "created_at", "vote_count",
}

// questionRow mirrors the questions_with_votes view for scany.
type questionRow struct {
	ID         uuid.UUID  `db:"id"`
	AMAID      uuid.UUID  `db:"ama_id"`
	Content    string     `db:"content"`
	AuthorName *string    `db:"author_name"`
	AuthorID   *uuid.UUID `db:"author_id"`
	SessionID  *string    `db:"session_id"`
	IsAnswered bool       `db:"is_answered"`
	CreatedAt  time.Time  `db:"created_at"`
	VoteCount  int        `db:"vote_count"`
}

// Repo provides question persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new question repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new question and returns the persisted row.
// A missing AMA results in domain.ErrNotFound via the foreign key.
func (r *Repo) Create(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("questions").
		Columns("id", "ama_id", "content", "author_name", "author_id", "session_id", "created_at").
		Values(question.ID, question.AMAID, question.Content, question.AuthorName,
			question.AuthorID, question.SessionID, question.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create question: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return nil, mapError(err, "question", question.ID)
	}

	return r.GetByID(ctx, question.ID)
}

// GetByID returns a question by primary key, vote count included.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(viewColumns...).
		From("questions_with_votes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get question: %w", err)
	}

	var row questionRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, mapError(err, "question", id)
	}

	out := toDomain(row)
	return &out, nil
}

// ListByAMA returns every question of one AMA with vote counts, oldest first.
func (r *Repo) ListByAMA(ctx context.Context, amaID uuid.UUID) ([]domain.Question, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(viewColumns...).
		From("questions_with_votes").
		Where(squirrel.Eq{"ama_id": amaID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list questions: %w", err)
	}

	var rows []questionRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, mapError(err, "question", uuid.Nil)
	}

	questions := make([]domain.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, toDomain(row))
	}

	return questions, nil
}

// VoteCount returns the current vote count of one question.
// Returns domain.ErrNotFound when the question does not exist.
func (r *Repo) VoteCount(ctx context.Context, questionID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	err := q.QueryRow(ctx,
		`SELECT vote_count FROM questions_with_votes WHERE id = $1`,
		questionID,
	).Scan(&count)
	if err != nil {
		return 0, mapError(err, "question", questionID)
	}

	return count, nil
}

// SetAnswered flips the answered flag on a question.
// Returns domain.ErrNotFound if the question does not exist.
func (r *Repo) SetAnswered(ctx context.Context, id uuid.UUID, answered bool) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("questions").
		Set("is_answered", answered).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set answered: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "question", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a question. Votes, the answer and the follow-up go with
// it through the store's cascades.
// Returns domain.ErrNotFound if the question does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete("questions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete question: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "question", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func toDomain(row questionRow) domain.Question {
	return domain.Question{
		ID:         row.ID,
		AMAID:      row.AMAID,
		Content:    row.Content,
		AuthorName: row.AuthorName,
		AuthorID:   row.AuthorID,
		SessionID:  row.SessionID,
		VoteCount:  row.VoteCount,
		Answered:   row.IsAnswered,
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
