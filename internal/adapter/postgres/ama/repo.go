// Package ama implements the AMA repository using PostgreSQL.
package ama

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

var amaColumns = []string{
	"id", "host_id", "title", "description", "slug",
	"is_active", "allow_anonymous", "created_at",
}

// amaRow mirrors the amas table for scany.
type amaRow struct {
	ID             uuid.UUID `db:"id"`
	HostID         uuid.UUID `db:"host_id"`
	Title          string    `db:"title"`
	Description    *string   `db:"description"`
	Slug           string    `db:"slug"`
	IsActive       bool      `db:"is_active"`
	AllowAnonymous bool      `db:"allow_anonymous"`
	CreatedAt      time.Time `db:"created_at"`
}

// Repo provides AMA persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new AMA repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new AMA and returns the persisted row.
// A duplicate slug results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, ama *domain.AMA) (*domain.AMA, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("amas").
		Columns(amaColumns...).
		Values(ama.ID, ama.HostID, ama.Title, ama.Description, ama.Slug,
			ama.IsActive, ama.AllowAnonymous, ama.CreatedAt).
		Suffix("RETURNING " + joinColumns(amaColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create ama: %w", err)
	}

	var row amaRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, mapError(err, "ama", ama.ID)
	}

	return toDomain(row), nil
}

// GetByID returns an AMA by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AMA, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(amaColumns...).
		From("amas").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get ama: %w", err)
	}

	var row amaRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, mapError(err, "ama", id)
	}

	return toDomain(row), nil
}

// GetBySlug returns an AMA by its public slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.AMA, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(amaColumns...).
		From("amas").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get ama by slug: %w", err)
	}

	var row amaRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, mapError(err, "ama", uuid.Nil)
	}

	return toDomain(row), nil
}

// SetActive toggles whether the AMA accepts new questions and votes.
// Returns domain.ErrNotFound if the AMA does not exist.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.setFlag(ctx, id, "is_active", active)
}

// SetAllowAnonymous toggles whether unauthenticated attendees may submit.
// Returns domain.ErrNotFound if the AMA does not exist.
func (r *Repo) SetAllowAnonymous(ctx context.Context, id uuid.UUID, allow bool) error {
	return r.setFlag(ctx, id, "allow_anonymous", allow)
}

func (r *Repo) setFlag(ctx context.Context, id uuid.UUID, column string, value bool) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("amas").
		Set(column, value).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update ama %s: %w", column, err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "ama", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ama %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func joinColumns(cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += ", " + c
	}
	return out
}

func toDomain(row amaRow) *domain.AMA {
	return &domain.AMA{
		ID:             row.ID,
		HostID:         row.HostID,
		Title:          row.Title,
		Description:    row.Description,
		Slug:           row.Slug,
		IsActive:       row.IsActive,
		AllowAnonymous: row.AllowAnonymous,
		CreatedAt:      row.CreatedAt,
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

	// scany reports an empty result with its own sentinel, plain pgx
	// queries with pgx.ErrNoRows.
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
