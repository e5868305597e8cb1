package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openama/askfeed/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedAMA creates an active AMA that allows anonymous questions.
func SeedAMA(t *testing.T, pool *pgxpool.Pool) domain.AMA {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	ama := domain.AMA{
		ID:             uuid.New(),
		HostID:         uuid.New(),
		Title:          "Test AMA " + suffix,
		Slug:           "test-ama-" + suffix,
		IsActive:       true,
		AllowAnonymous: true,
		CreatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO amas (id, host_id, title, slug, is_active, allow_anonymous, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ama.ID, ama.HostID, ama.Title, ama.Slug, ama.IsActive, ama.AllowAnonymous, ama.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed ama: %v", err)
	}

	return ama
}

// SeedQuestion creates an anonymous question in the given AMA.
func SeedQuestion(t *testing.T, pool *pgxpool.Pool, amaID uuid.UUID) domain.Question {
	t.Helper()
	ctx := context.Background()

	sessionID := "seed-session-" + uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	q := domain.Question{
		ID:        uuid.New(),
		AMAID:     amaID,
		Content:   "Seeded question " + uniqueSuffix(),
		SessionID: &sessionID,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO questions (id, ama_id, content, session_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		q.ID, q.AMAID, q.Content, q.SessionID, q.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed question: %v", err)
	}

	return q
}

// SeedAnswer creates an answer for the question and marks it answered.
func SeedAnswer(t *testing.T, pool *pgxpool.Pool, questionID uuid.UUID) domain.Answer {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	a := domain.Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		Content:    "Seeded answer " + uniqueSuffix(),
		CreatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO answers (id, question_id, content, created_at)
		 VALUES ($1, $2, $3, $4)`,
		a.ID, a.QuestionID, a.Content, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed answer: %v", err)
	}

	_, err = pool.Exec(ctx, `UPDATE questions SET is_answered = true WHERE id = $1`, questionID)
	if err != nil {
		t.Fatalf("seed answer: mark answered: %v", err)
	}

	return a
}

// SeedVote records a question vote for the given session.
func SeedVote(t *testing.T, pool *pgxpool.Pool, questionID uuid.UUID, sessionID string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO votes (id, question_id, session_id) VALUES ($1, $2, $3)`,
		uuid.New(), questionID, sessionID,
	)
	if err != nil {
		t.Fatalf("seed vote: %v", err)
	}
}
