package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openama/askfeed/internal/adapter/postgres"
	"github.com/openama/askfeed/internal/adapter/postgres/testhelper"
)

// amaExists checks whether an ama row with the given ID exists.
func amaExists(t *testing.T, pool *pgxpool.Pool, amaID uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM amas WHERE id = $1)`,
		amaID,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("amaExists query: %v", err)
	}
	return exists
}

func insertAMA(ctx context.Context, q postgres.Querier, amaID uuid.UUID, slug string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO amas (id, host_id, title, slug, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		amaID, uuid.New(), "Tx Test", slug,
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	amaID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertAMA(ctx, postgres.QuerierFromCtx(ctx, pool), amaID, "commit-"+amaID.String())
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !amaExists(t, pool, amaID) {
		t.Fatal("expected ama to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	amaID := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertAMA(ctx, postgres.QuerierFromCtx(ctx, pool), amaID, "rollback-"+amaID.String()); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if amaExists(t, pool, amaID) {
		t.Fatal("expected ama NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	amaID := uuid.New()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		if amaExists(t, pool, amaID) {
			t.Fatal("expected ama NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertAMA(ctx, postgres.QuerierFromCtx(ctx, pool), amaID, "panic-"+amaID.String()); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	amaID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if err := insertAMA(ctx, q, amaID, "ctx-"+amaID.String()); err != nil {
			return err
		}

		// Visible within the transaction before commit.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM amas WHERE id = $1)`, amaID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected ama to be visible within the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !amaExists(t, pool, amaID) {
		t.Fatal("expected ama to exist after committed transaction")
	}
}
