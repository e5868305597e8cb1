//go:build e2e

package e2e_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/openama/askfeed/internal/adapter/postgres"
	amarepo "github.com/openama/askfeed/internal/adapter/postgres/ama"
	answerrepo "github.com/openama/askfeed/internal/adapter/postgres/answer"
	"github.com/openama/askfeed/internal/adapter/postgres/feedstore"
	followuprepo "github.com/openama/askfeed/internal/adapter/postgres/followup"
	"github.com/openama/askfeed/internal/adapter/postgres/listen"
	questionrepo "github.com/openama/askfeed/internal/adapter/postgres/question"
	"github.com/openama/askfeed/internal/adapter/postgres/testhelper"
	voterepo "github.com/openama/askfeed/internal/adapter/postgres/vote"
	"github.com/openama/askfeed/internal/clientstore"
	"github.com/openama/askfeed/internal/domain"
	"github.com/openama/askfeed/internal/feed"
	"github.com/openama/askfeed/internal/identity"
	"github.com/openama/askfeed/internal/ledger"
	amasvc "github.com/openama/askfeed/internal/service/ama"
	questionssvc "github.com/openama/askfeed/internal/service/questions"
	"github.com/openama/askfeed/pkg/ctxutil"
)

// stack is a fully wired askfeed instance over the shared test database.
type stack struct {
	Pool     *pgxpool.Pool
	Listener *listen.Listener
	Identity *identity.Store
	Ledger   *ledger.Ledger
	Hosts    *amasvc.Service
	Source   *feedstore.Store
	Log      *slog.Logger
}

// setupStack wires repos, listener, client-side stores and the host
// service against the shared container. Each call gets its own client
// store file, so ledgers and session ids do not leak across tests.
func setupStack(t *testing.T) *stack {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	log := slog.Default()

	listener := listen.New(log, pool)
	require.NoError(t, listener.Start(context.Background()))
	t.Cleanup(listener.Close)

	client := clientstore.NewFile(filepath.Join(t.TempDir(), "client.json"))

	return &stack{
		Pool:     pool,
		Listener: listener,
		Identity: identity.New(log, client),
		Ledger:   ledger.New(context.Background(), log, client),
		Hosts: amasvc.NewService(log, amarepo.New(pool),
			questionrepo.New(pool), answerrepo.New(pool), postgres.NewTxManager(pool)),
		Source: feedstore.New(pool),
		Log:    log,
	}
}

// openFeed cold-starts a live view for the AMA and binds the attendee
// service to it.
func (s *stack) openFeed(t *testing.T, amaID uuid.UUID) (*feed.Live, *questionssvc.Service) {
	t.Helper()

	live, err := feed.Open(context.Background(), s.Log, s.Source, s.Listener, amaID, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(live.Close)

	svc := questionssvc.NewService(s.Log, amarepo.New(s.Pool), live,
		questionrepo.New(s.Pool), followuprepo.New(s.Pool), voterepo.New(s.Pool),
		s.Ledger, s.Identity)

	return live, svc
}

// createAMA creates an AMA as a fresh authenticated host and returns it
// with the host's context.
func (s *stack) createAMA(t *testing.T, title string, allowAnonymous bool) (*domain.AMA, context.Context) {
	t.Helper()

	hostCtx := ctxutil.WithUserID(context.Background(), uuid.New())
	ama, err := s.Hosts.Create(hostCtx, amasvc.CreateInput{
		Title:          title + " " + uuid.New().String()[:8],
		AllowAnonymous: allowAnonymous,
	})
	require.NoError(t, err)

	return ama, hostCtx
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
