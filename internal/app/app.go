// Package app wires configuration, storage, the change-feed listener and
// the services into a running application.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openama/askfeed/internal/adapter/postgres"
	amarepo "github.com/openama/askfeed/internal/adapter/postgres/ama"
	answerrepo "github.com/openama/askfeed/internal/adapter/postgres/answer"
	"github.com/openama/askfeed/internal/adapter/postgres/feedstore"
	followuprepo "github.com/openama/askfeed/internal/adapter/postgres/followup"
	"github.com/openama/askfeed/internal/adapter/postgres/listen"
	questionrepo "github.com/openama/askfeed/internal/adapter/postgres/question"
	voterepo "github.com/openama/askfeed/internal/adapter/postgres/vote"
	"github.com/openama/askfeed/internal/auth"
	"github.com/openama/askfeed/internal/clientstore"
	"github.com/openama/askfeed/internal/config"
	"github.com/openama/askfeed/internal/domain"
	"github.com/openama/askfeed/internal/feed"
	"github.com/openama/askfeed/internal/identity"
	"github.com/openama/askfeed/internal/ledger"
	amasvc "github.com/openama/askfeed/internal/service/ama"
	questionssvc "github.com/openama/askfeed/internal/service/questions"
)

// App holds the wired application components.
type App struct {
	Log      *slog.Logger
	Cfg      *config.Config
	Pool     *pgxpool.Pool
	Listener *listen.Listener

	Client   clientstore.Store
	Identity *identity.Store
	Ledger   *ledger.Ledger

	// Verifier is nil when no JWT secret is configured; all callers are
	// then anonymous.
	Verifier *auth.TokenVerifier

	AMAs   *amarepo.Repo
	Hosts  *amasvc.Service
	Source *feedstore.Store
}

// New loads configuration and wires every component. The caller owns the
// returned App and must Close it.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := NewLogger(cfg.Log)
	log.InfoContext(ctx, "starting askfeed",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	client, err := newClientStore(ctx, cfg.Client)
	if err != nil {
		pool.Close()
		return nil, err
	}

	listener := listen.New(log, pool)
	if err := listener.Start(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("start change listener: %w", err)
	}

	amas := amarepo.New(pool)
	questions := questionrepo.New(pool)
	answers := answerrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	app := &App{
		Log:      log,
		Cfg:      cfg,
		Pool:     pool,
		Listener: listener,
		Client:   client,
		Identity: identity.New(log, client),
		Ledger:   ledger.New(ctx, log, client),
		AMAs:     amas,
		Hosts:    amasvc.NewService(log, amas, questions, answers, tx),
		Source:   feedstore.New(pool),
	}

	if cfg.Auth.Enabled() {
		app.Verifier = auth.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	}

	return app, nil
}

// Close tears down the listener and the connection pool.
func (a *App) Close() {
	a.Listener.Close()
	a.Pool.Close()
}

// FeedSession is one attendee view of an AMA: the live merged feed plus
// the mutation service bound to it.
type FeedSession struct {
	AMA       *domain.AMA
	Live      *feed.Live
	Questions *questionssvc.Service
}

// Close tears down the live feed. The shared listener stays up.
func (s *FeedSession) Close() {
	s.Live.Close()
}

// OpenFeed resolves the AMA by slug, cold-starts its live merged view and
// binds the attendee mutation service to it.
func (a *App) OpenFeed(ctx context.Context, slug string) (*FeedSession, error) {
	ama, err := a.AMAs.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("resolve ama %q: %w", slug, err)
	}

	live, err := feed.Open(ctx, a.Log, a.Source, a.Listener, ama.ID, a.Cfg.Feed.RefetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("open feed for %q: %w", slug, err)
	}

	questions := questionssvc.NewService(
		a.Log,
		a.AMAs,
		live,
		questionrepo.New(a.Pool),
		followuprepo.New(a.Pool),
		voterepo.New(a.Pool),
		a.Ledger,
		a.Identity,
	)

	return &FeedSession{AMA: ama, Live: live, Questions: questions}, nil
}

func newClientStore(ctx context.Context, cfg config.ClientConfig) (clientstore.Store, error) {
	switch cfg.Backend {
	case "redis":
		store, err := clientstore.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect client store: %w", err)
		}
		return store, nil
	default:
		return clientstore.NewFile(cfg.FilePath), nil
	}
}
