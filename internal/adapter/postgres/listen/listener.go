// Package listen delivers row change notifications from PostgreSQL to the
// live feed. The store's triggers emit one JSON payload per changed row on
// a single NOTIFY channel; the listener holds a dedicated connection,
// decodes each payload and fans it out to per-table subscribers.
package listen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openama/askfeed/internal/feed"
)

// channelName must match the channel the notify triggers publish on.
const channelName = "askfeed_changes"

// reconnectDelay is how long the listen loop waits before re-acquiring a
// connection after a wait failure.
const reconnectDelay = time.Second

// Listener implements the feed's Subscriber over LISTEN/NOTIFY.
type Listener struct {
	pool *pgxpool.Pool
	log  *slog.Logger

	mu       sync.Mutex
	handlers map[feed.Table]map[int]func(feed.Notification)
	nextID   int

	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// New creates a listener over the pool. Start must be called before any
// notifications are delivered.
func New(log *slog.Logger, pool *pgxpool.Pool) *Listener {
	return &Listener{
		pool:     pool,
		log:      log.With("component", "listener"),
		handlers: make(map[feed.Table]map[int]func(feed.Notification)),
	}
}

// Start acquires a dedicated connection, issues LISTEN and begins the
// receive loop. The loop runs until Close; a broken connection is
// re-acquired with a short delay.
func (l *Listener) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	l.cancel = cancel
	l.done = make(chan struct{})

	conn, err := l.listenConn(ctx)
	if err != nil {
		cancel()
		close(l.done)
		return err
	}

	go l.run(runCtx, conn)
	return nil
}

// Subscribe registers fn for one table's change stream. fn is called from
// the receive goroutine; it must not block.
func (l *Listener) Subscribe(table feed.Table, fn func(feed.Notification)) (feed.Subscription, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, fmt.Errorf("listener closed")
	}

	if l.handlers[table] == nil {
		l.handlers[table] = make(map[int]func(feed.Notification))
	}
	id := l.nextID
	l.nextID++
	l.handlers[table][id] = fn

	return &subscription{listener: l, table: table, id: id}, nil
}

// Close stops the receive loop and drops all subscriptions. Idempotent.
func (l *Listener) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.handlers = make(map[feed.Table]map[int]func(feed.Notification))
	l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		<-l.done
	}
}

func (l *Listener) listenConn(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listen connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", channelName, err)
	}
	return conn, nil
}

func (l *Listener) run(ctx context.Context, conn *pgxpool.Conn) {
	defer close(l.done)
	defer func() {
		if conn != nil {
			conn.Release()
		}
	}()

	for {
		if conn == nil {
			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}

			var err error
			conn, err = l.listenConn(ctx)
			if err != nil {
				l.log.WarnContext(ctx, "relisten failed", slog.String("error", err.Error()))
				continue
			}
			l.log.InfoContext(ctx, "listen connection restored")
		}

		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			l.log.WarnContext(ctx, "wait for notification failed", slog.String("error", err.Error()))
			conn.Release()
			conn = nil
			continue
		}

		l.dispatch(ctx, n.Payload)
	}
}

func (l *Listener) dispatch(ctx context.Context, payload string) {
	var n feed.Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		l.log.WarnContext(ctx, "malformed notification payload", slog.String("error", err.Error()))
		return
	}

	l.mu.Lock()
	fns := make([]func(feed.Notification), 0, len(l.handlers[n.Table]))
	for _, fn := range l.handlers[n.Table] {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(n)
	}
}

// subscription deregisters one handler on Close.
type subscription struct {
	listener *Listener
	table    feed.Table
	id       int
	once     sync.Once
}

func (s *subscription) Close() {
	s.once.Do(func() {
		s.listener.mu.Lock()
		defer s.listener.mu.Unlock()
		delete(s.listener.handlers[s.table], s.id)
	})
}
