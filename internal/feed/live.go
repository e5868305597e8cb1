package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openama/askfeed/internal/domain"
)

const incomingBuffer = 256

// Live is the running view of one AMA: it performs the cold-start load,
// subscribes to the five change tables, and serializes every notification
// into a single apply loop over the merger.
//
// Vote notifications do not carry counts; they trigger an authoritative
// refetch that runs off the loop and re-enters it as a *VotesFetched
// event tagged with a per-row generation, so a stale fetch result can
// never overwrite a newer one.
type Live struct {
	log    *slog.Logger
	amaID  uuid.UUID
	src    Source
	merger *Merger

	refetchTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	incoming  chan Notification
	fetched   chan Event
	snapshots chan []domain.MergedRow

	subs []Subscription

	// Touched only by the apply loop.
	qGen map[uuid.UUID]uint64
	aGen map[uuid.UUID]uint64
}

// Open loads the AMA's current state, subscribes to all five change
// tables, and starts the apply loop. Close tears everything down.
func Open(ctx context.Context, log *slog.Logger, src Source, sub Subscriber, amaID uuid.UUID, refetchTimeout time.Duration) (*Live, error) {
	questions, err := src.Questions(ctx, amaID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	answers, err := src.Answers(ctx, amaID)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	followUps, err := src.FollowUps(ctx, amaID)
	if err != nil {
		return nil, fmt.Errorf("load follow-ups: %w", err)
	}

	log = log.With("component", "live", "ama_id", amaID.String())

	runCtx, cancel := context.WithCancel(ctx)
	l := &Live{
		log:            log,
		amaID:          amaID,
		src:            src,
		merger:         NewMerger(log, Normalize(questions, answers, followUps)),
		refetchTimeout: refetchTimeout,
		ctx:            runCtx,
		cancel:         cancel,
		incoming:       make(chan Notification, incomingBuffer),
		fetched:        make(chan Event, incomingBuffer),
		snapshots:      make(chan []domain.MergedRow, 1),
		qGen:           map[uuid.UUID]uint64{},
		aGen:           map[uuid.UUID]uint64{},
	}

	for _, table := range Tables {
		s, err := sub.Subscribe(table, l.enqueue)
		if err != nil {
			l.Close()
			return nil, fmt.Errorf("subscribe %s: %w", table, err)
		}
		l.subs = append(l.subs, s)
	}

	l.wg.Add(1)
	go l.run()

	l.publish()
	return l, nil
}

// Close tears down all subscriptions, stops the apply loop, and cancels
// in-flight refetches. Results arriving after Close are discarded.
func (l *Live) Close() {
	l.once.Do(func() {
		l.cancel()
		for _, s := range l.subs {
			s.Close()
		}
		l.wg.Wait()
	})
}

// Rows returns the current collection ranked for display.
func (l *Live) Rows(mode domain.SortMode) []domain.MergedRow {
	return domain.Rank(l.merger.Snapshot(), mode)
}

// Row returns the merged row for one question.
func (l *Live) Row(questionID uuid.UUID) (domain.MergedRow, bool) {
	return l.merger.Row(questionID)
}

// QuestionIDForAnswer resolves an answer ID to its owning question.
func (l *Live) QuestionIDForAnswer(answerID uuid.UUID) (uuid.UUID, bool) {
	return l.merger.QuestionIDForAnswer(answerID)
}

// Snapshots delivers the latest collection after each applied change.
// The channel holds only the newest snapshot; slow consumers see the
// most recent state, not every intermediate one.
func (l *Live) Snapshots() <-chan []domain.MergedRow {
	return l.snapshots
}

func (l *Live) enqueue(n Notification) {
	select {
	case l.incoming <- n:
	case <-l.ctx.Done():
	}
}

func (l *Live) run() {
	defer l.wg.Done()

	for {
		select {
		case <-l.ctx.Done():
			return
		case n := <-l.incoming:
			l.handle(n)
		case ev := <-l.fetched:
			if l.merger.Apply(ev) {
				l.publish()
			}
		}
	}
}

func (l *Live) handle(n Notification) {
	var (
		ev      Event
		changed bool
	)

	switch n.Table {
	case TableQuestions:
		ev = l.questionEvent(n)
	case TableAnswers:
		ev = l.answerEvent(n)
	case TableVotes:
		l.voteChanged(n)
	case TableAnswerVotes:
		l.answerVoteChanged(n)
	case TableFollowUps:
		ev = l.followUpEvent(n)
	default:
		l.log.Warn("notification for unknown table", slog.String("table", string(n.Table)))
	}

	if ev != nil {
		changed = l.merger.Apply(ev)
	}
	if changed {
		l.publish()
	}
}

func (l *Live) questionEvent(n Notification) Event {
	switch n.Op {
	case OpInsert:
		p, err := decodePayload[questionPayload](n.New, "question insert")
		if err != nil {
			l.log.Warn("bad notification", slog.Any("error", err))
			return nil
		}
		if p.AMAID != l.amaID {
			return nil
		}
		// The base-table payload has no vote count; read the view row so
		// a reconnect-replayed insert lands with its authoritative count.
		q := l.fetchQuestionRow(p)
		return QuestionInserted{Question: q}

	case OpUpdate:
		p, err := decodePayload[questionPayload](n.New, "question update")
		if err != nil {
			l.log.Warn("bad notification", slog.Any("error", err))
			return nil
		}
		if p.AMAID != l.amaID {
			return nil
		}
		return QuestionUpdated{Question: p.toDomain()}

	case OpDelete:
		p, err := decodePayload[questionPayload](n.Old, "question delete")
		if err != nil {
			l.log.Warn("bad notification", slog.Any("error", err))
			return nil
		}
		return QuestionDeleted{ID: p.ID}
	}
	return nil
}

func (l *Live) fetchQuestionRow(p questionPayload) domain.Question {
	ctx, cancel := context.WithTimeout(l.ctx, l.refetchTimeout)
	defer cancel()

	q, err := l.src.Question(ctx, p.ID)
	if err != nil {
		l.log.Warn("question refetch failed, using event payload",
			slog.String("question_id", p.ID.String()), slog.Any("error", err))
		return p.toDomain()
	}
	return *q
}

func (l *Live) answerEvent(n Notification) Event {
	if n.Op != OpInsert {
		// Answers are immutable after creation; only inserts matter.
		return nil
	}

	p, err := decodePayload[answerPayload](n.New, "answer insert")
	if err != nil {
		l.log.Warn("bad notification", slog.Any("error", err))
		return nil
	}
	if _, ok := l.merger.Row(p.QuestionID); !ok {
		// Not our AMA, or a race against the question insert; the merger
		// would drop it anyway, skip the refetch.
		return AnswerInserted{Answer: p.toDomain()}
	}

	ctx, cancel := context.WithTimeout(l.ctx, l.refetchTimeout)
	defer cancel()

	a, err := l.src.Answer(ctx, p.ID)
	if err != nil {
		l.log.Warn("answer refetch failed, using event payload",
			slog.String("answer_id", p.ID.String()), slog.Any("error", err))
		return AnswerInserted{Answer: p.toDomain()}
	}
	return AnswerInserted{Answer: *a}
}

func (l *Live) followUpEvent(n Notification) Event {
	if n.Op != OpInsert {
		return nil
	}
	p, err := decodePayload[followUpPayload](n.New, "follow-up insert")
	if err != nil {
		l.log.Warn("bad notification", slog.Any("error", err))
		return nil
	}
	return FollowUpInserted{FollowUp: p.toDomain()}
}

func (l *Live) voteChanged(n Notification) {
	p, err := decodePayload[votePayload](rowPayload(n), "vote change")
	if err != nil {
		l.log.Warn("bad notification", slog.Any("error", err))
		return
	}

	l.qGen[p.QuestionID]++
	gen := l.qGen[p.QuestionID]

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ctx, cancel := context.WithTimeout(l.ctx, l.refetchTimeout)
		defer cancel()

		count, err := l.src.QuestionVoteCount(ctx, p.QuestionID)
		if err != nil {
			l.log.Debug("question vote refetch failed",
				slog.String("question_id", p.QuestionID.String()), slog.Any("error", err))
			return
		}

		select {
		case l.fetched <- QuestionVotesFetched{QuestionID: p.QuestionID, Count: count, Gen: gen}:
		case <-l.ctx.Done():
		}
	}()
}

func (l *Live) answerVoteChanged(n Notification) {
	p, err := decodePayload[answerVotePayload](rowPayload(n), "answer vote change")
	if err != nil {
		l.log.Warn("bad notification", slog.Any("error", err))
		return
	}

	l.aGen[p.AnswerID]++
	gen := l.aGen[p.AnswerID]

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ctx, cancel := context.WithTimeout(l.ctx, l.refetchTimeout)
		defer cancel()

		count, err := l.src.AnswerVoteCount(ctx, p.AnswerID)
		if err != nil {
			l.log.Debug("answer vote refetch failed",
				slog.String("answer_id", p.AnswerID.String()), slog.Any("error", err))
			return
		}

		select {
		case l.fetched <- AnswerVotesFetched{AnswerID: p.AnswerID, Count: count, Gen: gen}:
		case <-l.ctx.Done():
		}
	}()
}

func (l *Live) publish() {
	snap := l.merger.Snapshot()
	for {
		select {
		case l.snapshots <- snap:
			return
		default:
			// Drop the stale snapshot so the latest one always fits.
			select {
			case <-l.snapshots:
			default:
			}
		}
	}
}
