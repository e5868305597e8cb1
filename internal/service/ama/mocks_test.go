package ama

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
)

var _ amaRepo = &amaRepoMock{}

type amaRepoMock struct {
	CreateFunc            func(ctx context.Context, ama *domain.AMA) (*domain.AMA, error)
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.AMA, error)
	GetBySlugFunc         func(ctx context.Context, slug string) (*domain.AMA, error)
	SetActiveFunc         func(ctx context.Context, id uuid.UUID, active bool) error
	SetAllowAnonymousFunc func(ctx context.Context, id uuid.UUID, allow bool) error

	calls struct {
		Create []struct {
			AMA *domain.AMA
		}
		GetByID []struct {
			ID uuid.UUID
		}
		GetBySlug []struct {
			Slug string
		}
		SetActive []struct {
			ID     uuid.UUID
			Active bool
		}
		SetAllowAnonymous []struct {
			ID    uuid.UUID
			Allow bool
		}
	}
	lockCreate            sync.RWMutex
	lockGetByID           sync.RWMutex
	lockGetBySlug         sync.RWMutex
	lockSetActive         sync.RWMutex
	lockSetAllowAnonymous sync.RWMutex
}

func (mock *amaRepoMock) Create(ctx context.Context, ama *domain.AMA) (*domain.AMA, error) {
	if mock.CreateFunc == nil {
		panic("amaRepoMock.CreateFunc: method is nil but amaRepo.Create was just called")
	}
	callInfo := struct{ AMA *domain.AMA }{AMA: ama}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, ama)
}

func (mock *amaRepoMock) CreateCalls() []struct {
	AMA *domain.AMA
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *amaRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.AMA, error) {
	if mock.GetByIDFunc == nil {
		panic("amaRepoMock.GetByIDFunc: method is nil but amaRepo.GetByID was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *amaRepoMock) GetBySlug(ctx context.Context, slug string) (*domain.AMA, error) {
	if mock.GetBySlugFunc == nil {
		panic("amaRepoMock.GetBySlugFunc: method is nil but amaRepo.GetBySlug was just called")
	}
	callInfo := struct{ Slug string }{Slug: slug}
	mock.lockGetBySlug.Lock()
	mock.calls.GetBySlug = append(mock.calls.GetBySlug, callInfo)
	mock.lockGetBySlug.Unlock()
	return mock.GetBySlugFunc(ctx, slug)
}

func (mock *amaRepoMock) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if mock.SetActiveFunc == nil {
		panic("amaRepoMock.SetActiveFunc: method is nil but amaRepo.SetActive was just called")
	}
	callInfo := struct {
		ID     uuid.UUID
		Active bool
	}{ID: id, Active: active}
	mock.lockSetActive.Lock()
	mock.calls.SetActive = append(mock.calls.SetActive, callInfo)
	mock.lockSetActive.Unlock()
	return mock.SetActiveFunc(ctx, id, active)
}

func (mock *amaRepoMock) SetActiveCalls() []struct {
	ID     uuid.UUID
	Active bool
} {
	mock.lockSetActive.RLock()
	calls := mock.calls.SetActive
	mock.lockSetActive.RUnlock()
	return calls
}

func (mock *amaRepoMock) SetAllowAnonymous(ctx context.Context, id uuid.UUID, allow bool) error {
	if mock.SetAllowAnonymousFunc == nil {
		panic("amaRepoMock.SetAllowAnonymousFunc: method is nil but amaRepo.SetAllowAnonymous was just called")
	}
	callInfo := struct {
		ID    uuid.UUID
		Allow bool
	}{ID: id, Allow: allow}
	mock.lockSetAllowAnonymous.Lock()
	mock.calls.SetAllowAnonymous = append(mock.calls.SetAllowAnonymous, callInfo)
	mock.lockSetAllowAnonymous.Unlock()
	return mock.SetAllowAnonymousFunc(ctx, id, allow)
}

var _ questionRepo = &questionRepoMock{}

type questionRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	SetAnsweredFunc func(ctx context.Context, id uuid.UUID, answered bool) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
		SetAnswered []struct {
			ID       uuid.UUID
			Answered bool
		}
		Delete []struct {
			ID uuid.UUID
		}
	}
	lockGetByID     sync.RWMutex
	lockSetAnswered sync.RWMutex
	lockDelete      sync.RWMutex
}

func (mock *questionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	if mock.GetByIDFunc == nil {
		panic("questionRepoMock.GetByIDFunc: method is nil but questionRepo.GetByID was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *questionRepoMock) SetAnswered(ctx context.Context, id uuid.UUID, answered bool) error {
	if mock.SetAnsweredFunc == nil {
		panic("questionRepoMock.SetAnsweredFunc: method is nil but questionRepo.SetAnswered was just called")
	}
	callInfo := struct {
		ID       uuid.UUID
		Answered bool
	}{ID: id, Answered: answered}
	mock.lockSetAnswered.Lock()
	mock.calls.SetAnswered = append(mock.calls.SetAnswered, callInfo)
	mock.lockSetAnswered.Unlock()
	return mock.SetAnsweredFunc(ctx, id, answered)
}

func (mock *questionRepoMock) SetAnsweredCalls() []struct {
	ID       uuid.UUID
	Answered bool
} {
	mock.lockSetAnswered.RLock()
	calls := mock.calls.SetAnswered
	mock.lockSetAnswered.RUnlock()
	return calls
}

func (mock *questionRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("questionRepoMock.DeleteFunc: method is nil but questionRepo.Delete was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *questionRepoMock) DeleteCalls() []struct {
	ID uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

var _ answerRepo = &answerRepoMock{}

type answerRepoMock struct {
	CreateFunc func(ctx context.Context, answer *domain.Answer) (*domain.Answer, error)

	calls struct {
		Create []struct {
			Answer *domain.Answer
		}
	}
	lockCreate sync.RWMutex
}

func (mock *answerRepoMock) Create(ctx context.Context, answer *domain.Answer) (*domain.Answer, error) {
	if mock.CreateFunc == nil {
		panic("answerRepoMock.CreateFunc: method is nil but answerRepo.Create was just called")
	}
	callInfo := struct{ Answer *domain.Answer }{Answer: answer}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, answer)
}

func (mock *answerRepoMock) CreateCalls() []struct {
	Answer *domain.Answer
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the callback inline without a real transaction.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc != nil {
		return mock.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}
