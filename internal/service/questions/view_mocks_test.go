package questions

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
)

var _ rowReader = &rowReaderMock{}

type rowReaderMock struct {
	RowFunc                 func(questionID uuid.UUID) (domain.MergedRow, bool)
	QuestionIDForAnswerFunc func(answerID uuid.UUID) (uuid.UUID, bool)

	calls struct {
		Row []struct {
			QuestionID uuid.UUID
		}
		QuestionIDForAnswer []struct {
			AnswerID uuid.UUID
		}
	}
	lockRow                 sync.RWMutex
	lockQuestionIDForAnswer sync.RWMutex
}

func (mock *rowReaderMock) Row(questionID uuid.UUID) (domain.MergedRow, bool) {
	if mock.RowFunc == nil {
		panic("rowReaderMock.RowFunc: method is nil but rowReader.Row was just called")
	}
	callInfo := struct{ QuestionID uuid.UUID }{QuestionID: questionID}
	mock.lockRow.Lock()
	mock.calls.Row = append(mock.calls.Row, callInfo)
	mock.lockRow.Unlock()
	return mock.RowFunc(questionID)
}

func (mock *rowReaderMock) RowCalls() []struct {
	QuestionID uuid.UUID
} {
	mock.lockRow.RLock()
	calls := mock.calls.Row
	mock.lockRow.RUnlock()
	return calls
}

func (mock *rowReaderMock) QuestionIDForAnswer(answerID uuid.UUID) (uuid.UUID, bool) {
	if mock.QuestionIDForAnswerFunc == nil {
		panic("rowReaderMock.QuestionIDForAnswerFunc: method is nil but rowReader.QuestionIDForAnswer was just called")
	}
	callInfo := struct{ AnswerID uuid.UUID }{AnswerID: answerID}
	mock.lockQuestionIDForAnswer.Lock()
	mock.calls.QuestionIDForAnswer = append(mock.calls.QuestionIDForAnswer, callInfo)
	mock.lockQuestionIDForAnswer.Unlock()
	return mock.QuestionIDForAnswerFunc(answerID)
}

func (mock *rowReaderMock) QuestionIDForAnswerCalls() []struct {
	AnswerID uuid.UUID
} {
	mock.lockQuestionIDForAnswer.RLock()
	calls := mock.calls.QuestionIDForAnswer
	mock.lockQuestionIDForAnswer.RUnlock()
	return calls
}

var _ voteLedger = &voteLedgerMock{}

type voteLedgerMock struct {
	HasVotedFunc func(kind domain.VoteKind, entityID uuid.UUID) bool
	ToggleFunc   func(ctx context.Context, kind domain.VoteKind, entityID uuid.UUID) bool

	calls struct {
		HasVoted []struct {
			Kind     domain.VoteKind
			EntityID uuid.UUID
		}
		Toggle []struct {
			Kind     domain.VoteKind
			EntityID uuid.UUID
		}
	}
	lockHasVoted sync.RWMutex
	lockToggle   sync.RWMutex
}

func (mock *voteLedgerMock) HasVoted(kind domain.VoteKind, entityID uuid.UUID) bool {
	if mock.HasVotedFunc == nil {
		panic("voteLedgerMock.HasVotedFunc: method is nil but voteLedger.HasVoted was just called")
	}
	callInfo := struct {
		Kind     domain.VoteKind
		EntityID uuid.UUID
	}{Kind: kind, EntityID: entityID}
	mock.lockHasVoted.Lock()
	mock.calls.HasVoted = append(mock.calls.HasVoted, callInfo)
	mock.lockHasVoted.Unlock()
	return mock.HasVotedFunc(kind, entityID)
}

func (mock *voteLedgerMock) HasVotedCalls() []struct {
	Kind     domain.VoteKind
	EntityID uuid.UUID
} {
	mock.lockHasVoted.RLock()
	calls := mock.calls.HasVoted
	mock.lockHasVoted.RUnlock()
	return calls
}

func (mock *voteLedgerMock) Toggle(ctx context.Context, kind domain.VoteKind, entityID uuid.UUID) bool {
	if mock.ToggleFunc == nil {
		panic("voteLedgerMock.ToggleFunc: method is nil but voteLedger.Toggle was just called")
	}
	callInfo := struct {
		Kind     domain.VoteKind
		EntityID uuid.UUID
	}{Kind: kind, EntityID: entityID}
	mock.lockToggle.Lock()
	mock.calls.Toggle = append(mock.calls.Toggle, callInfo)
	mock.lockToggle.Unlock()
	return mock.ToggleFunc(ctx, kind, entityID)
}

func (mock *voteLedgerMock) ToggleCalls() []struct {
	Kind     domain.VoteKind
	EntityID uuid.UUID
} {
	mock.lockToggle.RLock()
	calls := mock.calls.Toggle
	mock.lockToggle.RUnlock()
	return calls
}

var _ sessionStore = &sessionStoreMock{}

type sessionStoreMock struct {
	GetOrCreateFunc func(ctx context.Context) string

	calls struct {
		GetOrCreate []struct{}
	}
	lockGetOrCreate sync.RWMutex
}

func (mock *sessionStoreMock) GetOrCreate(ctx context.Context) string {
	if mock.GetOrCreateFunc == nil {
		panic("sessionStoreMock.GetOrCreateFunc: method is nil but sessionStore.GetOrCreate was just called")
	}
	mock.lockGetOrCreate.Lock()
	mock.calls.GetOrCreate = append(mock.calls.GetOrCreate, struct{}{})
	mock.lockGetOrCreate.Unlock()
	return mock.GetOrCreateFunc(ctx)
}

func (mock *sessionStoreMock) GetOrCreateCalls() []struct{} {
	mock.lockGetOrCreate.RLock()
	calls := mock.calls.GetOrCreate
	mock.lockGetOrCreate.RUnlock()
	return calls
}
