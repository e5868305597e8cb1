package questions

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
)

var _ amaReader = &amaReaderMock{}

type amaReaderMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.AMA, error)

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *amaReaderMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.AMA, error) {
	if mock.GetByIDFunc == nil {
		panic("amaReaderMock.GetByIDFunc: method is nil but amaReader.GetByID was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *amaReaderMock) GetByIDCalls() []struct {
	ID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

var _ questionRepo = &questionRepoMock{}

type questionRepoMock struct {
	CreateFunc func(ctx context.Context, question *domain.Question) (*domain.Question, error)

	calls struct {
		Create []struct {
			Question *domain.Question
		}
	}
	lockCreate sync.RWMutex
}

func (mock *questionRepoMock) Create(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	if mock.CreateFunc == nil {
		panic("questionRepoMock.CreateFunc: method is nil but questionRepo.Create was just called")
	}
	callInfo := struct{ Question *domain.Question }{Question: question}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, question)
}

func (mock *questionRepoMock) CreateCalls() []struct {
	Question *domain.Question
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

var _ followUpRepo = &followUpRepoMock{}

type followUpRepoMock struct {
	CreateFunc func(ctx context.Context, followUp *domain.FollowUp) (*domain.FollowUp, error)

	calls struct {
		Create []struct {
			FollowUp *domain.FollowUp
		}
	}
	lockCreate sync.RWMutex
}

func (mock *followUpRepoMock) Create(ctx context.Context, followUp *domain.FollowUp) (*domain.FollowUp, error) {
	if mock.CreateFunc == nil {
		panic("followUpRepoMock.CreateFunc: method is nil but followUpRepo.Create was just called")
	}
	callInfo := struct{ FollowUp *domain.FollowUp }{FollowUp: followUp}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, followUp)
}

func (mock *followUpRepoMock) CreateCalls() []struct {
	FollowUp *domain.FollowUp
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

var _ voteRepo = &voteRepoMock{}

type voteRepoMock struct {
	InsertQuestionVoteFunc func(ctx context.Context, questionID uuid.UUID, sessionID string) error
	DeleteQuestionVoteFunc func(ctx context.Context, questionID uuid.UUID, sessionID string) error
	InsertAnswerVoteFunc   func(ctx context.Context, answerID uuid.UUID, sessionID string) error
	DeleteAnswerVoteFunc   func(ctx context.Context, answerID uuid.UUID, sessionID string) error

	calls struct {
		InsertQuestionVote []struct {
			QuestionID uuid.UUID
			SessionID  string
		}
		DeleteQuestionVote []struct {
			QuestionID uuid.UUID
			SessionID  string
		}
		InsertAnswerVote []struct {
			AnswerID  uuid.UUID
			SessionID string
		}
		DeleteAnswerVote []struct {
			AnswerID  uuid.UUID
			SessionID string
		}
	}
	lockInsertQuestionVote sync.RWMutex
	lockDeleteQuestionVote sync.RWMutex
	lockInsertAnswerVote   sync.RWMutex
	lockDeleteAnswerVote   sync.RWMutex
}

func (mock *voteRepoMock) InsertQuestionVote(ctx context.Context, questionID uuid.UUID, sessionID string) error {
	if mock.InsertQuestionVoteFunc == nil {
		panic("voteRepoMock.InsertQuestionVoteFunc: method is nil but voteRepo.InsertQuestionVote was just called")
	}
	callInfo := struct {
		QuestionID uuid.UUID
		SessionID  string
	}{QuestionID: questionID, SessionID: sessionID}
	mock.lockInsertQuestionVote.Lock()
	mock.calls.InsertQuestionVote = append(mock.calls.InsertQuestionVote, callInfo)
	mock.lockInsertQuestionVote.Unlock()
	return mock.InsertQuestionVoteFunc(ctx, questionID, sessionID)
}

func (mock *voteRepoMock) InsertQuestionVoteCalls() []struct {
	QuestionID uuid.UUID
	SessionID  string
} {
	mock.lockInsertQuestionVote.RLock()
	calls := mock.calls.InsertQuestionVote
	mock.lockInsertQuestionVote.RUnlock()
	return calls
}

func (mock *voteRepoMock) DeleteQuestionVote(ctx context.Context, questionID uuid.UUID, sessionID string) error {
	if mock.DeleteQuestionVoteFunc == nil {
		panic("voteRepoMock.DeleteQuestionVoteFunc: method is nil but voteRepo.DeleteQuestionVote was just called")
	}
	callInfo := struct {
		QuestionID uuid.UUID
		SessionID  string
	}{QuestionID: questionID, SessionID: sessionID}
	mock.lockDeleteQuestionVote.Lock()
	mock.calls.DeleteQuestionVote = append(mock.calls.DeleteQuestionVote, callInfo)
	mock.lockDeleteQuestionVote.Unlock()
	return mock.DeleteQuestionVoteFunc(ctx, questionID, sessionID)
}

func (mock *voteRepoMock) DeleteQuestionVoteCalls() []struct {
	QuestionID uuid.UUID
	SessionID  string
} {
	mock.lockDeleteQuestionVote.RLock()
	calls := mock.calls.DeleteQuestionVote
	mock.lockDeleteQuestionVote.RUnlock()
	return calls
}

func (mock *voteRepoMock) InsertAnswerVote(ctx context.Context, answerID uuid.UUID, sessionID string) error {
	if mock.InsertAnswerVoteFunc == nil {
		panic("voteRepoMock.InsertAnswerVoteFunc: method is nil but voteRepo.InsertAnswerVote was just called")
	}
	callInfo := struct {
		AnswerID  uuid.UUID
		SessionID string
	}{AnswerID: answerID, SessionID: sessionID}
	mock.lockInsertAnswerVote.Lock()
	mock.calls.InsertAnswerVote = append(mock.calls.InsertAnswerVote, callInfo)
	mock.lockInsertAnswerVote.Unlock()
	return mock.InsertAnswerVoteFunc(ctx, answerID, sessionID)
}

func (mock *voteRepoMock) InsertAnswerVoteCalls() []struct {
	AnswerID  uuid.UUID
	SessionID string
} {
	mock.lockInsertAnswerVote.RLock()
	calls := mock.calls.InsertAnswerVote
	mock.lockInsertAnswerVote.RUnlock()
	return calls
}

func (mock *voteRepoMock) DeleteAnswerVote(ctx context.Context, answerID uuid.UUID, sessionID string) error {
	if mock.DeleteAnswerVoteFunc == nil {
		panic("voteRepoMock.DeleteAnswerVoteFunc: method is nil but voteRepo.DeleteAnswerVote was just called")
	}
	callInfo := struct {
		AnswerID  uuid.UUID
		SessionID string
	}{AnswerID: answerID, SessionID: sessionID}
	mock.lockDeleteAnswerVote.Lock()
	mock.calls.DeleteAnswerVote = append(mock.calls.DeleteAnswerVote, callInfo)
	mock.lockDeleteAnswerVote.Unlock()
	return mock.DeleteAnswerVoteFunc(ctx, answerID, sessionID)
}

func (mock *voteRepoMock) DeleteAnswerVoteCalls() []struct {
	AnswerID  uuid.UUID
	SessionID string
} {
	mock.lockDeleteAnswerVote.RLock()
	calls := mock.calls.DeleteAnswerVote
	mock.lockDeleteAnswerVote.RUnlock()
	return calls
}
