package feed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openama/askfeed/internal/domain"
)

// Row payloads as the store's triggers encode them (row_to_json).

type questionPayload struct {
	ID         uuid.UUID  `json:"id"`
	AMAID      uuid.UUID  `json:"ama_id"`
	Content    string     `json:"content"`
	AuthorName *string    `json:"author_name"`
	AuthorID   *uuid.UUID `json:"author_id"`
	SessionID  *string    `json:"session_id"`
	IsAnswered bool       `json:"is_answered"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (p questionPayload) toDomain() domain.Question {
	return domain.Question{
		ID:         p.ID,
		AMAID:      p.AMAID,
		Content:    p.Content,
		AuthorName: p.AuthorName,
		AuthorID:   p.AuthorID,
		SessionID:  p.SessionID,
		Answered:   p.IsAnswered,
		CreatedAt:  p.CreatedAt,
	}
}

type answerPayload struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p answerPayload) toDomain() domain.Answer {
	return domain.Answer{
		ID:         p.ID,
		QuestionID: p.QuestionID,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
	}
}

type votePayload struct {
	QuestionID uuid.UUID `json:"question_id"`
}

type answerVotePayload struct {
	AnswerID uuid.UUID `json:"answer_id"`
}

type followUpPayload struct {
	ID         uuid.UUID  `json:"id"`
	QuestionID uuid.UUID  `json:"question_id"`
	Content    string     `json:"content"`
	AuthorID   *uuid.UUID `json:"author_id"`
	SessionID  *string    `json:"session_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (p followUpPayload) toDomain() domain.FollowUp {
	return domain.FollowUp{
		ID:         p.ID,
		QuestionID: p.QuestionID,
		Content:    p.Content,
		AuthorID:   p.AuthorID,
		SessionID:  p.SessionID,
		CreatedAt:  p.CreatedAt,
	}
}

func decodePayload[T any](raw json.RawMessage, what string) (T, error) {
	var out T
	if len(raw) == 0 {
		return out, fmt.Errorf("decode %s: empty payload", what)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", what, err)
	}
	return out, nil
}

// rowPayload returns New when present, otherwise Old. Vote notifications
// carry the affected foreign key in whichever side the operation kept.
func rowPayload(n Notification) json.RawMessage {
	if len(n.New) > 0 {
		return n.New
	}
	return n.Old
}
