package feed

import (
	"github.com/google/uuid"

	"github.com/openama/askfeed/internal/domain"
)

// Normalize joins the cold-start batch rows into merged rows. Answers and
// follow-ups whose question is absent from the batch are skipped; they
// reappear once the question itself is visible.
func Normalize(questions []domain.Question, answers []domain.Answer, followUps []domain.FollowUp) []domain.MergedRow {
	byQuestion := make(map[uuid.UUID]int, len(questions))
	rows := make([]domain.MergedRow, len(questions))
	for i, q := range questions {
		rows[i] = domain.MergedRow{Question: q}
		byQuestion[q.ID] = i
	}

	for _, a := range answers {
		i, ok := byQuestion[a.QuestionID]
		if !ok {
			continue
		}
		answer := a
		rows[i].Answer = &answer
		rows[i].Question.Answered = true
	}

	for _, f := range followUps {
		i, ok := byQuestion[f.QuestionID]
		if !ok {
			continue
		}
		followUp := f
		rows[i].FollowUp = &followUp
	}

	return rows
}
