package ama

import (
	"strings"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
)

// CreateInput holds the parameters for creating an AMA event.
type CreateInput struct {
	Title          string
	Description    *string
	AllowAnonymous bool
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > MaxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}

	if i.Description != nil {
		desc := strings.TrimSpace(*i.Description)
		if len(desc) > MaxDescriptionLength {
			errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AnswerQuestionInput holds the parameters for answering a question.
type AnswerQuestionInput struct {
	QuestionID uuid.UUID
	Content    string
}

// Validate checks all fields and collects all errors.
func (i AnswerQuestionInput) Validate() error {
	var errs []domain.FieldError

	if i.QuestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "question_id", Message: "required"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > MaxAnswerLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 5000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
