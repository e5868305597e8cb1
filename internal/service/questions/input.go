package questions

import (
	"strings"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
)

// SubmitQuestionInput holds the parameters for submitting a question.
type SubmitQuestionInput struct {
	AMAID      uuid.UUID
	Content    string
	AuthorName *string
}

// Validate checks all fields and collects all errors.
func (i SubmitQuestionInput) Validate() error {
	var errs []domain.FieldError

	if i.AMAID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "ama_id", Message: "required"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > MaxQuestionLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 2000 characters"})
	}

	if i.AuthorName != nil {
		name := strings.TrimSpace(*i.AuthorName)
		if len(name) > MaxAuthorNameLength {
			errs = append(errs, domain.FieldError{Field: "author_name", Message: "max 100 characters"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ToggleQuestionVoteInput holds the parameters for toggling a question vote.
type ToggleQuestionVoteInput struct {
	QuestionID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ToggleQuestionVoteInput) Validate() error {
	if i.QuestionID == uuid.Nil {
		return domain.NewValidationError("question_id", "required")
	}
	return nil
}

// ToggleAnswerVoteInput holds the parameters for toggling an answer vote.
type ToggleAnswerVoteInput struct {
	AnswerID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ToggleAnswerVoteInput) Validate() error {
	if i.AnswerID == uuid.Nil {
		return domain.NewValidationError("answer_id", "required")
	}
	return nil
}

// SubmitFollowUpInput holds the parameters for submitting a follow-up.
type SubmitFollowUpInput struct {
	QuestionID uuid.UUID
	Content    string
}

// Validate checks all fields and collects all errors.
func (i SubmitFollowUpInput) Validate() error {
	var errs []domain.FieldError

	if i.QuestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "question_id", Message: "required"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > MaxFollowUpLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
