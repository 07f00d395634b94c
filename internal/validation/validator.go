package validation

import (
	"regexp"
	"strings"

	"lessonforge/internal/domain"
	"lessonforge/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest validates a worksheet generation request before it
// reaches the pipeline. Semantic checks (known types, level) happen during
// the DTO to domain conversion; this covers the request surface.
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateWorksheetRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(req.SelectedTypes) == 0 {
		errors = append(errors, domain.NewMissingFieldError("selectedTypes"))
	}
	if req.QuestionCount < 1 || req.QuestionCount > 20 {
		errors = append(errors, domain.NewOutOfRangeError("questionCount", req.QuestionCount, 1, 20))
	}
	if len(req.Topic) > 200 {
		errors = append(errors, domain.NewOutOfRangeError("topic", len(req.Topic), 0, 200))
	}
	if len(req.Vocabulary) > 5000 {
		errors = append(errors, domain.NewOutOfRangeError("vocabulary", len(req.Vocabulary), 0, 5000))
	}

	return errors
}

// ValidateSubmitRequest validates a worksheet submission request.
func (v *Validator) ValidateSubmitRequest(worksheetID string, req *dto.SubmitWorksheetRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if idErrors := v.ValidateWorksheetID(worksheetID); len(idErrors) > 0 {
		errors = append(errors, idErrors...)
	}
	if strings.TrimSpace(req.StudentName) == "" {
		errors = append(errors, domain.NewMissingFieldError("studentName"))
	} else if len(req.StudentName) > 100 {
		errors = append(errors, domain.NewOutOfRangeError("studentName", len(req.StudentName), 1, 100))
	}

	return errors
}

// ValidateWorksheetID validates a worksheet id path parameter.
func (v *Validator) ValidateWorksheetID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}

// ValidatePronunciationRequest validates a pronunciation evaluation request.
func (v *Validator) ValidatePronunciationRequest(targetPhrase string, audioSize int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(targetPhrase) == "" {
		errors = append(errors, domain.NewMissingFieldError("targetPhrase"))
	}
	if audioSize == 0 {
		errors = append(errors, domain.NewMissingFieldError("audio"))
	} else if audioSize > 10*1024*1024 {
		errors = append(errors, domain.NewOutOfRangeError("audio", audioSize, 1, 10*1024*1024))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
