package validation

import (
	"regexp"
	"strings"

	"coursequiz/internal/domain"
	"coursequiz/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

var validCourseID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateCourseID checks the course identifier shape: alphanumeric,
// hyphens and underscores, 1-50 characters.
func (v *Validator) ValidateCourseID(courseID string) error {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return domain.NewInvalidInputError("course id is required")
	}
	if len(courseID) > 50 || !validCourseID.MatchString(courseID) {
		return domain.NewInvalidInputError("course id has an invalid format")
	}
	return nil
}

// ValidateBeginSessionRequest checks the begin/resume request body.
func (v *Validator) ValidateBeginSessionRequest(req *dto.BeginSessionRequest) error {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.FullName) == "" {
		return domain.NewInvalidInputError("username and full_name required")
	}
	if len(req.Username) > 100 {
		return domain.NewInvalidInputError("username is too long")
	}
	return nil
}

// ValidateFinalizeRequest checks the finalize request body.
func (v *Validator) ValidateFinalizeRequest(req *dto.FinalizeRequest) error {
	if strings.TrimSpace(req.Username) == "" || len(req.Answers) == 0 {
		return domain.NewInvalidInputError("username and answers required")
	}
	for _, a := range req.Answers {
		if a.Index < 0 {
			return domain.NewInvalidInputError("answer index must not be negative")
		}
		if strings.TrimSpace(a.Question) == "" {
			return domain.NewInvalidInputError("answer question is required")
		}
	}
	return nil
}

// ValidateCourseRequest checks an admin course create/update body.
func (v *Validator) ValidateCourseRequest(req *dto.CourseRequest) error {
	if err := v.ValidateCourseID(req.ID); err != nil {
		return err
	}
	if strings.TrimSpace(req.Title) == "" {
		return domain.NewInvalidInputError("title is required")
	}
	return nil
}
