package domain

import (
	"context"
	"strings"
	"time"
)

// Course represents a named topic with a pre-authored question bank and
// a knowledge text used for AI grading and question generation.
// Identifiers are lowercase and unique.
type Course struct {
	ID            string
	Title         string
	Description   string
	Questions     []string
	KnowledgeText string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCourse creates a new Course instance with a normalized identifier.
func NewCourse(id, title, description string, questions []string, knowledgeText string) *Course {
	now := time.Now()
	return &Course{
		ID:            NormalizeCourseID(id),
		Title:         title,
		Description:   description,
		Questions:     questions,
		KnowledgeText: knowledgeText,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NormalizeCourseID lowercases and trims a course identifier.
func NormalizeCourseID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Validate validates the course
func (c *Course) Validate() error {
	if c.ID == "" {
		return NewInvalidInputError("course id is required")
	}
	if c.Title == "" {
		return NewInvalidInputError("title is required")
	}
	return nil
}

// HasQuestionBank reports whether the course carries pre-authored questions.
func (c *Course) HasQuestionBank() bool {
	return len(c.Questions) > 0
}

// CourseRepository defines persistence operations for courses.
// GetByID returns (nil, nil) when no course exists for the identifier;
// a malformed stored record is an error.
type CourseRepository interface {
	GetByID(ctx context.Context, id string) (*Course, error)
	List(ctx context.Context) ([]*Course, error)
	Create(ctx context.Context, course *Course) error
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id string) error
}
