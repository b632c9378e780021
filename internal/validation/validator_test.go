package validation

import (
	"strings"
	"testing"

	"coursequiz/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateCourseID(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateCourseID("ml101"))
	assert.NoError(t, v.ValidateCourseID("go_basics-2"))
	assert.Error(t, v.ValidateCourseID(""))
	assert.Error(t, v.ValidateCourseID("  "))
	assert.Error(t, v.ValidateCourseID("bad id!"))
	assert.Error(t, v.ValidateCourseID("a/b"))
	assert.Error(t, v.ValidateCourseID(strings.Repeat("x", 51)))
}

func TestValidateBeginSessionRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateBeginSessionRequest(&dto.BeginSessionRequest{
		Username: "alice", FullName: "Alice Kim",
	}))

	err := v.ValidateBeginSessionRequest(&dto.BeginSessionRequest{Username: "alice"})
	assert.EqualError(t, err, "username and full_name required")

	err = v.ValidateBeginSessionRequest(&dto.BeginSessionRequest{FullName: "Alice Kim"})
	assert.Error(t, err)
}

func TestValidateFinalizeRequest(t *testing.T) {
	v := NewValidator()

	valid := &dto.FinalizeRequest{
		Username: "alice",
		Answers:  []dto.SubmittedAnswer{{Index: 0, Question: "q", Answer: "a"}},
	}
	assert.NoError(t, v.ValidateFinalizeRequest(valid))

	err := v.ValidateFinalizeRequest(&dto.FinalizeRequest{Username: "alice"})
	assert.EqualError(t, err, "username and answers required")

	err = v.ValidateFinalizeRequest(&dto.FinalizeRequest{
		Username: "alice",
		Answers:  []dto.SubmittedAnswer{{Index: -1, Question: "q"}},
	})
	assert.Error(t, err)
}

func TestValidateCourseRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateCourseRequest(&dto.CourseRequest{ID: "go101", Title: "Go Basics"}))
	assert.Error(t, v.ValidateCourseRequest(&dto.CourseRequest{Title: "Go Basics"}))
	assert.Error(t, v.ValidateCourseRequest(&dto.CourseRequest{ID: "go101"}))
}
