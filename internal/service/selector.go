package service

import (
	"context"
	"math/rand"

	"coursequiz/internal/domain"
	"coursequiz/internal/logger"

	"go.uber.org/zap"
)

// genericFallbackQuestions is handed out when a course has no question
// bank and generation is unavailable. Sessions built from it carry an
// explicit flag so a later attempt can swap in real questions.
var genericFallbackQuestions = []string{
	"What are the main concepts covered in this course?",
	"Explain the most important principle of this subject in your own words.",
	"Describe a practical application of what this course teaches.",
	"What problem does this subject area try to solve?",
	"Summarize what you have learned about this topic so far.",
}

// QuestionSelector picks the question set for a quiz attempt: the
// course's own bank when it has one, then AI generation, then the
// generic fallback list.
type QuestionSelector interface {
	Select(ctx context.Context, course *domain.Course, n int) (questions []domain.Question, fromFallback bool)
}

type questionSelector struct {
	generator domain.QuestionGenerator
}

// NewQuestionSelector creates a new instance of questionSelector.
// generator may be nil when no oracle backend is configured.
func NewQuestionSelector(generator domain.QuestionGenerator) QuestionSelector {
	return &questionSelector{generator: generator}
}

// Select implements QuestionSelector. It never fails: when both the
// bank and generation come up empty the generic list is returned with
// fromFallback set.
func (s *questionSelector) Select(ctx context.Context, course *domain.Course, n int) ([]domain.Question, bool) {
	if course.HasQuestionBank() {
		return sampleQuestions(course.Questions, n), false
	}

	if s.generator != nil && course.KnowledgeText != "" {
		generated, err := s.generator.GenerateQuestions(ctx, course.KnowledgeText, n)
		if err == nil && len(generated) > 0 {
			return wrapQuestions(generated), false
		}
		logger.Get().Warn("Question generation failed, using generic fallback",
			zap.String("course_id", course.ID),
			zap.Error(err))
	}

	return wrapQuestions(genericFallbackQuestions), true
}

// sampleQuestions draws min(n, len(bank)) distinct questions uniformly.
func sampleQuestions(bank []string, n int) []domain.Question {
	if n > len(bank) {
		n = len(bank)
	}
	perm := rand.Perm(len(bank))
	picked := make([]domain.Question, 0, n)
	for _, i := range perm[:n] {
		picked = append(picked, domain.Question{Text: bank[i]})
	}
	return picked
}

func wrapQuestions(texts []string) []domain.Question {
	questions := make([]domain.Question, 0, len(texts))
	for _, t := range texts {
		questions = append(questions, domain.Question{Text: t})
	}
	return questions
}
