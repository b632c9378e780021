package domain

import (
	"context"
	"time"
)

const (
	// MaxAttempts caps begin-to-finalize cycles per (username, course) pair.
	MaxAttempts = 3

	// QuestionsPerQuiz is the number of questions assigned to one attempt.
	QuestionsPerQuiz = 5
)

// Question is one quiz question assigned to a session.
type Question struct {
	Text string `json:"q"`
}

// EvaluatedAnswer is one graded answer within a finalized session.
type EvaluatedAnswer struct {
	Index    int     `json:"index"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// QuizSession tracks one user's attempt sequence on one course. Exactly
// one record exists per (username, course) pair; the first begin request
// creates it and every later request mutates it.
type QuizSession struct {
	ID                string
	Username          string
	CourseID          string
	FullName          string
	Taken             bool
	TakenCount        int
	StartTime         time.Time
	EndTime           *time.Time
	Questions         []Question
	Answers           []EvaluatedAnswer
	Score             *float64
	Total             int
	FallbackQuestions bool
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewQuizSession creates the first attempt for a (username, course) pair.
func NewQuizSession(username, fullName, courseID string, questions []Question, fromFallback bool) *QuizSession {
	now := time.Now().UTC()
	return &QuizSession{
		Username:          username,
		CourseID:          courseID,
		FullName:          fullName,
		Taken:             false,
		TakenCount:        0,
		StartTime:         now,
		Questions:         questions,
		Answers:           []EvaluatedAnswer{},
		Total:             len(questions),
		FallbackQuestions: fromFallback,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// AtAttemptLimit reports whether the attempt cap has been reached. Once
// true, no further question assignment is permitted for this pair.
func (s *QuizSession) AtAttemptLimit() bool {
	return s.TakenCount >= MaxAttempts
}

// InProgress reports whether questions are assigned but not yet finalized.
func (s *QuizSession) InProgress() bool {
	return !s.Taken
}

// Reset re-arms a completed session for a new attempt: fresh questions,
// cleared answers and score, bumped attempt count.
func (s *QuizSession) Reset(questions []Question, fromFallback bool) error {
	if s.AtAttemptLimit() {
		return NewInvalidInputError("max attempts reached")
	}
	now := time.Now().UTC()
	s.Questions = questions
	s.Answers = []EvaluatedAnswer{}
	s.Score = nil
	s.Taken = false
	s.EndTime = nil
	s.StartTime = now
	s.TakenCount++
	s.Total = len(questions)
	s.FallbackQuestions = fromFallback
	s.UpdatedAt = now
	return nil
}

// ReplaceQuestions swaps the in-progress question set, used when a
// fallback-generated set is re-rolled after generation recovers.
func (s *QuizSession) ReplaceQuestions(questions []Question, fromFallback bool) {
	s.Questions = questions
	s.Total = len(questions)
	s.FallbackQuestions = fromFallback
	s.UpdatedAt = time.Now().UTC()
}

// Finalize records the evaluated answers and the summed score, moving
// the session to its terminal state for this attempt. Finalizing an
// already completed session is rejected rather than re-evaluated.
func (s *QuizSession) Finalize(answers []EvaluatedAnswer) error {
	if s.Taken {
		return NewAlreadyFinalizedError()
	}
	var sum float64
	for _, a := range answers {
		sum += a.Score
	}
	now := time.Now().UTC()
	s.Answers = answers
	s.Score = &sum
	s.Taken = true
	s.EndTime = &now
	s.UpdatedAt = now
	return nil
}

// FinalScore returns the summed score, zero when not yet finalized.
func (s *QuizSession) FinalScore() float64 {
	if s.Score == nil {
		return 0
	}
	return *s.Score
}

// SessionRepository defines persistence operations for quiz sessions.
// Get returns (nil, nil) when no session exists for the pair. Update is
// an optimistic conditional write keyed on Version; a lost race returns
// a SESSION_CONFLICT domain error.
type SessionRepository interface {
	Get(ctx context.Context, username, courseID string) (*QuizSession, error)
	Create(ctx context.Context, session *QuizSession) error
	Update(ctx context.Context, session *QuizSession) error
}
