package domain

import "context"

// FallbackFeedback is the deterministic feedback substituted when the
// oracle is unavailable or returns unusable output.
const FallbackFeedback = "Could not evaluate answer."

// Evaluation is the oracle's verdict on one free-text answer.
type Evaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// FallbackEvaluation returns the deterministic degraded verdict.
func FallbackEvaluation() Evaluation {
	return Evaluation{Score: 0, Feedback: FallbackFeedback}
}

// AnswerEvaluator grades a free-text answer against a knowledge text.
// Implementations degrade unusable oracle output to FallbackEvaluation
// themselves; a returned error means the oracle call itself failed.
type AnswerEvaluator interface {
	EvaluateAnswer(ctx context.Context, knowledgeText, question, userAnswer string) (Evaluation, error)
}

// QuestionGenerator synthesizes up to n quiz questions from a knowledge
// text. Implementations return between 1 and n questions on success.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, knowledgeText string, n int) ([]string, error)
}
