package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coursequiz/internal/domain"
	"coursequiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// llmEvaluator implements domain.AnswerEvaluator on top of a langchaingo model.
type llmEvaluator struct {
	llm     llms.Model
	timeout time.Duration
}

// NewLLMEvaluator creates a new instance of llmEvaluator.
func NewLLMEvaluator(llm llms.Model, timeout time.Duration) domain.AnswerEvaluator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &llmEvaluator{llm: llm, timeout: timeout}
}

// EvaluateAnswer implements domain.AnswerEvaluator. Transport failures
// are returned as errors for the caller to degrade; unusable reply
// content is degraded here to the deterministic fallback.
func (e *llmEvaluator) EvaluateAnswer(ctx context.Context, knowledgeText, question, userAnswer string) (domain.Evaluation, error) {
	l := logger.Get()

	prompt := fmt.Sprintf(`You are an expert evaluator. Given the following knowledge text, evaluate the user's answer to the question. Use ONLY the knowledge text for evaluation. Return a score from 0 (incorrect) to 1 (perfect) and a brief feedback on how the user answered and give a very small hint on the answer for the next attempt.

Knowledge Text:
%s

Question: %s
User Answer: %s
Respond in JSON: {"score": <float>, "feedback": <string>}`, knowledgeText, question, userAnswer)

	raw, err := e.callLLM(ctx, prompt)
	if err != nil {
		return domain.FallbackEvaluation(), domain.NewLLMServiceError(err)
	}

	extracted, err := extractJSONObject(raw)
	if err != nil {
		l.Warn("No JSON object in oracle evaluation reply, using fallback",
			zap.String("question", question),
			zap.String("raw_reply", raw))
		return domain.FallbackEvaluation(), nil
	}

	var result domain.Evaluation
	if err := json.Unmarshal([]byte(extracted), &result); err != nil {
		l.Warn("Failed to unmarshal oracle evaluation reply, using fallback",
			zap.Error(err),
			zap.String("extracted_json", extracted))
		return domain.FallbackEvaluation(), nil
	}

	l.Debug("Oracle evaluation parsed",
		zap.Float64("score", result.Score),
		zap.String("question", question))
	return result, nil
}

func (e *llmEvaluator) callLLM(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, e.llm, prompt, llms.WithTemperature(0.1))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}
