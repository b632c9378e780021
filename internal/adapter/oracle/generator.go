package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"coursequiz/internal/domain"
	"coursequiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// llmQuestionGenerator implements domain.QuestionGenerator on top of a
// langchaingo model.
type llmQuestionGenerator struct {
	llm     llms.Model
	timeout time.Duration
}

// NewLLMQuestionGenerator creates a new instance of llmQuestionGenerator.
func NewLLMQuestionGenerator(llm llms.Model, timeout time.Duration) domain.QuestionGenerator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &llmQuestionGenerator{llm: llm, timeout: timeout}
}

// GenerateQuestions implements domain.QuestionGenerator. Between 1 and n
// usable questions are returned; anything less is an error so the caller
// can fall back.
func (g *llmQuestionGenerator) GenerateQuestions(ctx context.Context, knowledgeText string, n int) ([]string, error) {
	l := logger.Get()

	prompt := fmt.Sprintf(`You are an expert quiz author. Based ONLY on the following knowledge text, write exactly %d open-ended quiz questions that test understanding of the material. Each question must be answerable from the knowledge text alone.

Knowledge Text:
%s

Respond with ONLY a JSON array of %d question strings, for example:
["First question?", "Second question?"]`, n, knowledgeText, n)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.3))
	if err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("question generation call failed: %w", err))
	}

	extracted, err := extractJSONArray(raw)
	if err != nil {
		l.Warn("No JSON array in oracle generation reply",
			zap.String("raw_reply", raw))
		return nil, domain.NewLLMServiceError(err)
	}

	var questions []string
	if err := json.Unmarshal([]byte(extracted), &questions); err != nil {
		l.Warn("Failed to unmarshal oracle generation reply",
			zap.Error(err),
			zap.String("extracted_json", extracted))
		return nil, domain.NewLLMServiceError(err)
	}

	usable := questions[:0]
	for _, q := range questions {
		if strings.TrimSpace(q) != "" {
			usable = append(usable, strings.TrimSpace(q))
		}
	}
	if len(usable) == 0 {
		return nil, domain.NewLLMServiceError(fmt.Errorf("oracle returned no usable questions"))
	}
	if len(usable) > n {
		usable = usable[:n]
	}

	l.Info("Oracle generated questions", zap.Int("count", len(usable)))
	return usable, nil
}
