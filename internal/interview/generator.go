package interview

import (
	"context"
	"fmt"

	"intervista/internal/ai"
	"intervista/internal/errors"
	"intervista/internal/types"
)

// Generator produces interviewer questions from the session context.
type Generator struct {
	provider ai.AIProvider
	logger   *errors.Logger
}

// NewGenerator creates a generator backed by the given model provider.
func NewGenerator(provider ai.AIProvider, logger *errors.Logger) *Generator {
	return &Generator{
		provider: provider,
		logger:   logger,
	}
}

// NextQuestion asks the model for the next question given the stage and
// conversation so far. The model's text is returned verbatim; the prompt
// already instructs it to respond with the question alone.
func (g *Generator) NextQuestion(ctx context.Context, input types.GenerateQuestionInput) (string, error) {
	if !input.Stage.IsValid() {
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown interview stage: %s", input.Stage), nil)
	}

	question, usage, err := g.provider.GenerateQuestion(ctx, input)
	if err != nil {
		return "", err
	}

	logArgs := []any{
		"stage", input.Stage,
		"history_turns", len(input.History),
		"question_length", len(question),
	}
	if usage != nil {
		logArgs = append(logArgs, "total_tokens", usage.TotalTokens)
	}
	g.logger.Debug("Question generated", logArgs...)

	return question, nil
}
