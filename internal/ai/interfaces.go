package ai

import (
	"context"

	"intervista/internal/types"
)

// AIProvider is the gateway to the language and speech models. Every
// method returns the raw model text plus token usage; callers that do
// not care about usage can ignore it.
type AIProvider interface {
	// AnalyzeResponse evaluates a candidate answer and returns the
	// model's labeled plain-text assessment.
	AnalyzeResponse(ctx context.Context, input types.AnalyzeResponseInput) (string, *TokenUsage, error)
	// GenerateQuestion produces the next interviewer question.
	GenerateQuestion(ctx context.Context, input types.GenerateQuestionInput) (string, *TokenUsage, error)
	// TranscribeAudio converts recorded speech to text.
	TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
