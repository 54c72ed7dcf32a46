package interview

import (
	"context"

	"intervista/internal/ai"
	"intervista/internal/errors"
	"intervista/internal/extract"
	"intervista/internal/types"
)

// Section labels the analysis prompt instructs the model to emit. The
// extractor matches them case-insensitively, so drifted capitalization
// in model output still parses.
const (
	labelTechnical     = "Technical knowledge assessment"
	labelCommunication = "Communication skills"
	labelCulturalFit   = "Cultural fit indication"
	labelStrengths     = "Key strengths demonstrated"
	labelImprovements  = "Areas for improvement"
	labelOverall       = "Overall assessment"
)

// Analyzer turns a candidate's answer into a structured evaluation.
type Analyzer struct {
	provider ai.AIProvider
	logger   *errors.Logger
}

// NewAnalyzer creates an analyzer backed by the given model provider.
func NewAnalyzer(provider ai.AIProvider, logger *errors.Logger) *Analyzer {
	return &Analyzer{
		provider: provider,
		logger:   logger,
	}
}

// Analyze submits the candidate's answer for assessment and parses the
// model's labeled output into an Evaluation. Parsing never fails: a
// section the model omitted or mangled falls back to its zero value,
// and a missing recommendation falls back to Consider. Only a model
// failure surfaces as an error.
func (a *Analyzer) Analyze(ctx context.Context, input types.AnalyzeResponseInput) (types.Evaluation, error) {
	text, usage, err := a.provider.AnalyzeResponse(ctx, input)
	if err != nil {
		return types.Evaluation{}, err
	}

	eval := types.Evaluation{
		TechnicalScore:      extract.Score(text, labelTechnical),
		CommunicationScore:  extract.Score(text, labelCommunication),
		CulturalFitScore:    extract.Score(text, labelCulturalFit),
		Strengths:           extract.List(text, labelStrengths),
		AreasForImprovement: extract.List(text, labelImprovements),
		OverallAssessment:   extract.Section(text, labelOverall),
		Recommendation:      extract.Recommendation(text),
	}

	if eval.TechnicalScore == 0 && eval.CommunicationScore == 0 && eval.CulturalFitScore == 0 {
		a.logger.Warn("Model output yielded no scores, evaluation defaulted",
			"output_length", len(text))
	}

	logArgs := []any{
		"technical_score", eval.TechnicalScore,
		"communication_score", eval.CommunicationScore,
		"cultural_fit_score", eval.CulturalFitScore,
		"recommendation", eval.Recommendation,
	}
	if usage != nil {
		logArgs = append(logArgs, "total_tokens", usage.TotalTokens)
	}
	a.logger.Debug("Response analysis completed", logArgs...)

	return eval, nil
}
