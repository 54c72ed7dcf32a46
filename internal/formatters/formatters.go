package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"intervista/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Evaluation", &EvaluationTextFormatter{})
	registry.RegisterFormatter("markdown", "Evaluation", &EvaluationMarkdownFormatter{})
	registry.RegisterFormatter("text", "TurnResult", &TurnResultTextFormatter{})
	registry.RegisterFormatter("markdown", "TurnResult", &TurnResultMarkdownFormatter{})
	registry.RegisterFormatter("text", "Transcription", &TranscriptionTextFormatter{})
	registry.RegisterFormatter("markdown", "Transcription", &TranscriptionMarkdownFormatter{})
	registry.RegisterFormatter("text", "Question", &QuestionTextFormatter{})
	registry.RegisterFormatter("markdown", "Question", &QuestionMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.Evaluation:
		return "Evaluation"
	case types.TurnResult:
		return "TurnResult"
	case types.TranscriptionResult:
		return "Transcription"
	case types.QuestionResult:
		return "Question"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// writeEvaluationText writes the shared plain-text body for an evaluation.
func writeEvaluationText(output *strings.Builder, result types.Evaluation) {
	output.WriteString(fmt.Sprintf("Technical Knowledge: %d/10\n", result.TechnicalScore))
	output.WriteString(fmt.Sprintf("Communication:       %d/10\n", result.CommunicationScore))
	output.WriteString(fmt.Sprintf("Cultural Fit:        %d/10\n\n", result.CulturalFitScore))

	if len(result.Strengths) > 0 {
		output.WriteString("Strengths:\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("  %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.AreasForImprovement) > 0 {
		output.WriteString("Areas for Improvement:\n")
		for _, area := range result.AreasForImprovement {
			output.WriteString(fmt.Sprintf("  %s\n", area))
		}
		output.WriteString("\n")
	}

	if result.OverallAssessment != "" {
		output.WriteString("Overall Assessment:\n")
		output.WriteString(result.OverallAssessment)
		output.WriteString("\n\n")
	}

	output.WriteString(fmt.Sprintf("Recommendation: %s\n", result.Recommendation))
}

// writeEvaluationMarkdown writes the shared markdown body for an evaluation.
func writeEvaluationMarkdown(output *strings.Builder, result types.Evaluation) {
	output.WriteString("| Dimension | Score |\n")
	output.WriteString("|-----------|-------|\n")
	output.WriteString(fmt.Sprintf("| Technical Knowledge | %d/10 |\n", result.TechnicalScore))
	output.WriteString(fmt.Sprintf("| Communication | %d/10 |\n", result.CommunicationScore))
	output.WriteString(fmt.Sprintf("| Cultural Fit | %d/10 |\n\n", result.CulturalFitScore))

	if len(result.Strengths) > 0 {
		output.WriteString("### Strengths\n\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("%s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.AreasForImprovement) > 0 {
		output.WriteString("### Areas for Improvement\n\n")
		for _, area := range result.AreasForImprovement {
			output.WriteString(fmt.Sprintf("%s\n", area))
		}
		output.WriteString("\n")
	}

	if result.OverallAssessment != "" {
		output.WriteString("### Overall Assessment\n\n")
		output.WriteString(result.OverallAssessment)
		output.WriteString("\n\n")
	}

	output.WriteString(fmt.Sprintf("**Recommendation:** %s\n", result.Recommendation))
}

// EvaluationTextFormatter handles text formatting for response evaluations
type EvaluationTextFormatter struct{}

func (etf *EvaluationTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.Evaluation)
	if !ok {
		return "", fmt.Errorf("expected Evaluation, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== RESPONSE EVALUATION ===\n\n")
	writeEvaluationText(&output, result)

	return output.String(), nil
}

func (etf *EvaluationTextFormatter) SupportedType() string {
	return "Evaluation"
}

// EvaluationMarkdownFormatter handles markdown formatting for response evaluations
type EvaluationMarkdownFormatter struct{}

func (emf *EvaluationMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.Evaluation)
	if !ok {
		return "", fmt.Errorf("expected Evaluation, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Response Evaluation\n\n")
	writeEvaluationMarkdown(&output, result)

	return output.String(), nil
}

func (emf *EvaluationMarkdownFormatter) SupportedType() string {
	return "Evaluation"
}

// TurnResultTextFormatter handles text formatting for completed interview turns
type TurnResultTextFormatter struct{}

func (ttf *TurnResultTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.TurnResult)
	if !ok {
		return "", fmt.Errorf("expected TurnResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== INTERVIEW TURN ===\n\n")

	if result.Transcription != "" {
		output.WriteString("Transcription:\n")
		output.WriteString(result.Transcription)
		output.WriteString("\n\n")
	}

	output.WriteString("=== EVALUATION ===\n\n")
	writeEvaluationText(&output, result.Evaluation)
	output.WriteString("\n")

	output.WriteString("=== NEXT QUESTION ===\n")
	output.WriteString(result.NextQuestion)
	output.WriteString("\n\n")

	output.WriteString(fmt.Sprintf("Session: stage=%s state=%s turns=%d\n",
		result.Session.Stage, result.Session.State, len(result.Session.History)))

	return output.String(), nil
}

func (ttf *TurnResultTextFormatter) SupportedType() string {
	return "TurnResult"
}

// TurnResultMarkdownFormatter handles markdown formatting for completed interview turns
type TurnResultMarkdownFormatter struct{}

func (tmf *TurnResultMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.TurnResult)
	if !ok {
		return "", fmt.Errorf("expected TurnResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Interview Turn\n\n")

	if result.Transcription != "" {
		output.WriteString("## Transcription\n\n")
		output.WriteString(result.Transcription)
		output.WriteString("\n\n")
	}

	output.WriteString("## Evaluation\n\n")
	writeEvaluationMarkdown(&output, result.Evaluation)
	output.WriteString("\n")

	output.WriteString("## Next Question\n\n")
	output.WriteString(result.NextQuestion)
	output.WriteString("\n\n")

	output.WriteString(fmt.Sprintf("**Session:** stage `%s`, state `%s`, %d turns\n",
		result.Session.Stage, result.Session.State, len(result.Session.History)))

	return output.String(), nil
}

func (tmf *TurnResultMarkdownFormatter) SupportedType() string {
	return "TurnResult"
}

// TranscriptionTextFormatter handles text formatting for transcriptions
type TranscriptionTextFormatter struct{}

func (ttf *TranscriptionTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.TranscriptionResult)
	if !ok {
		return "", fmt.Errorf("expected TranscriptionResult, got %T", data)
	}

	return result.Text + "\n", nil
}

func (ttf *TranscriptionTextFormatter) SupportedType() string {
	return "Transcription"
}

// TranscriptionMarkdownFormatter handles markdown formatting for transcriptions
type TranscriptionMarkdownFormatter struct{}

func (tmf *TranscriptionMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.TranscriptionResult)
	if !ok {
		return "", fmt.Errorf("expected TranscriptionResult, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Transcription\n\n")
	output.WriteString(result.Text)
	output.WriteString("\n")

	return output.String(), nil
}

func (tmf *TranscriptionMarkdownFormatter) SupportedType() string {
	return "Transcription"
}

// QuestionTextFormatter handles text formatting for generated questions
type QuestionTextFormatter struct{}

func (qtf *QuestionTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.QuestionResult)
	if !ok {
		return "", fmt.Errorf("expected QuestionResult, got %T", data)
	}

	return result.Question + "\n", nil
}

func (qtf *QuestionTextFormatter) SupportedType() string {
	return "Question"
}

// QuestionMarkdownFormatter handles markdown formatting for generated questions
type QuestionMarkdownFormatter struct{}

func (qmf *QuestionMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.QuestionResult)
	if !ok {
		return "", fmt.Errorf("expected QuestionResult, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Interview Question\n\n")
	output.WriteString(fmt.Sprintf("**Stage:** %s\n\n", result.Stage))
	output.WriteString(result.Question)
	output.WriteString("\n")

	return output.String(), nil
}

func (qmf *QuestionMarkdownFormatter) SupportedType() string {
	return "Question"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
