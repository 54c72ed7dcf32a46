package ai

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"intervista/internal/config"
	apperrors "intervista/internal/errors"
	"intervista/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	operationType  string
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *apperrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *apperrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, apperrors.NewAIError(apperrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	// Initialize circuit breaker with operation-specific configuration
	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		operationType:  operationType,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	// Create a timeout context for the model check
	timeout := getAIModelCheckTimeout()
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Get model information from Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		// Log the error for debugging
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	// Model is available, populate info
	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	// Log successful check
	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Log retry attempt
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			// Use crypto/rand for secure random jitter
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	// Log final failure
	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true // Retry on timeouts
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// generateText runs a model call with tracing, circuit breaker, and retry
// handling, returning the raw model text. Failures surface as
// MODEL_UNAVAILABLE so callers can tell an outage from a parse problem.
func (g *GeminiProvider) generateText(
	ctx context.Context,
	operationName string,
	contents []*genai.Content,
	spanAttributes ...attribute.KeyValue,
) (string, *TokenUsage, error) {
	tracer := otel.Tracer("intervista.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	// Set base attributes
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	genaiConfig := g.buildTextConfig(operationName)

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, contents, genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, apperrors.NewModelUnavailableError(operationName, err)
	}

	text := result.Text()
	if text == "" {
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, apperrors.NewModelUnavailableError(operationName,
			fmt.Errorf("model returned an empty response"))
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.length", len(text)),
	)
	return text, tokenUsage, nil
}

// buildTextConfig creates the generation config for plain-text requests.
// Responses are parsed by label, not schema, so no response schema is set.
func (g *GeminiProvider) buildTextConfig(operationName string) *genai.GenerateContentConfig {
	genaiConfig := &genai.GenerateContentConfig{}

	if *g.config.UseSystemPrompts {
		if systemPrompt := g.getSystemPrompt(); systemPrompt != "" {
			genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
		}
	}

	// Apply temperature configuration if set
	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}

	return genaiConfig
}

// AnalyzeResponse implements AIProvider for candidate answer evaluation
func (g *GeminiProvider) AnalyzeResponse(ctx context.Context, input types.AnalyzeResponseInput) (string, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(),
		input.Job.Title,
		input.Job.Description,
		strings.Join(input.Job.Requirements, ", "),
		input.Candidate.Name,
		input.Candidate.Experience,
		input.Candidate.Education,
		input.Candidate.Skills,
		input.Question,
		input.Response,
	)

	return g.generateText(ctx, "analyze_response",
		genai.Text(userPrompt),
		attribute.Int("input.question_length", len(input.Question)),
		attribute.Int("input.response_length", len(input.Response)),
	)
}

// GenerateQuestion implements AIProvider for interviewer question generation
func (g *GeminiProvider) GenerateQuestion(ctx context.Context, input types.GenerateQuestionInput) (string, *TokenUsage, error) {
	userPrompt := fmt.Sprintf(g.getUserPrompt(),
		input.Job.Title,
		strings.Join(input.Job.Requirements, ", "),
		strings.Join(input.Job.Skills, ", "),
		input.Candidate.Name,
		input.Candidate.Experience,
		input.Candidate.Skills,
		string(input.Stage),
		formatHistory(input.History),
	)

	return g.generateText(ctx, "generate_question",
		genai.Text(userPrompt),
		attribute.String("interview.stage", string(input.Stage)),
		attribute.Int("interview.history_turns", len(input.History)),
	)
}

// TranscribeAudio implements AIProvider for speech-to-text conversion
func (g *GeminiProvider) TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, *TokenUsage, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(g.getUserPrompt()),
		genai.NewPartFromBytes(audio, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	return g.generateText(ctx, "transcribe_audio",
		contents,
		attribute.Int("input.audio_bytes", len(audio)),
		attribute.String("input.mime_type", mimeType),
	)
}

// formatHistory renders the conversation transcript one turn per line,
// in "role: content" form, oldest first.
func formatHistory(history []types.ConversationTurn) string {
	if len(history) == 0 {
		return "(no conversation yet)"
	}

	var b strings.Builder
	for i, turn := range history {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Content)
	}
	return b.String()
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	// Probably needed in streaming mode
	return nil
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// AIOperationResult holds the result of an AI operation including token usage
type AIOperationResult struct {
	Error      error
	TokenUsage *TokenUsage
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// getAIModelCheckTimeout returns the configured AI model check timeout
func getAIModelCheckTimeout() time.Duration {
	// Use default timeout since we don't have access to config here
	// This function should be refactored to accept timeout as parameter
	// Fallback to default
	return 10 * time.Second
}

// getSystemPrompt returns the system prompt for this provider's operation
func (g *GeminiProvider) getSystemPrompt() string {
	loadedPrompts := config.GetPromptsForOperation(g.operationType)
	configPrompts := g.config.CustomPrompts.SystemPrompts

	switch g.operationType {
	case "analyze":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.AnalyzeResponse,
			configPrompts.AnalyzeResponse,
			DefaultSystemPrompts.AnalyzeResponse,
		)
	case "question":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.GenerateQuestion,
			configPrompts.GenerateQuestion,
			DefaultSystemPrompts.GenerateQuestion,
		)
	case "transcribe":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.TranscribeAudio,
			configPrompts.TranscribeAudio,
			DefaultSystemPrompts.TranscribeAudio,
		)
	default:
		return ""
	}
}

// getUserPrompt returns the user prompt template for this provider's operation
func (g *GeminiProvider) getUserPrompt() string {
	loadedPrompts := config.GetPromptsForOperation(g.operationType)
	configPrompts := g.config.CustomPrompts.UserPrompts

	switch g.operationType {
	case "analyze":
		return resolvePrompt(
			loadedPrompts.UserPrompts.AnalyzeResponse,
			configPrompts.AnalyzeResponse,
			DefaultUserPrompts.AnalyzeResponse,
		)
	case "question":
		return resolvePrompt(
			loadedPrompts.UserPrompts.GenerateQuestion,
			configPrompts.GenerateQuestion,
			DefaultUserPrompts.GenerateQuestion,
		)
	case "transcribe":
		return resolvePrompt(
			loadedPrompts.UserPrompts.TranscribeAudio,
			configPrompts.TranscribeAudio,
			DefaultUserPrompts.TranscribeAudio,
		)
	default:
		return ""
	}
}

// resolvePrompt selects the correct prompt string based on a clear priority order:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
