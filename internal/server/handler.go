package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"intervista/internal/ai"
	intervistaErrors "intervista/internal/errors"
	"intervista/internal/interview"
	"intervista/internal/observability"
	"intervista/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// newEngine assembles an interview engine backed by the per-operation
// AI services.
func (s *Server) newEngine() (*interview.Engine, error) {
	analyzeConfig := s.AppConfig.GetAnalyzeConfig()
	analyzeService, err := ai.NewService(&analyzeConfig, "analyze", s.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyze service: %w", err)
	}

	questionConfig := s.AppConfig.GetQuestionConfig()
	questionService, err := ai.NewService(&questionConfig, "question", s.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create question service: %w", err)
	}

	transcribeConfig := s.AppConfig.GetTranscribeConfig()
	transcribeService, err := ai.NewService(&transcribeConfig, "transcribe", s.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcribe service: %w", err)
	}

	return interview.NewEngine(
		interview.NewAnalyzer(analyzeService.Provider, s.Logger),
		interview.NewGenerator(questionService.Provider, s.Logger),
		interview.NewTranscriber(transcribeService.Provider, s.Logger),
		s.AppConfig.Interview,
		s.Logger,
	), nil
}

// writeEngineError maps an engine failure to the right HTTP status:
// model outages become 502 so clients can distinguish an upstream
// failure from a bad request.
func writeEngineError(w http.ResponseWriter, span oteltrace.Span, err error, title string) {
	span.RecordError(err)

	switch {
	case intervistaErrors.IsModelUnavailable(err):
		span.SetAttributes(attribute.String("error.type", "model_unavailable"))
		writeErrorResponse(w, title, err.Error(), http.StatusBadGateway)
	case intervistaErrors.IsValidation(err):
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, title, err.Error(), http.StatusBadRequest)
	default:
		span.SetAttributes(attribute.String("error.type", "internal"))
		writeErrorResponse(w, title, err.Error(), http.StatusInternalServerError)
	}
}

// validateInterviewContext checks the job and candidate fields shared
// by all interview endpoints.
func validateInterviewContext(job types.JobContext, candidate types.CandidateContext) error {
	if strings.TrimSpace(job.Title) == "" {
		return fmt.Errorf("job.title field is required")
	}
	if strings.TrimSpace(candidate.Name) == "" {
		return fmt.Errorf("candidate.name field is required")
	}
	return nil
}

// createQuestionHandler wraps the question endpoint with observability
func (s *Server) createQuestionHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("intervista.api")
		ctx, span := tracer.Start(ctx, "api.question")
		defer span.End()

		var req QuestionRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := validateInterviewContext(req.Job, req.Candidate); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid interview context", err.Error(), http.StatusBadRequest)
			return
		}

		session := types.NewSession()
		if req.Session != nil {
			session = *req.Session
		}

		span.SetAttributes(
			attribute.String("interview.stage", string(session.Stage)),
			attribute.Int("interview.history_turns", len(session.History)),
			attribute.String("operation", "question"),
		)

		engine, err := s.newEngine()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var (
			question string
			updated  types.Session
		)
		err = metrics.TrackAIOperationWithTokens(ctx, "question", func(ctx context.Context) *observability.AIOperationResult {
			var engineErr error
			question, updated, engineErr = engine.Ask(ctx, session, req.Job, req.Candidate)
			return &observability.AIOperationResult{Error: engineErr}
		}, om)

		if err != nil {
			metrics.RecordBusinessMetric(ctx, "question_generated", false, om)
			writeEngineError(w, span, err, "Failed to generate question")
			return
		}

		metrics.RecordBusinessMetric(ctx, "question_generated", true, om,
			attribute.String("stage", string(updated.Stage)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.question_length", len(question)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(QuestionResponse{Question: question, Session: updated}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRespondTextHandler wraps the text response endpoint with observability
func (s *Server) createRespondTextHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("intervista.api")
		ctx, span := tracer.Start(ctx, "api.respond.text")
		defer span.End()

		var req RespondTextRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := validateInterviewContext(req.Job, req.Candidate); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid interview context", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Response) == "" {
			err := fmt.Errorf("missing candidate response")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing candidate response", "response field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("interview.stage", string(req.Session.Stage)),
			attribute.Int("request.response_length", len(req.Response)),
			attribute.String("operation", "respond_text"),
		)

		engine, err := s.newEngine()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.TurnResult
		err = metrics.TrackAIOperationWithTokens(ctx, "respond_text", func(ctx context.Context) *observability.AIOperationResult {
			var engineErr error
			result, engineErr = engine.Respond(ctx, req.Session, req.Job, req.Candidate, req.Response)
			return &observability.AIOperationResult{Error: engineErr}
		}, om)

		if err != nil {
			metrics.RecordBusinessMetric(ctx, "turn_completed", false, om)
			writeEngineError(w, span, err, "Failed to process response")
			return
		}

		metrics.RecordBusinessMetric(ctx, "response_analyzed", true, om,
			attribute.String("recommendation", string(result.Evaluation.Recommendation)))
		metrics.RecordBusinessMetric(ctx, "turn_completed", true, om,
			attribute.String("stage", string(result.Session.Stage)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("evaluation.technical_score", result.Evaluation.TechnicalScore),
			attribute.String("evaluation.recommendation", string(result.Evaluation.Recommendation)),
			attribute.String("session.stage", string(result.Session.Stage)),
			attribute.String("session.state", string(result.Session.State)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRespondAudioHandler wraps the audio response endpoint with observability
func (s *Server) createRespondAudioHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("intervista.api")
		ctx, span := tracer.Start(ctx, "api.respond.audio")
		defer span.End()

		var req RespondAudioRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := validateInterviewContext(req.Job, req.Candidate); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid interview context", err.Error(), http.StatusBadRequest)
			return
		}

		audio, err := base64.StdEncoding.DecodeString(req.Audio)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid audio payload", "audio field must be base64 encoded", http.StatusBadRequest)
			return
		}
		if maxAudio := s.AppConfig.App.MaxAudioBytes; maxAudio > 0 && int64(len(audio)) > maxAudio {
			err := fmt.Errorf("audio payload too large: %d bytes", len(audio))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Audio payload too large",
				fmt.Sprintf("audio exceeds size limit of %d bytes", maxAudio), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("interview.stage", string(req.Session.Stage)),
			attribute.Int("request.audio_bytes", len(audio)),
			attribute.String("request.mime_type", req.MimeType),
			attribute.String("operation", "respond_audio"),
		)

		engine, err := s.newEngine()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.TurnResult
		err = metrics.TrackAIOperationWithTokens(ctx, "respond_audio", func(ctx context.Context) *observability.AIOperationResult {
			var engineErr error
			result, engineErr = engine.RespondAudio(ctx, req.Session, req.Job, req.Candidate, audio, req.MimeType)
			return &observability.AIOperationResult{Error: engineErr}
		}, om)

		if err != nil {
			metrics.RecordBusinessMetric(ctx, "audio_transcribed", false, om)
			writeEngineError(w, span, err, "Failed to process audio response")
			return
		}

		metrics.RecordBusinessMetric(ctx, "audio_transcribed", true, om,
			attribute.Int("transcript_length", len(result.Transcription)))
		metrics.RecordBusinessMetric(ctx, "turn_completed", true, om,
			attribute.String("stage", string(result.Session.Stage)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.transcript_length", len(result.Transcription)),
			attribute.String("session.stage", string(result.Session.Stage)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
