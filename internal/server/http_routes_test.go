package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intervistaErrors "intervista/internal/errors"

	oteltrace "go.opentelemetry.io/otel/trace"
)

func quietLogger() *intervistaErrors.Logger {
	return intervistaErrors.NewLogger(slog.LevelError + 4)
}

func noopSpan() oteltrace.Span {
	return oteltrace.SpanFromContext(context.Background())
}

func TestAuthMiddlewareNoKeysConfigured(t *testing.T) {
	s := &Server{APIKeys: map[string]bool{}, Logger: quietLogger()}

	called := false
	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/interview/question", nil))

	if !called {
		t.Error("Expected handler to be called when no API keys are configured")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestAuthMiddlewareKeyValidation(t *testing.T) {
	s := &Server{
		APIKeys: map[string]bool{"valid-key-12345": true},
		Logger:  quietLogger(),
	}

	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{"missing key", "", "", http.StatusUnauthorized},
		{"invalid key", "X-API-Key", "wrong-key", http.StatusUnauthorized},
		{"valid key header", "X-API-Key", "valid-key-12345", http.StatusOK},
		{"valid bearer token", "Authorization", "Bearer valid-key-12345", http.StatusOK},
		{"invalid bearer token", "Authorization", "Bearer wrong-key", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/interview/question", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.input); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWriteEngineErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "model unavailable maps to bad gateway",
			err:        intervistaErrors.NewModelUnavailableError("question", fmt.Errorf("backend down")),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "missing audio maps to bad request",
			err:        intervistaErrors.NewMissingAudioError(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "session validation maps to bad request",
			err: intervistaErrors.NewValidationError(intervistaErrors.ErrCodeInvalidRequest,
				"interview session is already completed", nil),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unclassified error maps to internal server error",
			err:        fmt.Errorf("something unexpected"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeEngineError(rec, noopSpan(), tt.err, "Failed to process turn")

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != "Failed to process turn" {
				t.Errorf("Unexpected error title: %q", resp.Error)
			}
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	s := &Server{MaxRequestSize: 16, Logger: quietLogger()}

	handler := s.requestSizeLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := parseJSONRequest(r, &payload); err != nil {
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	body := `{"response": "this body is longer than sixteen bytes"}`
	req := httptest.NewRequest(http.MethodPost, "/interview/respond/text", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for oversized body, got %d", rec.Code)
	}
}
