package server

import (
	"time"

	"intervista/internal/config"
	intervistaErrors "intervista/internal/errors"
	"intervista/internal/types"
)

// QuestionRequest represents the request body for the question endpoint.
// Session is optional: when omitted, a fresh session is started.
type QuestionRequest struct {
	Job       types.JobContext       `json:"job"`
	Candidate types.CandidateContext `json:"candidate"`
	Session   *types.Session         `json:"session,omitempty"`
}

// QuestionResponse is the response body for the question endpoint
type QuestionResponse struct {
	Question string        `json:"question"`
	Session  types.Session `json:"session"`
}

// RespondTextRequest represents the request body for the text response endpoint
type RespondTextRequest struct {
	Job       types.JobContext       `json:"job"`
	Candidate types.CandidateContext `json:"candidate"`
	Session   types.Session          `json:"session"`
	Response  string                 `json:"response"`
}

// RespondAudioRequest represents the request body for the audio response
// endpoint. Audio carries the recording as standard base64.
type RespondAudioRequest struct {
	Job       types.JobContext       `json:"job"`
	Candidate types.CandidateContext `json:"candidate"`
	Session   types.Session          `json:"session"`
	Audio     string                 `json:"audio"`
	MimeType  string                 `json:"mimeType"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *intervistaErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
// (Refactored to reduce long parameter list in NewServer)
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *intervistaErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
