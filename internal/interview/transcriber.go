package interview

import (
	"context"

	"intervista/internal/ai"
	"intervista/internal/errors"
)

// Transcriber converts candidate audio into text.
type Transcriber struct {
	provider ai.AIProvider
	logger   *errors.Logger
}

// NewTranscriber creates a transcriber backed by the given model provider.
func NewTranscriber(provider ai.AIProvider, logger *errors.Logger) *Transcriber {
	return &Transcriber{
		provider: provider,
		logger:   logger,
	}
}

// Transcribe sends the audio to the speech model and returns the spoken
// words as text. An empty payload is rejected before the model is ever
// contacted.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", errors.NewMissingAudioError()
	}

	text, usage, err := t.provider.TranscribeAudio(ctx, audio, mimeType)
	if err != nil {
		return "", err
	}

	logArgs := []any{
		"mime_type", mimeType,
		"audio_bytes", len(audio),
		"transcript_length", len(text),
	}
	if usage != nil {
		logArgs = append(logArgs, "total_tokens", usage.TotalTokens)
	}
	t.logger.Debug("Audio transcribed", logArgs...)

	return text, nil
}
