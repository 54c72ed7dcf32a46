package cli

import (
	"fmt"

	"intervista/internal/ai"
	"intervista/internal/common"
	"intervista/internal/interview"
	"intervista/internal/types"
	"intervista/internal/utils"

	"github.com/spf13/cobra"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [audio-file]",
	Short: "Transcribe a recorded interview answer to text",
	Long: `Transcribe a candidate's recorded answer to text using AI.
The command takes one argument: the path to an audio file. The MIME type
is detected from the file extension (wav, mp3, ogg, flac, m4a, webm).`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if transcribeConfig.OutputFormat == "" {
			transcribeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(transcribeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runTranscribe,
}

var transcribeConfig common.CommandConfig

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	transcribeCmd.Flags().StringVar(&transcribeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = transcribeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for transcribe operation
	transcribeAIConfig := cfg.GetTranscribeConfig()
	aiService, err := ai.NewService(&transcribeAIConfig, "transcribe", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	audioFile := args[0]
	mimeType, err := utils.AudioMIMEType(audioFile)
	if err != nil {
		return err
	}

	// Audio is binary, so it skips the text file pipeline
	fileProcessor := common.NewFileProcessor(logger)
	audio, err := fileProcessor.ReadBinaryFile(audioFile)
	if err != nil {
		return err
	}

	if maxAudio := cfg.App.MaxAudioBytes; maxAudio > 0 && int64(len(audio)) > maxAudio {
		return fmt.Errorf("audio file exceeds size limit of %d bytes", maxAudio)
	}

	logger.Info("Starting audio transcription",
		"audio_file", audioFile,
		"audio_bytes", len(audio),
		"mime_type", mimeType,
		"output_format", transcribeConfig.OutputFormat)

	transcriber := interview.NewTranscriber(aiService.Provider, logger)
	text, err := transcriber.Transcribe(cmd.Context(), audio, mimeType)
	if err != nil {
		return fmt.Errorf("failed to transcribe audio: %w", err)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(types.TranscriptionResult{Text: text}, transcribeConfig); err != nil {
		return err
	}

	logger.Info("Audio transcription completed successfully")
	return nil
}
