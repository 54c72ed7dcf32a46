package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"intervista/internal/ai"
	"intervista/internal/common"
	"intervista/internal/interview"
	"intervista/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [job-file] [candidate-file] [response-file]",
	Short: "Analyze a candidate's interview response",
	Long: `Analyze a candidate's answer to an interview question using AI.
The command takes three arguments: a JSON file describing the job, a JSON
file describing the candidate, and a plain text file with the candidate's
response.

The analysis includes:
- Technical knowledge, communication, and cultural fit scores
- Key strengths demonstrated in the response
- Areas for improvement
- An overall assessment and hiring recommendation

Use --question to supply the question the candidate was answering.`,
	Args: cobra.ExactArgs(3),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig
var analyzeQuestion string

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVarP(&analyzeQuestion, "question", "q", "", "The interview question the response answers")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for analyze operation
	analyzeAIConfig := cfg.GetAnalyzeConfig()
	aiService, err := ai.NewService(&analyzeAIConfig, "analyze", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	analyzer := interview.NewAnalyzer(aiService.Provider, logger)

	createInput := func(contents []string) (types.AnalyzeResponseInput, error) {
		if len(contents) != 3 {
			return types.AnalyzeResponseInput{}, fmt.Errorf("expected 3 file paths, got %d", len(contents))
		}

		var job types.JobContext
		if err := json.Unmarshal([]byte(contents[0]), &job); err != nil {
			return types.AnalyzeResponseInput{}, fmt.Errorf("failed to parse job file: %w", err)
		}
		var candidate types.CandidateContext
		if err := json.Unmarshal([]byte(contents[1]), &candidate); err != nil {
			return types.AnalyzeResponseInput{}, fmt.Errorf("failed to parse candidate file: %w", err)
		}

		return types.AnalyzeResponseInput{
			Question:  analyzeQuestion,
			Response:  contents[2],
			Job:       job,
			Candidate: candidate,
		}, nil
	}

	logDetails := func(input types.AnalyzeResponseInput, cfg common.CommandConfig) {
		logger.Info("Starting response analysis",
			"job_title", input.Job.Title,
			"response_chars", len(input.Response),
			"output_format", cfg.OutputFormat)
	}

	analyzeOperation := func(ctx context.Context, input types.AnalyzeResponseInput) (types.Evaluation, error) {
		return analyzer.Analyze(ctx, input)
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze response: %w", err)
	}
	logger.Info("Response analysis completed successfully")
	return nil
}
