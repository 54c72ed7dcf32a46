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

var questionCmd = &cobra.Command{
	Use:   "question [job-file] [candidate-file]",
	Short: "Generate an interview question for a job and candidate",
	Long: `Generate a single stage-appropriate interview question using AI.
The command takes two arguments: the path to a JSON file describing the job
(title, description, requirements, skills) and the path to a JSON file
describing the candidate (name, experience, education, skills).

Use --stage to pick the interview stage the question should target.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if questionConfig.OutputFormat == "" {
			questionConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(questionConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runQuestion,
}

var questionConfig common.CommandConfig
var questionStage string

func init() {
	questionCmd.Flags().StringVarP(&questionConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	questionCmd.Flags().StringVar(&questionConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	questionCmd.Flags().StringVar(&questionStage, "stage", string(types.StageIntroduction),
		"Interview stage: introduction, technical, behavioral, situational, or closing")

	// Add completion for format flag
	_ = questionCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runQuestion(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for question operation
	questionAIConfig := cfg.GetQuestionConfig()
	aiService, err := ai.NewService(&questionAIConfig, "question", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	generator := interview.NewGenerator(aiService.Provider, logger)
	stage := types.InterviewStage(questionStage)

	createInput := func(contents []string) (types.GenerateQuestionInput, error) {
		if len(contents) != 2 {
			return types.GenerateQuestionInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}

		var job types.JobContext
		if err := json.Unmarshal([]byte(contents[0]), &job); err != nil {
			return types.GenerateQuestionInput{}, fmt.Errorf("failed to parse job file: %w", err)
		}
		var candidate types.CandidateContext
		if err := json.Unmarshal([]byte(contents[1]), &candidate); err != nil {
			return types.GenerateQuestionInput{}, fmt.Errorf("failed to parse candidate file: %w", err)
		}

		return types.GenerateQuestionInput{
			Job:       job,
			Candidate: candidate,
			Stage:     stage,
		}, nil
	}

	logDetails := func(input types.GenerateQuestionInput, cfg common.CommandConfig) {
		logger.Info("Starting question generation",
			"job_title", input.Job.Title,
			"stage", input.Stage,
			"output_format", cfg.OutputFormat)
	}

	questionOperation := func(ctx context.Context, input types.GenerateQuestionInput) (types.QuestionResult, error) {
		question, err := generator.NextQuestion(ctx, input)
		if err != nil {
			return types.QuestionResult{}, err
		}
		return types.QuestionResult{Question: question, Stage: input.Stage}, nil
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		questionConfig,
		args,
		createInput,
		questionOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate question: %w", err)
	}
	logger.Info("Question generation completed successfully")
	return nil
}
