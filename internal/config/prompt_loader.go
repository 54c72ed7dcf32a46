package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// GetLoadedPrompts returns the loaded prompt content in a thread-safe way
func GetLoadedPrompts() AllLoadedPrompts {
	promptsMu.RLock()
	defer promptsMu.RUnlock()
	return loadedPrompts
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	var next AllLoadedPrompts

	// Load global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &next.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &next.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Load operation-specific prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.Analyze.CustomPrompts.SystemPrompts, &next.Analyze.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load analyze system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Analyze.CustomPrompts.UserPrompts, &next.Analyze.UserPrompts); err != nil {
		return fmt.Errorf("failed to load analyze user prompts: %w", err)
	}

	if err := c.loadSystemPromptsFromFiles(&c.AI.Question.CustomPrompts.SystemPrompts, &next.Question.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load question system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Question.CustomPrompts.UserPrompts, &next.Question.UserPrompts); err != nil {
		return fmt.Errorf("failed to load question user prompts: %w", err)
	}

	if err := c.loadSystemPromptsFromFiles(&c.AI.Transcribe.CustomPrompts.SystemPrompts, &next.Transcribe.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load transcribe system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Transcribe.CustomPrompts.UserPrompts, &next.Transcribe.UserPrompts); err != nil {
		return fmt.Errorf("failed to load transcribe user prompts: %w", err)
	}

	// Publish the full set atomically so readers never see a half-loaded state
	promptsMu.Lock()
	loadedPrompts = next
	promptsMu.Unlock()

	c.logPromptLoadingSummary()

	return nil
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	if prompts.AnalyzeResponseFile != "" {
		content, err := c.loadPromptFromFile(prompts.AnalyzeResponseFile, "system", "analyzeResponse")
		if err != nil {
			return err
		}
		target.AnalyzeResponse = content
	}

	if prompts.GenerateQuestionFile != "" {
		content, err := c.loadPromptFromFile(prompts.GenerateQuestionFile, "system", "generateQuestion")
		if err != nil {
			return err
		}
		target.GenerateQuestion = content
	}

	if prompts.TranscribeAudioFile != "" {
		content, err := c.loadPromptFromFile(prompts.TranscribeAudioFile, "system", "transcribeAudio")
		if err != nil {
			return err
		}
		target.TranscribeAudio = content
	}

	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	if prompts.AnalyzeResponseFile != "" {
		content, err := c.loadPromptFromFile(prompts.AnalyzeResponseFile, "user", "analyzeResponse")
		if err != nil {
			return err
		}
		target.AnalyzeResponse = content
	}

	if prompts.GenerateQuestionFile != "" {
		content, err := c.loadPromptFromFile(prompts.GenerateQuestionFile, "user", "generateQuestion")
		if err != nil {
			return err
		}
		target.GenerateQuestion = content
	}

	if prompts.TranscribeAudioFile != "" {
		content, err := c.loadPromptFromFile(prompts.TranscribeAudioFile, "user", "transcribeAudio")
		if err != nil {
			return err
		}
		target.TranscribeAudio = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	// Log successful loading
	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// promptFilePaths returns every configured prompt file path, global and
// per-operation, without duplicates.
func (c *Config) promptFilePaths() []string {
	seen := make(map[string]bool)
	var paths []string

	add := func(path string) {
		if path != "" && !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, prompts := range []PromptConfig{
		c.AI.CustomPrompts,
		c.AI.Analyze.CustomPrompts,
		c.AI.Question.CustomPrompts,
		c.AI.Transcribe.CustomPrompts,
	} {
		add(prompts.SystemPrompts.AnalyzeResponseFile)
		add(prompts.SystemPrompts.GenerateQuestionFile)
		add(prompts.SystemPrompts.TranscribeAudioFile)
		add(prompts.UserPrompts.AnalyzeResponseFile)
		add(prompts.UserPrompts.GenerateQuestionFile)
		add(prompts.UserPrompts.TranscribeAudioFile)
	}

	return paths
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	for _, filePath := range c.promptFilePaths() {
		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid prompt file path: %s", filePath))
			continue
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("prompt file not found: %s", absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	promptsMu.RLock()
	promptChecks := []struct {
		content string
		message string
	}{
		{loadedPrompts.Global.SystemPrompts.AnalyzeResponse, "[CONFIG] Global system analyze prompt: loaded from file"},
		{loadedPrompts.Global.SystemPrompts.GenerateQuestion, "[CONFIG] Global system question prompt: loaded from file"},
		{loadedPrompts.Global.SystemPrompts.TranscribeAudio, "[CONFIG] Global system transcribe prompt: loaded from file"},
		{loadedPrompts.Global.UserPrompts.AnalyzeResponse, "[CONFIG] Global user analyze prompt: loaded from file"},
		{loadedPrompts.Global.UserPrompts.GenerateQuestion, "[CONFIG] Global user question prompt: loaded from file"},
		{loadedPrompts.Global.UserPrompts.TranscribeAudio, "[CONFIG] Global user transcribe prompt: loaded from file"},
		{loadedPrompts.Analyze.SystemPrompts.AnalyzeResponse, "[CONFIG] Analyze-specific system prompt: loaded from file"},
		{loadedPrompts.Analyze.UserPrompts.AnalyzeResponse, "[CONFIG] Analyze-specific user prompt: loaded from file"},
		{loadedPrompts.Question.SystemPrompts.GenerateQuestion, "[CONFIG] Question-specific system prompt: loaded from file"},
		{loadedPrompts.Question.UserPrompts.GenerateQuestion, "[CONFIG] Question-specific user prompt: loaded from file"},
		{loadedPrompts.Transcribe.SystemPrompts.TranscribeAudio, "[CONFIG] Transcribe-specific system prompt: loaded from file"},
		{loadedPrompts.Transcribe.UserPrompts.TranscribeAudio, "[CONFIG] Transcribe-specific user prompt: loaded from file"},
	}
	promptsMu.RUnlock()

	promptCount := 0
	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
