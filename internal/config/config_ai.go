package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetAnalyzeConfig returns the AI configuration for response analysis with fallback to global config
func (c *Config) GetAnalyzeConfig() OperationAIConfig {
	config := c.AI.Analyze

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply analyze-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.AnalyzeResponse == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeResponse = c.AI.CustomPrompts.SystemPrompts.AnalyzeResponse
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResponse == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResponse = c.AI.CustomPrompts.UserPrompts.AnalyzeResponse
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.AnalyzeResponseFile == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeResponseFile = c.AI.CustomPrompts.SystemPrompts.AnalyzeResponseFile
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResponseFile == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResponseFile = c.AI.CustomPrompts.UserPrompts.AnalyzeResponseFile
	}

	return config
}

// GetQuestionConfig returns the AI configuration for question generation with fallback to global config
func (c *Config) GetQuestionConfig() OperationAIConfig {
	config := c.AI.Question

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply question-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.GenerateQuestion == "" {
		config.CustomPrompts.SystemPrompts.GenerateQuestion = c.AI.CustomPrompts.SystemPrompts.GenerateQuestion
	}
	if config.CustomPrompts.UserPrompts.GenerateQuestion == "" {
		config.CustomPrompts.UserPrompts.GenerateQuestion = c.AI.CustomPrompts.UserPrompts.GenerateQuestion
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.GenerateQuestionFile == "" {
		config.CustomPrompts.SystemPrompts.GenerateQuestionFile = c.AI.CustomPrompts.SystemPrompts.GenerateQuestionFile
	}
	if config.CustomPrompts.UserPrompts.GenerateQuestionFile == "" {
		config.CustomPrompts.UserPrompts.GenerateQuestionFile = c.AI.CustomPrompts.UserPrompts.GenerateQuestionFile
	}

	return config
}

// GetTranscribeConfig returns the AI configuration for audio transcription with fallback to global config
func (c *Config) GetTranscribeConfig() OperationAIConfig {
	config := c.AI.Transcribe

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply transcribe-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.TranscribeAudio == "" {
		config.CustomPrompts.SystemPrompts.TranscribeAudio = c.AI.CustomPrompts.SystemPrompts.TranscribeAudio
	}
	if config.CustomPrompts.UserPrompts.TranscribeAudio == "" {
		config.CustomPrompts.UserPrompts.TranscribeAudio = c.AI.CustomPrompts.UserPrompts.TranscribeAudio
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.TranscribeAudioFile == "" {
		config.CustomPrompts.SystemPrompts.TranscribeAudioFile = c.AI.CustomPrompts.SystemPrompts.TranscribeAudioFile
	}
	if config.CustomPrompts.UserPrompts.TranscribeAudioFile == "" {
		config.CustomPrompts.UserPrompts.TranscribeAudioFile = c.AI.CustomPrompts.UserPrompts.TranscribeAudioFile
	}

	return config
}

// GetLoadedAnalyzePrompts returns a copy of the loaded prompts for the analyze operation
func (c *Config) GetLoadedAnalyzePrompts() OperationLoadedPrompts {
	return GetPromptsForOperation("analyze")
}

// GetLoadedQuestionPrompts returns a copy of the loaded prompts for the question operation
func (c *Config) GetLoadedQuestionPrompts() OperationLoadedPrompts {
	return GetPromptsForOperation("question")
}

// GetLoadedTranscribePrompts returns a copy of the loaded prompts for the transcribe operation
func (c *Config) GetLoadedTranscribePrompts() OperationLoadedPrompts {
	return GetPromptsForOperation("transcribe")
}
