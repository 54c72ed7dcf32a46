package config

import (
	"sync"
)

var (
	loadedPrompts AllLoadedPrompts
	promptsMu     sync.RWMutex
)

// LoadedPrompts holds the content of prompts loaded from files
type LoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// LoadedSystemPrompts contains loaded system-level instructions
type LoadedSystemPrompts struct {
	AnalyzeResponse  string
	GenerateQuestion string
	TranscribeAudio  string
}

// LoadedUserPrompts contains loaded user-level prompt templates
type LoadedUserPrompts struct {
	AnalyzeResponse  string
	GenerateQuestion string
	TranscribeAudio  string
}

// OperationLoadedPrompts holds loaded prompts for a specific operation
type OperationLoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// AllLoadedPrompts holds all loaded prompts for all operations
type AllLoadedPrompts struct {
	Global     LoadedPrompts
	Analyze    OperationLoadedPrompts
	Question   OperationLoadedPrompts
	Transcribe OperationLoadedPrompts
}

// GetPromptsForOperation returns a copy of the loaded prompts for an
// operation type. Safe for concurrent use with the prompt file watcher.
func GetPromptsForOperation(operationType string) OperationLoadedPrompts {
	promptsMu.RLock()
	defer promptsMu.RUnlock()

	switch operationType {
	case "analyze":
		return loadedPrompts.Analyze
	case "question":
		return loadedPrompts.Question
	case "transcribe":
		return loadedPrompts.Transcribe
	default:
		return OperationLoadedPrompts{
			SystemPrompts: loadedPrompts.Global.SystemPrompts,
			UserPrompts:   loadedPrompts.Global.UserPrompts,
		}
	}
}
