package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewPromptWatcherDisabled(t *testing.T) {
	cfg := &Config{}

	watcher, err := NewPromptWatcher(cfg, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if watcher != nil {
		t.Error("Expected nil watcher when prompt reload is disabled")
	}
}

func TestNewPromptWatcherNoFiles(t *testing.T) {
	cfg := &Config{}
	cfg.AI.PromptReload.Enabled = true

	watcher, err := NewPromptWatcher(cfg, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if watcher != nil {
		t.Error("Expected nil watcher when no prompt files are configured")
	}
}

func TestPromptWatcherLifecycle(t *testing.T) {
	tempDir := t.TempDir()
	promptFile := filepath.Join(tempDir, "user.analyze.md")
	if err := os.WriteFile(promptFile, []byte("prompt content"), 0600); err != nil {
		t.Fatalf("Failed to create prompt file: %v", err)
	}

	cfg := &Config{}
	cfg.AI.PromptReload.Enabled = true
	cfg.AI.PromptReload.DebounceDelay = 10 * time.Millisecond
	cfg.AI.Analyze.CustomPrompts.UserPrompts.AnalyzeResponseFile = promptFile

	watcher, err := NewPromptWatcher(cfg, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	if watcher == nil {
		t.Fatal("Expected non-nil watcher")
	}

	if watcher.IsRunning() {
		t.Error("Watcher should not be running before Start")
	}

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}

	if !watcher.IsRunning() {
		t.Error("Watcher should be running after Start")
	}

	// Starting twice should fail
	if err := watcher.Start(); err == nil {
		t.Error("Expected error when starting an already running watcher")
	}

	files := watcher.GetWatchedFiles()
	if len(files) != 1 || files[0] != promptFile {
		t.Errorf("Unexpected watched files: %v", files)
	}

	if err := watcher.Stop(); err != nil {
		t.Fatalf("Failed to stop watcher: %v", err)
	}

	if watcher.IsRunning() {
		t.Error("Watcher should not be running after Stop")
	}

	// Stopping twice should be a no-op
	if err := watcher.Stop(); err != nil {
		t.Errorf("Unexpected error stopping a stopped watcher: %v", err)
	}
}

func TestPromptWatcherHasFileChanged(t *testing.T) {
	tempDir := t.TempDir()
	promptFile := filepath.Join(tempDir, "user.question.md")
	if err := os.WriteFile(promptFile, []byte("v1"), 0600); err != nil {
		t.Fatalf("Failed to create prompt file: %v", err)
	}

	cfg := &Config{}
	cfg.AI.PromptReload.Enabled = true
	cfg.AI.Question.CustomPrompts.UserPrompts.GenerateQuestionFile = promptFile

	watcher, err := NewPromptWatcher(cfg, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}

	if err := watcher.updateModTimes(); err != nil {
		t.Fatalf("Failed to record mod times: %v", err)
	}

	if watcher.hasFileChanged(promptFile) {
		t.Error("File should not be reported as changed immediately after recording")
	}

	// Force a newer modification time
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(promptFile, future, future); err != nil {
		t.Fatalf("Failed to update file times: %v", err)
	}

	if !watcher.hasFileChanged(promptFile) {
		t.Error("File should be reported as changed after modification")
	}

	// Deleting a previously tracked file counts as a change
	if err := os.Remove(promptFile); err != nil {
		t.Fatalf("Failed to remove prompt file: %v", err)
	}
	if !watcher.hasFileChanged(promptFile) {
		t.Error("Deleted file should be reported as changed")
	}
}
