package ai

import (
	"testing"

	"intervista/internal/types"
)

func TestFormatHistory(t *testing.T) {
	tests := []struct {
		name    string
		history []types.ConversationTurn
		want    string
	}{
		{
			name:    "empty history",
			history: nil,
			want:    "(no conversation yet)",
		},
		{
			name: "single turn",
			history: []types.ConversationTurn{
				{Role: types.RoleInterviewer, Content: "Tell me about yourself."},
			},
			want: "interviewer: Tell me about yourself.",
		},
		{
			name: "alternating turns keep order",
			history: []types.ConversationTurn{
				{Role: types.RoleInterviewer, Content: "Tell me about yourself."},
				{Role: types.RoleCandidate, Content: "I build backend services."},
				{Role: types.RoleInterviewer, Content: "Which languages?"},
			},
			want: "interviewer: Tell me about yourself.\ncandidate: I build backend services.\ninterviewer: Which languages?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatHistory(tt.history); got != tt.want {
				t.Errorf("formatHistory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePrompt(t *testing.T) {
	tests := []struct {
		name     string
		fromFile string
		fromCfg  string
		fromDef  string
		want     string
	}{
		{"file wins", "file", "config", "default", "file"},
		{"config beats default", "", "config", "default", "config"},
		{"default as last resort", "", "", "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvePrompt(tt.fromFile, tt.fromCfg, tt.fromDef); got != tt.want {
				t.Errorf("resolvePrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}
