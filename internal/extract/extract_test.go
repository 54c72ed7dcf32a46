package extract

import (
	"reflect"
	"testing"

	"intervista/internal/types"
)

const sampleEvaluation = `1. Technical knowledge assessment: 7/10
The candidate showed solid fundamentals.

2. Communication skills: 8/10
Clear and structured answers.

3. Cultural fit indication: 6/10

4. Key strengths demonstrated:
- Strong grasp of distributed systems
- Concrete examples from past work

5. Areas for improvement:
- Depth on database internals

6. Overall assessment:
A promising candidate with practical experience and a few gaps.

7. Recommendation: Hire`

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		label string
		want  int
	}{
		{
			name:  "simple score line",
			text:  "Technical knowledge assessment: 7/10",
			label: "Technical knowledge assessment",
			want:  7,
		},
		{
			name:  "score in full evaluation",
			text:  sampleEvaluation,
			label: "Communication skills",
			want:  8,
		},
		{
			name:  "case insensitive label",
			text:  "technical KNOWLEDGE assessment: 9/10",
			label: "Technical knowledge assessment",
			want:  9,
		},
		{
			name:  "score separated from label",
			text:  "Cultural fit indication:\nthe candidate scored 6/10 here",
			label: "Cultural fit indication",
			want:  6,
		},
		{
			name:  "spaces around slash",
			text:  "Communication skills: 8 / 10",
			label: "Communication skills",
			want:  8,
		},
		{
			name:  "perfect score",
			text:  "Technical knowledge assessment: 10/10",
			label: "Technical knowledge assessment",
			want:  10,
		},
		{
			name:  "label absent",
			text:  "no scores anywhere",
			label: "Technical knowledge assessment",
			want:  0,
		},
		{
			name:  "label present but no score",
			text:  "Technical knowledge assessment: excellent",
			label: "Technical knowledge assessment",
			want:  0,
		},
		{
			name:  "empty text",
			text:  "",
			label: "Technical knowledge assessment",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.text, tt.label); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		label string
		want  []string
	}{
		{
			name:  "bulleted list ends at blank line",
			text:  "Key strengths demonstrated:\n- A\n- B\n\nNext section",
			label: "Key strengths demonstrated",
			want:  []string{"- A", "- B"},
		},
		{
			name:  "list ends at numbered heading",
			text:  sampleEvaluation,
			label: "Areas for improvement",
			want:  []string{"- Depth on database internals"},
		},
		{
			name:  "full evaluation strengths",
			text:  sampleEvaluation,
			label: "Key strengths demonstrated",
			want: []string{
				"- Strong grasp of distributed systems",
				"- Concrete examples from past work",
			},
		},
		{
			name:  "list runs to end of text",
			text:  "Key strengths demonstrated:\n- only item",
			label: "Key strengths demonstrated",
			want:  []string{"- only item"},
		},
		{
			name:  "whitespace-only line terminates section",
			text:  "Key strengths demonstrated:\n- A\n   \n- B",
			label: "Key strengths demonstrated",
			want:  []string{"- A"},
		},
		{
			name:  "label absent",
			text:  "nothing relevant here",
			label: "Key strengths demonstrated",
			want:  []string{},
		},
		{
			name:  "empty text",
			text:  "",
			label: "Key strengths demonstrated",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := List(tt.text, tt.label); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("List() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSection(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		label string
		want  string
	}{
		{
			name:  "section ends at numbered heading",
			text:  sampleEvaluation,
			label: "Overall assessment",
			want:  "A promising candidate with practical experience and a few gaps.",
		},
		{
			name:  "section ends at blank line",
			text:  "Overall assessment:\nGood answer.\n\nTrailing notes",
			label: "Overall assessment",
			want:  "Good answer.",
		},
		{
			name:  "inline section content",
			text:  "Overall assessment: concise and correct",
			label: "Overall assessment",
			want:  "concise and correct",
		},
		{
			name:  "label absent",
			text:  "no sections",
			label: "Overall assessment",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Section(tt.text, tt.label); got != tt.want {
				t.Errorf("Section() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecommendation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.Recommendation
	}{
		{"hire", "Recommendation: Hire", types.RecommendHire},
		{"reject lowercase", "recommendation: reject", types.RecommendReject},
		{"consider", "Recommendation: Consider", types.RecommendConsider},
		{"embedded in evaluation", sampleEvaluation, types.RecommendHire},
		{"missing defaults to consider", "no verdict given", types.RecommendConsider},
		{"unrecognized verdict defaults to consider", "Recommendation: maybe", types.RecommendConsider},
		{"empty text", "", types.RecommendConsider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recommendation(tt.text); got != tt.want {
				t.Errorf("Recommendation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func BenchmarkScore(b *testing.B) {
	for b.Loop() {
		Score(sampleEvaluation, "Technical knowledge assessment")
	}
}

func BenchmarkList(b *testing.B) {
	for b.Loop() {
		List(sampleEvaluation, "Key strengths demonstrated")
	}
}
