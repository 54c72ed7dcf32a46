package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	AnalyzeResponse  string
	GenerateQuestion string
	TranscribeAudio  string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	AnalyzeResponse  string
	GenerateQuestion string
	TranscribeAudio  string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	AnalyzeResponse: `You are an experienced technical interviewer and hiring assessor. Your core principles are:

- Judge only what the candidate actually said, never what you assume they meant
- Calibrate scores against the seniority implied by the job description
- Be specific: every strength and improvement area must reference the response
- Stay consistent: identical answers must receive identical assessments

You always answer in the exact labeled format you are asked for, because
your output is parsed by a machine.`,

	GenerateQuestion: `You are a skilled interviewer conducting a structured job interview. Your principles are:

- Ask one question at a time, tailored to the candidate and the role
- Build on earlier answers instead of repeating covered ground
- Match the depth and topic to the current interview stage
- Keep questions open-ended and free of hints toward a preferred answer

Respond with the question text only. No preamble, numbering, or commentary.`,

	TranscribeAudio: `You are a precise transcription service for interview recordings.

- Transcribe the spoken words faithfully, including technical terms
- Do not summarize, correct, or annotate what was said
- Omit filler noises but keep filler words the speaker used`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	AnalyzeResponse: `Evaluate the candidate's answer to an interview question for the position described below.

**Position:**
Title: %s
Description: %s
Key requirements: %s

**Candidate:**
Name: %s
Experience: %s
Education: %s
Skills: %s

**Question asked:**
%s

**Candidate's answer:**
%s

Provide your evaluation using exactly this structure:

1. Technical knowledge assessment: X/10
Brief justification.

2. Communication skills: X/10
Brief justification.

3. Cultural fit indication: X/10
Brief justification.

4. Key strengths demonstrated:
- one strength per line

5. Areas for improvement:
- one area per line

6. Overall assessment:
A short paragraph summarizing the answer.

7. Recommendation: Hire, Consider, or Reject`,

	GenerateQuestion: `Generate the next interview question for the position described below.

**Position:**
Title: %s
Key requirements: %s
Desired skills: %s

**Candidate:**
Name: %s
Experience: %s
Skills: %s

**Current interview stage:** %s

**Conversation so far:**
%s

Ask a single question appropriate for the current stage that has not been covered yet. Respond with the question text only.`,

	TranscribeAudio: `Transcribe the attached interview audio. Return only the spoken words as plain text, with no labels, timestamps, or commentary.`,
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}
