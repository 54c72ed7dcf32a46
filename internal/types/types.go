package types

import "strings"

// TurnRole identifies who produced a conversation turn.
type TurnRole string

const (
	RoleInterviewer TurnRole = "interviewer"
	RoleCandidate   TurnRole = "candidate"
)

// InterviewStage represents the current phase of an interview session.
type InterviewStage string

const (
	StageIntroduction InterviewStage = "introduction"
	StageTechnical    InterviewStage = "technical"
	StageBehavioral   InterviewStage = "behavioral"
	StageSituational  InterviewStage = "situational"
	StageClosing      InterviewStage = "closing"
)

// stageOrder fixes the forward-only progression of interview stages.
var stageOrder = []InterviewStage{
	StageIntroduction,
	StageTechnical,
	StageBehavioral,
	StageSituational,
	StageClosing,
}

// Next returns the stage that follows s. The closing stage is terminal
// and returns itself.
func (s InterviewStage) Next() InterviewStage {
	for i, stage := range stageOrder {
		if stage == s && i < len(stageOrder)-1 {
			return stageOrder[i+1]
		}
	}
	return StageClosing
}

// IsValid reports whether s is one of the known interview stages.
func (s InterviewStage) IsValid() bool {
	for _, stage := range stageOrder {
		if stage == s {
			return true
		}
	}
	return false
}

// SessionState represents the lifecycle state of an interview session.
type SessionState string

const (
	StateCreated    SessionState = "created"
	StateInProgress SessionState = "in_progress"
	StateCompleted  SessionState = "completed"
)

// Recommendation is the hiring recommendation extracted from an evaluation.
type Recommendation string

const (
	RecommendHire     Recommendation = "Hire"
	RecommendConsider Recommendation = "Consider"
	RecommendReject   Recommendation = "Reject"
)

// ParseRecommendation maps free-form text to a Recommendation,
// falling back to Consider for anything unrecognized.
func ParseRecommendation(s string) Recommendation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hire":
		return RecommendHire
	case "reject":
		return RecommendReject
	default:
		return RecommendConsider
	}
}

// JobContext describes the position the candidate is interviewing for.
type JobContext struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Skills       []string `json:"skills"`
}

// CandidateContext describes the candidate being interviewed.
type CandidateContext struct {
	Name       string `json:"name"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
}

// ConversationTurn is a single utterance in the interview transcript.
type ConversationTurn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}

// Session carries the full interview state between invocations. The
// engine itself is stateless: callers pass the session in with each
// turn and persist the returned copy.
type Session struct {
	State        SessionState       `json:"state"`
	Stage        InterviewStage     `json:"stage"`
	TurnsInStage int                `json:"turnsInStage"`
	History      []ConversationTurn `json:"history"`
}

// NewSession returns a session positioned at the start of an interview.
func NewSession() Session {
	return Session{
		State: StateCreated,
		Stage: StageIntroduction,
	}
}

// Evaluation is the structured assessment of a single candidate response.
type Evaluation struct {
	TechnicalScore      int            `json:"technicalScore"`      // 0-10
	CommunicationScore  int            `json:"communicationScore"`  // 0-10
	CulturalFitScore    int            `json:"culturalFitScore"`    // 0-10
	Strengths           []string       `json:"strengths"`           // Observed strengths
	AreasForImprovement []string       `json:"areasForImprovement"` // Observed gaps
	OverallAssessment   string         `json:"overallAssessment"`   // Narrative summary
	Recommendation      Recommendation `json:"recommendation"`      // Hire, Consider, or Reject
}

// AnalyzeResponseInput represents the input for analyzing a candidate response.
type AnalyzeResponseInput struct {
	Question  string           `json:"question"`
	Response  string           `json:"response"`
	Job       JobContext       `json:"job"`
	Candidate CandidateContext `json:"candidate"`
}

// GenerateQuestionInput represents the input for generating the next question.
type GenerateQuestionInput struct {
	Job       JobContext         `json:"job"`
	Candidate CandidateContext   `json:"candidate"`
	Stage     InterviewStage     `json:"stage"`
	History   []ConversationTurn `json:"history"`
}

// TranscriptionResult wraps a transcribed audio response.
type TranscriptionResult struct {
	Text string `json:"text"`
}

// QuestionResult wraps a generated interviewer question.
type QuestionResult struct {
	Question string         `json:"question"`
	Stage    InterviewStage `json:"stage"`
}

// TurnResult is the outcome of one completed interview turn.
type TurnResult struct {
	Transcription string     `json:"transcription,omitempty"`
	Evaluation    Evaluation `json:"evaluation"`
	NextQuestion  string     `json:"nextQuestion"`
	Session       Session    `json:"session"`
}
