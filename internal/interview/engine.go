// Package interview implements the interview turn lifecycle: asking
// questions, analyzing candidate answers, and advancing a session
// through its stages. The engine holds no session state of its own;
// callers pass a session in with each call and persist the returned
// copy.
package interview

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"intervista/internal/config"
	"intervista/internal/errors"
	"intervista/internal/types"
)

// Engine coordinates the analyzer, generator, and transcriber for one
// interview turn at a time.
type Engine struct {
	analyzer      *Analyzer
	generator     *Generator
	transcriber   *Transcriber
	turnsPerStage int
	logger        *errors.Logger
}

// NewEngine assembles an engine from its three model-backed components.
func NewEngine(analyzer *Analyzer, generator *Generator, transcriber *Transcriber, cfg config.InterviewConfig, logger *errors.Logger) *Engine {
	turnsPerStage := cfg.TurnsPerStage
	if turnsPerStage < 1 {
		turnsPerStage = 1
	}

	return &Engine{
		analyzer:      analyzer,
		generator:     generator,
		transcriber:   transcriber,
		turnsPerStage: turnsPerStage,
		logger:        logger,
	}
}

// Ask generates the next interviewer question and records it in the
// session. A created session moves to in progress on its first question.
// The session passed in is never mutated; the updated copy is returned.
func (e *Engine) Ask(ctx context.Context, session types.Session, job types.JobContext, candidate types.CandidateContext) (string, types.Session, error) {
	if session.State == types.StateCompleted {
		return "", session, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"interview session is already completed", nil)
	}

	question, err := e.generator.NextQuestion(ctx, types.GenerateQuestionInput{
		Job:       job,
		Candidate: candidate,
		Stage:     session.Stage,
		History:   session.History,
	})
	if err != nil {
		return "", session, err
	}

	session.History = appendTurn(session.History, types.RoleInterviewer, question)
	if session.State == types.StateCreated {
		session.State = types.StateInProgress
	}

	e.logger.Debug("Question asked",
		"stage", session.Stage,
		"history_turns", len(session.History))

	return question, session, nil
}

// Respond processes one candidate answer: the answer is analyzed and
// the follow-up question generated concurrently, and only when both
// succeed is the turn committed to the session. On any failure the
// returned error carries the cause and the caller's session is left
// exactly as it was, so a retry replays the same turn.
func (e *Engine) Respond(ctx context.Context, session types.Session, job types.JobContext, candidate types.CandidateContext, response string) (types.TurnResult, error) {
	if err := e.validateRespond(session, response); err != nil {
		return types.TurnResult{}, err
	}

	question := session.History[len(session.History)-1].Content

	// The follow-up question is generated for the stage the session
	// will be in after this turn, against a history that already
	// includes the candidate's answer.
	nextStage, advanced := e.stageAfterTurn(session)
	historyWithAnswer := appendTurn(session.History, types.RoleCandidate, response)

	var (
		evaluation   types.Evaluation
		nextQuestion string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		evaluation, err = e.analyzer.Analyze(gctx, types.AnalyzeResponseInput{
			Question:  question,
			Response:  response,
			Job:       job,
			Candidate: candidate,
		})
		return err
	})
	g.Go(func() error {
		var err error
		nextQuestion, err = e.generator.NextQuestion(gctx, types.GenerateQuestionInput{
			Job:       job,
			Candidate: candidate,
			Stage:     nextStage,
			History:   historyWithAnswer,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		e.logger.LogError(err, "Interview turn failed, session unchanged",
			"stage", session.Stage)
		return types.TurnResult{}, err
	}

	session.History = appendTurn(historyWithAnswer, types.RoleInterviewer, nextQuestion)
	if session.State == types.StateCreated {
		session.State = types.StateInProgress
	}
	if advanced {
		session.Stage = nextStage
		session.TurnsInStage = 0
	} else {
		session.TurnsInStage++
		if session.Stage == types.StageClosing && session.TurnsInStage >= e.turnsPerStage {
			session.State = types.StateCompleted
		}
	}

	e.logger.Debug("Interview turn completed",
		"stage", session.Stage,
		"turns_in_stage", session.TurnsInStage,
		"state", session.State,
		"recommendation", evaluation.Recommendation)

	return types.TurnResult{
		Evaluation:   evaluation,
		NextQuestion: nextQuestion,
		Session:      session,
	}, nil
}

// RespondAudio transcribes the candidate's recorded answer and then
// processes it like a text response. An empty payload is rejected
// before any model call is made.
func (e *Engine) RespondAudio(ctx context.Context, session types.Session, job types.JobContext, candidate types.CandidateContext, audio []byte, mimeType string) (types.TurnResult, error) {
	transcript, err := e.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return types.TurnResult{}, err
	}

	result, err := e.Respond(ctx, session, job, candidate, transcript)
	if err != nil {
		return types.TurnResult{}, err
	}

	result.Transcription = transcript
	return result, nil
}

// End marks the session completed. Ending an already completed session
// is a no-op; the state never moves backward.
func (e *Engine) End(session types.Session) types.Session {
	if session.State != types.StateCompleted {
		session.State = types.StateCompleted
		e.logger.Debug("Interview session ended",
			"stage", session.Stage,
			"history_turns", len(session.History))
	}
	return session
}

// validateRespond checks that the session can accept a candidate answer.
func (e *Engine) validateRespond(session types.Session, response string) error {
	if session.State == types.StateCompleted {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"interview session is already completed", nil)
	}
	if response == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"candidate response is empty", nil)
	}
	if len(session.History) == 0 || session.History[len(session.History)-1].Role != types.RoleInterviewer {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"no pending interviewer question to respond to", nil)
	}
	return nil
}

// stageAfterTurn returns the stage the session will be in once the
// current turn is committed, and whether that is an advance. The
// closing stage never advances further.
func (e *Engine) stageAfterTurn(session types.Session) (types.InterviewStage, bool) {
	if session.Stage != types.StageClosing && session.TurnsInStage+1 >= e.turnsPerStage {
		return session.Stage.Next(), true
	}
	return session.Stage, false
}

// appendTurn returns a new history slice with the turn appended. The
// input slice keeps its own backing array, so sessions held by callers
// are never mutated through a shared append.
func appendTurn(history []types.ConversationTurn, role types.TurnRole, content string) []types.ConversationTurn {
	next := slices.Clone(history)
	return append(next, types.ConversationTurn{Role: role, Content: content})
}
