package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hmakino/quizrush/internal/quiz"
)

// SubmitReason distinguishes a user-initiated submit from the time-up
// auto-submit. Time-up never prompts for confirmation.
type SubmitReason string

const (
	ReasonManual SubmitReason = "manual"
	ReasonTimeUp SubmitReason = "time-up"
)

// Outcome is what a successful submission produces.
type Outcome struct {
	Results  []quiz.Result
	Summary  quiz.Summary
	Progress []quiz.CategoryProgress
}

// SubmitFunc performs the external submit operation for a frozen answer
// payload. It is called at most once per accepted Submit.
type SubmitFunc func(ctx context.Context, reason SubmitReason, answers []quiz.AnswerSubmission) (*Outcome, error)

// Confirmer asks the user whether to submit with unanswered questions.
type Confirmer interface {
	ConfirmSubmit(unanswered int) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(unanswered int) bool

func (f ConfirmerFunc) ConfirmSubmit(unanswered int) bool { return f(unanswered) }

// AutoConfirm accepts every submission without prompting. Used by the HTTP
// surface, where the client UI already ran the confirmation dialog.
var AutoConfirm Confirmer = ConfirmerFunc(func(int) bool { return true })

// Guard serializes submission for one session.
//
// It admits at most one in-flight submission, freezes the answer payload at
// the moment a submit is accepted, rejects answer mutation after expiry or
// while submitting, and keeps the session retryable after a failed submit.
type Guard struct {
	questions []quiz.Question
	known     map[string]quiz.Question
	expired   func() bool
	submitFn  SubmitFunc
	confirm   Confirmer
	onResults func(*Outcome)

	mu         sync.Mutex
	answers    map[string]string
	submitting bool
	submitted  bool
	lastErr    error
}

// NewGuard builds a guard over the session's question set. expired reports
// whether the countdown has run out; confirm may be nil (defaults to
// AutoConfirm); onResults may be nil.
func NewGuard(questions []quiz.Question, expired func() bool, submitFn SubmitFunc, confirm Confirmer, onResults func(*Outcome)) *Guard {
	if confirm == nil {
		confirm = AutoConfirm
	}
	known := make(map[string]quiz.Question, len(questions))
	for _, q := range questions {
		known[q.ID] = q
	}
	return &Guard{
		questions: questions,
		known:     known,
		expired:   expired,
		submitFn:  submitFn,
		confirm:   confirm,
		onResults: onResults,
		answers:   make(map[string]string),
	}
}

// SelectAnswer records a choice for a question. It is a no-op — returning
// false — once time is up, while a submission is in flight, or after a
// successful submission.
func (g *Guard) SelectAnswer(questionID, optionID string) bool {
	if g.expired != nil && g.expired() {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.submitting || g.submitted {
		return false
	}
	if _, ok := g.known[questionID]; !ok {
		return false
	}
	g.answers[questionID] = optionID
	return true
}

// Answers returns a copy of the current selections.
func (g *Guard) Answers() map[string]string {
	g.mu.Lock()
	defer g.mu.Unlock()
	answers := make(map[string]string, len(g.answers))
	for k, v := range g.answers {
		answers[k] = v
	}
	return answers
}

// Submitting reports whether a submission is currently in flight.
func (g *Guard) Submitting() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitting
}

// Submitted reports whether a submission already succeeded.
func (g *Guard) Submitted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitted
}

// LastError returns the most recent submission failure, if any.
func (g *Guard) LastError() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

// Unanswered counts questions without a selection.
func (g *Guard) Unanswered() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.questions) - len(g.answers)
}

// Submit runs the submission workflow for the given reason.
//
// A duplicate call while one is in flight (or after success) is dropped with
// a sentinel error and no side effects, which resolves the manual-vs-time-up
// race deterministically: whoever takes the flag first wins. Manual submits
// with unanswered questions go through the Confirmer; time-up submits never
// prompt. The payload is frozen before the external call starts, so answer
// changes racing the submission do not leak into it.
func (g *Guard) Submit(ctx context.Context, reason SubmitReason) (*Outcome, error) {
	g.mu.Lock()
	if g.submitting {
		g.mu.Unlock()
		log.Debug().Str("reason", string(reason)).Msg("submit dropped: already in flight")
		return nil, ErrSubmissionInFlight
	}
	if g.submitted {
		g.mu.Unlock()
		log.Debug().Str("reason", string(reason)).Msg("submit dropped: already submitted")
		return nil, ErrAlreadySubmitted
	}

	if reason == ReasonManual {
		unanswered := len(g.questions) - len(g.answers)
		if unanswered > 0 {
			// The confirmation can block on the user, so run it outside the
			// lock and re-check the flags afterwards: a time-up auto-submit
			// may have started while the dialog was open.
			g.mu.Unlock()
			if !g.confirm.ConfirmSubmit(unanswered) {
				return nil, ErrSubmissionDeclined
			}
			g.mu.Lock()
			if g.submitting {
				g.mu.Unlock()
				return nil, ErrSubmissionInFlight
			}
			if g.submitted {
				g.mu.Unlock()
				return nil, ErrAlreadySubmitted
			}
		}
	}

	payload := g.freezePayloadLocked()
	g.submitting = true
	g.lastErr = nil
	g.mu.Unlock()

	outcome, err := g.submitFn(ctx, reason, payload)

	g.mu.Lock()
	g.submitting = false
	if err != nil {
		g.lastErr = err
		g.mu.Unlock()
		log.Error().Err(err).Str("reason", string(reason)).Msg("submission failed")
		return nil, err
	}
	g.submitted = true
	g.mu.Unlock()

	if g.onResults != nil {
		g.onResults(outcome)
	}
	return outcome, nil
}

// freezePayloadLocked captures the submission payload in question order;
// unanswered questions carry a nil answer.
func (g *Guard) freezePayloadLocked() []quiz.AnswerSubmission {
	payload := make([]quiz.AnswerSubmission, 0, len(g.questions))
	for _, q := range g.questions {
		sub := quiz.AnswerSubmission{QuestionID: q.ID}
		if picked, ok := g.answers[q.ID]; ok {
			answer := picked
			sub.Answer = &answer
		}
		payload = append(payload, sub)
	}
	return payload
}
