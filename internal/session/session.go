package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/hmakino/quizrush/internal/countdown"
	"github.com/hmakino/quizrush/internal/quiz"
)

// Session is one live quiz run: a question set, the authoritative countdown
// for the whole set, and the guard serializing its submission.
type Session struct {
	ID           uuid.UUID
	Source       quiz.BookSource
	TimeLimitSec int
	TotalSeconds int
	StartedAt    time.Time
	Questions    []quiz.Question

	Timer *countdown.Timer
	Guard *Guard
}

// RedactedQuestions returns the question set without answer keys, for
// sending to a client at session start.
func (s *Session) RedactedQuestions() []quiz.Question {
	redacted := make([]quiz.Question, 0, len(s.Questions))
	for _, q := range s.Questions {
		redacted = append(redacted, q.Redacted())
	}
	return redacted
}

// Expired reports whether the countdown has run out.
func (s *Session) Expired() bool {
	snap := s.Timer.Snapshot()
	return snap.TotalSeconds > 0 && snap.RemainingSeconds <= 0
}
