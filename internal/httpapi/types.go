package httpapi

import (
	"time"

	"github.com/hmakino/quizrush/internal/countdown"
	"github.com/hmakino/quizrush/internal/quiz"
)

// startSessionResponse is the body of GET /questions. The client receives
// the question set and the total duration once; the server countdown stays
// authoritative.
type startSessionResponse struct {
	SessionID    string          `json:"sessionId"`
	Questions    []quiz.Question `json:"questions"`
	TimeLimitSec int             `json:"timeLimit"`
	TotalSeconds int             `json:"totalSeconds"`
	StartedAt    time.Time       `json:"startedAt"`
	DeadlineAt   time.Time       `json:"deadlineAt"`
}

// submitRequest is the body of POST /answers.
type submitRequest struct {
	SessionID string                  `json:"sessionId"`
	Answers   []quiz.AnswerSubmission `json:"answers"`
}

type submitResponse struct {
	Results          []quiz.Result           `json:"results"`
	Summary          quiz.Summary            `json:"summary"`
	CategoryProgress []quiz.CategoryProgress `json:"categoryProgress"`
}

// selectAnswerRequest is the body of POST /sessions/{sessionID}/answers.
type selectAnswerRequest struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type selectAnswerResponse struct {
	Accepted bool `json:"accepted"`
}

type timerResponse struct {
	Timer        countdown.Snapshot     `json:"timer"`
	Notification countdown.Notification `json:"notification"`
}

type errorResponse struct {
	Error string `json:"error"`
}
