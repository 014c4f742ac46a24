package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hmakino/quizrush/internal/countdown"
)

// Event types published on the session event feed.
const (
	TypeSessionStarted   = "SessionStarted"
	TypeWarningRaised    = "WarningRaised"
	TypeTimeExpired      = "TimeExpired"
	TypeAnswersSubmitted = "AnswersSubmitted"
)

// Event is the envelope every publisher and the websocket gateway carry.
type Event struct {
	ID        uuid.UUID       `json:"event_id"`
	SessionID uuid.UUID       `json:"session_id"`
	Type      string          `json:"event_type"`
	CreatedAt time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// SessionStartedPayload is emitted once when a quiz session begins. Clients
// receive the duration once and count down locally; the server countdown is
// authoritative.
type SessionStartedPayload struct {
	BookSource    string    `json:"book_source"`
	QuestionCount int       `json:"question_count"`
	TotalSeconds  int       `json:"total_seconds"`
	StartedAt     time.Time `json:"started_at"`
	DeadlineAt    time.Time `json:"deadline_at"`
}

// WarningRaisedPayload is emitted whenever the countdown surfaces a
// notification (level transition or round-number reminder).
type WarningRaisedPayload struct {
	Level            countdown.Level `json:"level"`
	Message          string          `json:"message"`
	RemainingSeconds int             `json:"remaining_seconds"`
}

// TimeExpiredPayload is emitted once when the countdown reaches zero
// naturally.
type TimeExpiredPayload struct {
	ExpiredAt time.Time `json:"expired_at"`
}

// AnswersSubmittedPayload is emitted once per accepted submission.
type AnswersSubmittedPayload struct {
	Reason      string    `json:"reason"`
	Correct     int       `json:"correct"`
	Total       int       `json:"total"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// New builds an envelope around a payload, marshaling it to JSON. Marshal
// errors only happen for non-serializable payloads, which would be a
// programming error, so they panic.
func New(sessionID uuid.UUID, eventType string, createdAt time.Time, payload any) Event {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return Event{
		ID:        uuid.New(),
		SessionID: sessionID,
		Type:      eventType,
		CreatedAt: createdAt,
		Payload:   raw,
	}
}
