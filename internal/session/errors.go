package session

import "errors"

var (
	// ErrSessionNotFound means no live session matches the given ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSubmissionInFlight means a submission is already running; the new
	// attempt was dropped without side effects.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrAlreadySubmitted means the session completed a submission earlier.
	ErrAlreadySubmitted = errors.New("session already submitted")
	// ErrSubmissionDeclined means the user declined the unanswered-questions
	// confirmation; nothing was submitted and nothing changed.
	ErrSubmissionDeclined = errors.New("submission declined by user")
)
