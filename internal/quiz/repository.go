package quiz

import (
	"context"
	"errors"
)

var (
	// ErrQuestionBankEmpty means the requested source has no questions loaded.
	ErrQuestionBankEmpty = errors.New("question bank is empty for the requested source")
	// ErrAttemptExists means the session already has a persisted submission.
	ErrAttemptExists = errors.New("attempt already submitted for this session")
	// ErrAttemptNotFound means no submission exists for the session.
	ErrAttemptNotFound = errors.New("attempt not found")
)

// QuestionRepository defines what session handling needs from question
// storage.
type QuestionRepository interface {
	// QuestionsForSource returns up to count questions drawn from the given
	// bank ("both" mixes the banks). Returned questions carry answer keys;
	// callers redact before sending to clients.
	QuestionsForSource(ctx context.Context, source BookSource, count int) ([]Question, error)
	// PutQuestions loads questions into the bank, replacing entries with the
	// same ID.
	PutQuestions(ctx context.Context, questions []Question) error
}

// AttemptRepository defines what session handling needs from attempt
// storage.
type AttemptRepository interface {
	// SaveAttempt persists a graded submission; a second save for the same
	// session returns ErrAttemptExists.
	SaveAttempt(ctx context.Context, attempt Attempt) error
	GetAttempt(ctx context.Context, sessionID string) (Attempt, error)
}
