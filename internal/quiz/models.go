package quiz

import "time"

// BookSource identifies which question bank a session draws from.
type BookSource string

const (
	BookSourceReadableCode BookSource = "readableCode"
	BookSourcePrinciples   BookSource = "principles"
	BookSourceBoth         BookSource = "both"
)

// Valid reports whether the source is one of the known banks.
func (b BookSource) Valid() bool {
	switch b {
	case BookSourceReadableCode, BookSourcePrinciples, BookSourceBoth:
		return true
	}
	return false
}

// Session configuration option sets offered by the selection screen.
var (
	QuestionCountOptions = []int{5, 10, 15, 20, 25, 30}
	TimeLimitOptions     = []int{30, 45, 60, 75, 90}
)

const (
	DefaultBookSource    = BookSourceReadableCode
	DefaultQuestionCount = 10
	// DefaultTimeLimitSec is the per-question time budget in seconds.
	DefaultTimeLimitSec = 60
)

// Option is one labeled choice of a multiple-choice question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a single multiple-choice question. CorrectOption and
// Explanation are stripped before a question is handed to a client.
type Question struct {
	ID            string     `json:"id"`
	Source        BookSource `json:"-"`
	Category      string     `json:"category,omitempty"`
	Text          string     `json:"text"`
	Options       []Option   `json:"options"`
	CorrectOption string     `json:"-"`
	Explanation   string     `json:"-"`
}

// Redacted returns a copy safe to send to a client mid-session.
func (q Question) Redacted() Question {
	q.CorrectOption = ""
	q.Explanation = ""
	return q
}

// AnswerSubmission is one entry of a submit payload; Answer is nil for an
// unanswered question.
type AnswerSubmission struct {
	QuestionID string  `json:"questionId"`
	Answer     *string `json:"answer"`
}

// Result is the per-question outcome of a graded submission.
type Result struct {
	QuestionID    string   `json:"questionId"`
	Category      string   `json:"category"`
	Question      string   `json:"question"`
	Options       []Option `json:"options"`
	UserAnswer    *string  `json:"userAnswer"`
	CorrectAnswer string   `json:"correctAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	Explanation   string   `json:"explanation"`
}

// Summary aggregates a graded submission.
type Summary struct {
	TotalQuestions   int `json:"totalQuestions"`
	CorrectQuestions int `json:"correctQuestions"`
	CorrectRate      int `json:"correctRate"`
}

// Attempt is the persisted record of a submitted session.
type Attempt struct {
	SessionID   string             `json:"session_id"`
	Source      BookSource         `json:"source"`
	Answers     []AnswerSubmission `json:"answers"`
	Correct     int                `json:"correct"`
	Total       int                `json:"total"`
	SubmittedAt time.Time          `json:"submitted_at"`
}
