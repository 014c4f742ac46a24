package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/hmakino/quizrush/internal/countdown"
	"github.com/hmakino/quizrush/internal/events"
	"github.com/hmakino/quizrush/internal/quiz"
)

// Broadcaster defines what the session layer needs from the websocket
// gateway: pushing an event to every connection watching a session.
type Broadcaster interface {
	Broadcast(sessionID uuid.UUID, event events.Event)
}

// StartConfig configures a new quiz session. Zero fields fall back to the
// defaults the selection screen offers.
type StartConfig struct {
	Source        quiz.BookSource
	QuestionCount int
	// TimeLimitSec is the per-question budget; the session total is
	// TimeLimitSec * QuestionCount.
	TimeLimitSec int
}

func (c *StartConfig) applyDefaults() {
	if c.Source == "" {
		c.Source = quiz.DefaultBookSource
	}
	if c.QuestionCount <= 0 {
		c.QuestionCount = quiz.DefaultQuestionCount
	}
	if c.TimeLimitSec <= 0 {
		c.TimeLimitSec = quiz.DefaultTimeLimitSec
	}
}

// Validate rejects configurations the selection screen would never produce.
func (c StartConfig) Validate() error {
	if !c.Source.Valid() {
		return fmt.Errorf("unknown book source %q", c.Source)
	}
	if !containsInt(quiz.QuestionCountOptions, c.QuestionCount) {
		return fmt.Errorf("question count %d is not an offered option", c.QuestionCount)
	}
	if !containsInt(quiz.TimeLimitOptions, c.TimeLimitSec) {
		return fmt.Errorf("time limit %ds is not an offered option", c.TimeLimitSec)
	}
	return nil
}

func containsInt(options []int, v int) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// Manager owns the live sessions: it starts them, routes answer selection
// and submission to the right session, and tears them down.
type Manager struct {
	clock       clockwork.Clock
	questions   quiz.QuestionRepository
	attempts    quiz.AttemptRepository
	publisher   events.Publisher
	broadcaster Broadcaster

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewManager wires a manager over its storage and event dependencies.
// publisher may be nil (events are then only broadcast); broadcaster may be
// nil (no websocket surface).
func NewManager(clock clockwork.Clock, questions quiz.QuestionRepository, attempts quiz.AttemptRepository, publisher events.Publisher, broadcaster Broadcaster) *Manager {
	if publisher == nil {
		publisher = events.NewLogPublisher()
	}
	return &Manager{
		clock:       clock,
		questions:   questions,
		attempts:    attempts,
		publisher:   publisher,
		broadcaster: broadcaster,
		sessions:    make(map[uuid.UUID]*Session),
	}
}

// StartSession draws a question set, starts the authoritative countdown and
// returns the new session. confirm may be nil; it is only consulted for
// manual submits with unanswered questions.
func (m *Manager) StartSession(ctx context.Context, cfg StartConfig, confirm Confirmer) (*Session, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}

	questions, err := m.questions.QuestionsForSource(ctx, cfg.Source, cfg.QuestionCount)
	if err != nil {
		return nil, fmt.Errorf("drawing questions: %w", err)
	}

	sess := &Session{
		ID:           uuid.New(),
		Source:       cfg.Source,
		TimeLimitSec: cfg.TimeLimitSec,
		TotalSeconds: cfg.TimeLimitSec * len(questions),
		StartedAt:    m.clock.Now(),
		Questions:    questions,
	}

	notifier := countdown.NewNotifier(m.clock, func(n countdown.Notification) {
		m.emit(sess.ID, events.TypeWarningRaised, events.WarningRaisedPayload{
			Level:            n.Level,
			Message:          n.Message,
			RemainingSeconds: sess.Timer.Snapshot().RemainingSeconds,
		})
	})
	sess.Timer = countdown.NewTimer(sess.TotalSeconds, m.clock, notifier, func() {
		m.emit(sess.ID, events.TypeTimeExpired, events.TimeExpiredPayload{ExpiredAt: m.clock.Now()})
		if _, err := sess.Guard.Submit(context.Background(), ReasonTimeUp); err != nil {
			log.Warn().Err(err).Str("session_id", sess.ID.String()).Msg("time-up auto-submit not accepted")
		}
	})

	sess.Guard = NewGuard(questions, sess.Expired, m.submitFunc(sess), confirm, func(*Outcome) {
		sess.Timer.Stop()
	})

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	sess.Timer.Start()
	m.emit(sess.ID, events.TypeSessionStarted, events.SessionStartedPayload{
		BookSource:    string(sess.Source),
		QuestionCount: len(questions),
		TotalSeconds:  sess.TotalSeconds,
		StartedAt:     sess.StartedAt,
		DeadlineAt:    sess.StartedAt.Add(time.Duration(sess.TotalSeconds) * time.Second),
	})
	log.Info().
		Str("session_id", sess.ID.String()).
		Str("book_source", string(sess.Source)).
		Int("question_count", len(questions)).
		Int("total_seconds", sess.TotalSeconds).
		Msg("session started")
	return sess, nil
}

// submitFunc builds the external-submit operation the session's guard calls:
// grade the frozen payload, persist the attempt, publish the event.
func (m *Manager) submitFunc(sess *Session) SubmitFunc {
	return func(ctx context.Context, reason SubmitReason, answers []quiz.AnswerSubmission) (*Outcome, error) {
		picked := make(map[string]string, len(answers))
		for _, a := range answers {
			if a.Answer != nil {
				picked[a.QuestionID] = *a.Answer
			}
		}

		results := quiz.Evaluate(sess.Questions, picked)
		summary := quiz.Summarize(results)
		submittedAt := m.clock.Now()

		err := m.attempts.SaveAttempt(ctx, quiz.Attempt{
			SessionID:   sess.ID.String(),
			Source:      sess.Source,
			Answers:     answers,
			Correct:     summary.CorrectQuestions,
			Total:       summary.TotalQuestions,
			SubmittedAt: submittedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("persisting attempt: %w", err)
		}

		m.emit(sess.ID, events.TypeAnswersSubmitted, events.AnswersSubmittedPayload{
			Reason:      string(reason),
			Correct:     summary.CorrectQuestions,
			Total:       summary.TotalQuestions,
			SubmittedAt: submittedAt,
		})
		log.Info().
			Str("session_id", sess.ID.String()).
			Str("reason", string(reason)).
			Int("correct", summary.CorrectQuestions).
			Int("total", summary.TotalQuestions).
			Msg("answers submitted")

		return &Outcome{
			Results:  results,
			Summary:  summary,
			Progress: quiz.AggregateByCategory(results),
		}, nil
	}
}

// Get returns a live session by ID.
func (m *Manager) Get(sessionID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Has reports whether a live session exists for the ID.
func (m *Manager) Has(sessionID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[sessionID]
	return ok
}

// SelectAnswer records a choice on the session. It reports false when the
// session no longer accepts answers (expired, submitting or submitted).
func (m *Manager) SelectAnswer(sessionID uuid.UUID, questionID, optionID string) (bool, error) {
	sess, err := m.Get(sessionID)
	if err != nil {
		return false, err
	}
	return sess.Guard.SelectAnswer(questionID, optionID), nil
}

// SubmitAnswers runs a manual submission for the session.
func (m *Manager) SubmitAnswers(ctx context.Context, sessionID uuid.UUID) (*Outcome, error) {
	sess, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Guard.Submit(ctx, ReasonManual)
}

// TimerSnapshot returns the authoritative countdown state for the session.
func (m *Manager) TimerSnapshot(sessionID uuid.UUID) (countdown.Snapshot, error) {
	sess, err := m.Get(sessionID)
	if err != nil {
		return countdown.Snapshot{}, err
	}
	return sess.Timer.Snapshot(), nil
}

// CloseSession stops the session's countdown and forgets it. Closing an
// unknown session is a no-op.
func (m *Manager) CloseSession(sessionID uuid.UUID) {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	if ok {
		sess.Timer.Stop()
		log.Debug().Str("session_id", sessionID.String()).Msg("session closed")
	}
}

// Close stops every live session. Called on shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.Timer.Stop()
	}
}

// emit publishes an event and pushes it to the websocket gateway.
func (m *Manager) emit(sessionID uuid.UUID, eventType string, payload any) {
	event := events.New(sessionID, eventType, m.clock.Now(), payload)
	if err := m.publisher.Publish(context.Background(), event); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("event publish failed")
	}
	if m.broadcaster != nil {
		m.broadcaster.Broadcast(sessionID, event)
	}
}
