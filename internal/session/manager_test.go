package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmakino/quizrush/internal/events"
	"github.com/hmakino/quizrush/internal/quiz"
)

// capturePublisher records every published event. Timer callbacks publish
// from other goroutines, so access is locked.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

func (p *capturePublisher) has(eventType string) bool {
	for _, t := range p.types() {
		if t == eventType {
			return true
		}
	}
	return false
}

type captureBroadcaster struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *captureBroadcaster) Broadcast(_ uuid.UUID, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *captureBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func newTestManager(t *testing.T) (*Manager, *clockwork.FakeClock, *capturePublisher, *captureBroadcaster) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	store := quiz.NewSeededMemoryStore()
	publisher := &capturePublisher{}
	broadcaster := &captureBroadcaster{}
	return NewManager(clock, store, store, publisher, broadcaster), clock, publisher, broadcaster
}

func TestManager_StartSessionDrawsQuestionsAndStartsTimer(t *testing.T) {
	manager, _, publisher, broadcaster := newTestManager(t)

	sess, err := manager.StartSession(context.Background(), StartConfig{
		Source:        quiz.BookSourceReadableCode,
		QuestionCount: 5,
		TimeLimitSec:  30,
	}, nil)
	require.NoError(t, err)

	assert.Len(t, sess.Questions, 5)
	assert.Equal(t, 150, sess.TotalSeconds)

	snap := sess.Timer.Snapshot()
	assert.True(t, snap.Running)
	assert.Equal(t, 150, snap.TotalSeconds)

	for _, q := range sess.RedactedQuestions() {
		assert.Empty(t, q.CorrectOption)
		assert.Empty(t, q.Explanation)
	}

	assert.True(t, publisher.has(events.TypeSessionStarted))
	assert.Equal(t, 1, broadcaster.count())
	assert.True(t, manager.Has(sess.ID))
}

func TestManager_StartSessionAppliesDefaults(t *testing.T) {
	manager, _, _, _ := newTestManager(t)

	sess, err := manager.StartSession(context.Background(), StartConfig{}, nil)
	require.NoError(t, err)

	assert.Equal(t, quiz.DefaultBookSource, sess.Source)
	assert.Equal(t, quiz.DefaultTimeLimitSec, sess.TimeLimitSec)
}

func TestManager_StartSessionRejectsInvalidConfig(t *testing.T) {
	manager, _, _, _ := newTestManager(t)

	_, err := manager.StartSession(context.Background(), StartConfig{Source: "fiction"}, nil)
	assert.Error(t, err)

	_, err = manager.StartSession(context.Background(), StartConfig{QuestionCount: 7}, nil)
	assert.Error(t, err)

	_, err = manager.StartSession(context.Background(), StartConfig{TimeLimitSec: 42}, nil)
	assert.Error(t, err)
}

func TestManager_ManualSubmitScoresAndPersists(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := quiz.NewSeededMemoryStore()
	publisher := &capturePublisher{}
	manager := NewManager(clock, store, store, publisher, nil)

	sess, err := manager.StartSession(context.Background(), StartConfig{
		Source:        quiz.BookSourceReadableCode,
		QuestionCount: 5,
		TimeLimitSec:  30,
	}, nil)
	require.NoError(t, err)

	for _, q := range sess.Questions {
		accepted, err := manager.SelectAnswer(sess.ID, q.ID, q.CorrectOption)
		require.NoError(t, err)
		require.True(t, accepted)
	}

	outcome, err := manager.SubmitAnswers(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, outcome.Summary.TotalQuestions)
	assert.Equal(t, 5, outcome.Summary.CorrectQuestions)
	assert.Equal(t, 100, outcome.Summary.CorrectRate)
	assert.NotEmpty(t, outcome.Progress)

	attempt, err := store.GetAttempt(context.Background(), sess.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 5, attempt.Correct)

	// The submission stops the countdown.
	assert.False(t, sess.Timer.Snapshot().Running)
	assert.True(t, publisher.has(events.TypeAnswersSubmitted))

	_, err = manager.SubmitAnswers(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestManager_TimeUpAutoSubmits(t *testing.T) {
	manager, clock, publisher, _ := newTestManager(t)

	sess, err := manager.StartSession(context.Background(), StartConfig{
		Source:        quiz.BookSourceReadableCode,
		QuestionCount: 5,
		TimeLimitSec:  30,
	}, nil)
	require.NoError(t, err)

	accepted, err := manager.SelectAnswer(sess.ID, sess.Questions[0].ID, sess.Questions[0].CorrectOption)
	require.NoError(t, err)
	require.True(t, accepted)

	require.Eventually(t, func() bool {
		clock.Advance(time.Second)
		return sess.Guard.Submitted()
	}, 10*time.Second, time.Millisecond)

	assert.True(t, publisher.has(events.TypeTimeExpired))
	assert.True(t, publisher.has(events.TypeAnswersSubmitted))

	// Late answers are rejected.
	accepted, err = manager.SelectAnswer(sess.ID, sess.Questions[1].ID, "A")
	require.NoError(t, err)
	assert.False(t, accepted)

	// The frozen submission kept the one answer given in time.
	store := manager.attempts
	attempt, err := store.GetAttempt(context.Background(), sess.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.Correct)
	assert.Equal(t, 5, attempt.Total)
}

func TestManager_UnknownSession(t *testing.T) {
	manager, _, _, _ := newTestManager(t)

	_, err := manager.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = manager.SelectAnswer(uuid.New(), "q1", "A")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = manager.SubmitAnswers(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = manager.TimerSnapshot(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_CloseSessionStopsTimer(t *testing.T) {
	manager, _, _, _ := newTestManager(t)

	sess, err := manager.StartSession(context.Background(), StartConfig{
		QuestionCount: 5,
		TimeLimitSec:  30,
	}, nil)
	require.NoError(t, err)

	manager.CloseSession(sess.ID)

	assert.False(t, manager.Has(sess.ID))
	assert.False(t, sess.Timer.Snapshot().Running)

	// Closing again is a no-op.
	manager.CloseSession(sess.ID)
}
