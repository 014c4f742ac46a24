package countdown

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// State is the lifecycle state of a Timer.
type State string

const (
	// StateIdle means the timer was configured with a non-positive total and
	// never ticks. Not an error.
	StateIdle State = "idle"
	// StateRunning means the countdown is live.
	StateRunning State = "running"
	// StateExpired is terminal: reached either by the countdown hitting zero
	// or by teardown via Stop.
	StateExpired State = "expired"
)

// Snapshot is the timer state as of the last tick. Values are copied out
// under lock, so a snapshot never tears.
type Snapshot struct {
	RemainingSeconds   int    `json:"remaining_seconds"`
	TotalSeconds       int    `json:"total_seconds"`
	Level              Level  `json:"warning_level"`
	Running            bool   `json:"is_running"`
	FormattedRemaining string `json:"formatted_remaining"`
}

// TimeUpFunc runs exactly once when the countdown reaches zero naturally.
// It is never called on Stop. Panics are the installer's problem.
type TimeUpFunc func()

// Timer is the session-wide countdown state machine.
//
// It owns remaining time, derives the warning level every tick, pushes
// level-transition notifications through its Notifier (once per level), and
// fires onTimeUp exactly once at natural expiry. Ticks are scheduled on the
// injected clock, so tests drive it with a fake clock.
type Timer struct {
	clock    clockwork.Clock
	notifier *Notifier
	onTimeUp TimeUpFunc

	mu           sync.Mutex
	total        int
	remaining    int
	state        State
	lastNotified Level
	pending      clockwork.Timer
}

// NewTimer builds a timer for totalSeconds. The timer does not tick until
// Start is called. notifier may be nil when the caller does not surface
// notifications; onTimeUp may be nil.
func NewTimer(totalSeconds int, clock clockwork.Clock, notifier *Notifier, onTimeUp TimeUpFunc) *Timer {
	if notifier == nil {
		notifier = NewNotifier(clock, nil)
	}
	return &Timer{
		clock:        clock,
		notifier:     notifier,
		onTimeUp:     onTimeUp,
		total:        totalSeconds,
		remaining:    max(totalSeconds, 0),
		state:        StateIdle,
		lastNotified: LevelNormal,
	}
}

// Notifier returns the notifier this timer emits through.
func (t *Timer) Notifier() *Notifier { return t.notifier }

// Start begins the countdown. A non-positive total leaves the timer Idle.
// Starting an already-running timer is a no-op.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateRunning {
		return
	}
	if t.total <= 0 {
		t.remaining = 0
		t.state = StateIdle
		log.Debug().Int("total_seconds", t.total).Msg("countdown idle: non-positive total")
		return
	}

	t.remaining = t.total
	t.state = StateRunning
	t.lastNotified = LevelNormal
	t.scheduleTickLocked()
	log.Debug().Int("total_seconds", t.total).Msg("countdown started")
}

// Reset tears the countdown down and restarts it from scratch with a new
// total. This is the only way the total changes after construction.
func (t *Timer) Reset(totalSeconds int) {
	t.Stop()
	t.mu.Lock()
	t.total = totalSeconds
	t.state = StateIdle
	t.mu.Unlock()
	t.Start()
}

// Stop cancels the pending tick and freezes the timer without firing
// onTimeUp. Idempotent; safe on a never-started timer.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	if t.state == StateRunning {
		t.state = StateExpired
		log.Debug().Int("remaining_seconds", t.remaining).Msg("countdown stopped")
	}
}

// Snapshot returns the current timer state.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		RemainingSeconds:   t.remaining,
		TotalSeconds:       t.total,
		Level:              Classify(t.remaining, t.total),
		Running:            t.state == StateRunning,
		FormattedRemaining: FormatClock(t.remaining),
	}
}

func (t *Timer) scheduleTickLocked() {
	t.pending = t.clock.AfterFunc(time.Second, t.tick)
}

type queuedNotification struct {
	message string
	level   Level
}

func (t *Timer) tick() {
	t.mu.Lock()
	if t.state != StateRunning {
		// Stop raced the scheduled tick; the countdown already ended.
		t.mu.Unlock()
		return
	}

	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = StateExpired
		t.lastNotified = LevelCritical
		t.pending = nil
		t.mu.Unlock()

		log.Info().Msg("countdown expired")
		t.notifier.Notify("Time's up! Submitting your answers.", LevelCritical)
		if t.onTimeUp != nil {
			t.onTimeUp()
		}
		return
	}

	queued := t.collectNotificationsLocked()
	t.scheduleTickLocked()
	t.mu.Unlock()

	for _, q := range queued {
		t.notifier.Notify(q.message, q.level)
	}
}

// collectNotificationsLocked decides which notifications this tick owes.
// Level transitions are announced once per level; the round-number reminders
// (5m/3m/1m) are a redundant convenience layer on top and fire only when the
// level machinery has not already covered that urgency.
func (t *Timer) collectNotificationsLocked() []queuedNotification {
	var queued []queuedNotification

	level := Classify(t.remaining, t.total)
	if level != t.lastNotified && level != LevelNormal {
		if msg := levelMessage(level, t.remaining); msg != "" {
			queued = append(queued, queuedNotification{msg, level})
			t.lastNotified = level
		}
	}

	switch {
	case t.remaining == 300 && !t.lastNotified.AtLeast(LevelNotice):
		queued = append(queued, queuedNotification{"5 minutes remaining", LevelNotice})
	case t.remaining == 180 && !t.lastNotified.AtLeast(LevelWarning):
		queued = append(queued, queuedNotification{"3 minutes remaining", LevelWarning})
	case t.remaining == 60 && !t.lastNotified.AtLeast(LevelCritical):
		queued = append(queued, queuedNotification{"1 minute remaining!", LevelCritical})
	}

	return queued
}

func levelMessage(level Level, remainingSeconds int) string {
	detailed := FormatDetailed(remainingSeconds)
	switch level {
	case LevelNotice:
		return fmt.Sprintf("Less than 50%% of the time remains. %s left", detailed)
	case LevelWarning:
		return fmt.Sprintf("Less than 25%% of the time remains. %s left", detailed)
	case LevelCritical:
		if remainingSeconds > 0 {
			return fmt.Sprintf("Less than 10%% of the time remains! %s left", detailed)
		}
		return ""
	default:
		return ""
	}
}
