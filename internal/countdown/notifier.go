package countdown

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// notificationDisplayWindow is how long a notification stays visible before
// it auto-hides.
const notificationDisplayWindow = 5 * time.Second

// Notification is the transient message surfaced to the user when the timer
// crosses a threshold. At most one is visible at a time.
type Notification struct {
	Visible bool   `json:"visible"`
	Message string `json:"message"`
	Level   Level  `json:"level"`
}

// ShowFunc observes every notification as it is shown.
type ShowFunc func(Notification)

// Notifier owns the visible notification and its auto-hide schedule.
//
// Every Notify call replaces the content (last call wins) and schedules its
// own independent hide; earlier hide timers are deliberately not canceled, so
// rapid successive notifications can hide early. Level-transition dedup is
// the Timer's job, not the Notifier's.
type Notifier struct {
	clock  clockwork.Clock
	onShow ShowFunc

	mu      sync.Mutex
	current Notification
}

// NewNotifier creates a notifier on the given clock. onShow may be nil.
func NewNotifier(clock clockwork.Clock, onShow ShowFunc) *Notifier {
	return &Notifier{
		clock:   clock,
		onShow:  onShow,
		current: Notification{Level: LevelNormal},
	}
}

// Notify shows a message at the given level and schedules its auto-hide.
func (n *Notifier) Notify(message string, level Level) {
	n.mu.Lock()
	n.current = Notification{Visible: true, Message: message, Level: level}
	shown := n.current
	n.mu.Unlock()

	n.clock.AfterFunc(notificationDisplayWindow, func() {
		n.mu.Lock()
		n.current.Visible = false
		n.mu.Unlock()
	})

	if n.onShow != nil {
		n.onShow(shown)
	}
}

// Current returns the notification as it stands right now.
func (n *Notifier) Current() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
