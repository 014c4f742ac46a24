package countdown

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_ShowsAndAutoHides(t *testing.T) {
	clock := clockwork.NewFakeClock()
	notifier := NewNotifier(clock, nil)

	notifier.Notify("3 minutes remaining", LevelWarning)

	current := notifier.Current()
	assert.True(t, current.Visible)
	assert.Equal(t, "3 minutes remaining", current.Message)
	assert.Equal(t, LevelWarning, current.Level)

	require.Eventually(t, func() bool {
		clock.Advance(notificationDisplayWindow)
		return !notifier.Current().Visible
	}, time.Second, time.Millisecond)

	// Content survives the hide; only visibility flips.
	assert.Equal(t, "3 minutes remaining", notifier.Current().Message)
}

func TestNotifier_LastCallWins(t *testing.T) {
	clock := clockwork.NewFakeClock()
	notifier := NewNotifier(clock, nil)

	notifier.Notify("first", LevelNotice)
	notifier.Notify("second", LevelCritical)

	current := notifier.Current()
	assert.True(t, current.Visible)
	assert.Equal(t, "second", current.Message)
	assert.Equal(t, LevelCritical, current.Level)
}

func TestNotifier_ObserverSeesEveryNotification(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var seen []Notification
	notifier := NewNotifier(clock, func(n Notification) { seen = append(seen, n) })

	notifier.Notify("a", LevelNotice)
	notifier.Notify("b", LevelWarning)

	require.Len(t, seen, 2)
	assert.Equal(t, "a", seen[0].Message)
	assert.True(t, seen[0].Visible)
	assert.Equal(t, "b", seen[1].Message)
}

func TestNotifier_StartsHidden(t *testing.T) {
	notifier := NewNotifier(clockwork.NewFakeClock(), nil)

	current := notifier.Current()
	assert.False(t, current.Visible)
	assert.Equal(t, LevelNormal, current.Level)
}
