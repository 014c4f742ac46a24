package countdown

import (
	"fmt"
	"math"
)

// criticalFloorSec keeps the critical window from collapsing to nothing on
// short sessions: the last stretch is always at least a minute.
const criticalFloorSec = 60

// Thresholds are the remaining-time boundaries (in seconds) below which the
// warning level escalates. Derived from the session total only.
type Thresholds struct {
	Fifty   int `json:"fifty"`
	Quarter int `json:"quarter"`
	Ten     int `json:"ten"`
}

// ComputeThresholds derives the level boundaries for a session of
// totalSeconds. The middle boundary is 25% of the total. Ten is floored at
// 60s, so short sessions can end up with Ten > Quarter > Fifty; Classify
// resolves that by first-match-wins.
func ComputeThresholds(totalSeconds int) Thresholds {
	return Thresholds{
		Fifty:   int(math.Ceil(float64(totalSeconds) * 0.5)),
		Quarter: int(math.Ceil(float64(totalSeconds) * 0.25)),
		Ten:     max(criticalFloorSec, int(math.Ceil(float64(totalSeconds)*0.1))),
	}
}

// Classify maps remaining time to a warning level.
//
// A just-initialized timer (remaining >= total) and a misconfigured one
// (total <= 0) are both Normal. Zero or negative remaining is Critical.
// Otherwise boundaries are checked most-urgent first.
func Classify(remainingSeconds, totalSeconds int) Level {
	if totalSeconds <= 0 || remainingSeconds >= totalSeconds {
		return LevelNormal
	}
	if remainingSeconds <= 0 {
		return LevelCritical
	}

	th := ComputeThresholds(totalSeconds)
	switch {
	case remainingSeconds <= th.Ten:
		return LevelCritical
	case remainingSeconds <= th.Quarter:
		return LevelWarning
	case remainingSeconds <= th.Fifty:
		return LevelNotice
	default:
		return LevelNormal
	}
}

// FormatClock renders seconds as a zero-padded MM:SS string.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatDetailed renders seconds as a human-readable duration for
// notification messages, e.g. "4m 30s", "4m", "45s".
func FormatDetailed(seconds int) string {
	if seconds <= 0 {
		return "0s"
	}
	minutes := seconds / 60
	rest := seconds % 60
	switch {
	case minutes > 0 && rest > 0:
		return fmt.Sprintf("%dm %ds", minutes, rest)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", rest)
	}
}
