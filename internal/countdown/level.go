package countdown

// Level is the urgency tier derived from remaining time.
type Level string

const (
	LevelNormal   Level = "normal"
	LevelNotice   Level = "notice"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Severity returns the rank of a level so tiers can be compared.
// Normal < Notice < Warning < Critical.
func (l Level) Severity() int {
	switch l {
	case LevelNotice:
		return 1
	case LevelWarning:
		return 2
	case LevelCritical:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether l is as urgent as other or more.
func (l Level) AtLeast(other Level) bool {
	return l.Severity() >= other.Severity()
}

// ColorClass maps a level to the CSS class the frontend renders the clock
// with. Kept server-side so every surface (API, websocket) agrees.
func (l Level) ColorClass() string {
	switch l {
	case LevelCritical:
		return "text-red-600"
	case LevelWarning:
		return "text-orange-500"
	case LevelNotice:
		return "text-yellow-500"
	default:
		return "text-gray-700"
	}
}
