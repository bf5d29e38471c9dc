package sequencer

import "time"

type (
	// Alert is a message to be shown to the user for Duration.
	Alert struct {
		Name     string // alerts with the same name replace each other
		Priority AlertPriority
		Message  string
		Duration time.Duration
		Posted   time.Time // set by the Model when the alert is received
	}

	AlertPriority int
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const defaultAlertDuration = 3 * time.Second

func (p AlertPriority) String() string {
	switch p {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// Active reports whether the alert should still be shown at now.
func (a Alert) Active(now time.Time) bool {
	return now.Before(a.Posted.Add(a.Duration))
}
