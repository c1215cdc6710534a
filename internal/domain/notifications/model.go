package notifications

import "time"

// Severity classifies a notification for presentation.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Default display durations, matching what the app has always used.
const (
	DurationSuccess = 3 * time.Second
	DurationError   = 4 * time.Second
	DurationWarning = 3500 * time.Millisecond
	DurationInfo    = 3 * time.Second
)

// Notification is a transient user-facing message. Duration 0 means the
// entry never expires on its own and must be dismissed explicitly.
type Notification struct {
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Severity Severity      `json:"severity"`
	Duration time.Duration `json:"duration"`
}
