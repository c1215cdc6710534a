package matches

import (
	"fmt"
	"time"

	"sportmatch/appcore/internal/utils"
)

// Status is the derived occupancy state a match card renders.
type Status string

const (
	StatusFull      Status = "full"
	StatusLastSpot  Status = "last_spot"
	StatusAvailable Status = "available"
)

// StatusOf derives the occupancy status from participant count and capacity.
// A capacity of zero is immediately full.
func StatusOf(count, capacity int) Status {
	switch {
	case count >= capacity:
		return StatusFull
	case count == capacity-1:
		return StatusLastSpot
	default:
		return StatusAvailable
	}
}

// Status derives the occupancy status of the match.
func (m *Match) Status() Status {
	return StatusOf(m.PlayerCount(), m.Capacity())
}

// Progress is the fill ratio count/capacity. It is not clamped; a caller
// rendering it as a width percentage should pass it through Clamp01 first.
func Progress(count, capacity int) float64 {
	if capacity <= 0 {
		return 1
	}
	return float64(count) / float64(capacity)
}

// Clamp01 clamps a ratio into [0,1] for rendering.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ExpiryLabel renders a coarse time-to-expiry label for a match card.
// Unparsable or past timestamps collapse to "expires soon".
func ExpiryLabel(expireAt string, now time.Time) string {
	t, err := utils.ParseTime(expireAt)
	if err != nil {
		return ""
	}
	diff := t.Sub(now)
	days := int(diff.Hours()) / 24
	hours := int(diff.Hours())
	switch {
	case days > 0:
		return fmt.Sprintf("expires in %dd", days)
	case hours > 0:
		return fmt.Sprintf("expires in %dh", hours)
	default:
		return "expires soon"
	}
}

// RelativeLabel renders a coarse "how long ago" label for chat messages.
func RelativeLabel(timestamp string, now time.Time) string {
	t, err := utils.ParseTime(timestamp)
	if err != nil {
		return ""
	}
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours())/24)
	}
}
