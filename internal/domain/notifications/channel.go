package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Channel is the in-process queue of transient notifications the stores
// report outcomes to and the presentation layer renders from. Each entry
// with a positive duration gets its own expiry timer, so concurrent
// additions don't interfere with one another.
type Channel struct {
	mu     sync.Mutex
	items  []Notification
	timers map[string]*time.Timer
}

func NewChannel() *Channel {
	return &Channel{timers: make(map[string]*time.Timer)}
}

// Add enqueues a notification and schedules its removal after duration.
// The generated id is returned so callers can dismiss early.
func (c *Channel) Add(message string, severity Severity, duration time.Duration) string {
	id := uuid.NewString()

	c.mu.Lock()
	c.items = append(c.items, Notification{
		ID:       id,
		Message:  message,
		Severity: severity,
		Duration: duration,
	})
	if duration > 0 {
		c.timers[id] = time.AfterFunc(duration, func() { c.Remove(id) })
	}
	c.mu.Unlock()

	return id
}

// Remove dismisses a notification. Removing an id that already expired or
// was never added is a no-op.
func (c *Channel) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear dismisses everything and stops all pending timers.
func (c *Channel) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.items = nil
}

// List returns a snapshot of the active notifications in insertion order.
func (c *Channel) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Channel) Success(message string) string {
	return c.Add(message, SeveritySuccess, DurationSuccess)
}

func (c *Channel) Error(message string) string {
	return c.Add(message, SeverityError, DurationError)
}

func (c *Channel) Warning(message string) string {
	return c.Add(message, SeverityWarning, DurationWarning)
}

func (c *Channel) Info(message string) string {
	return c.Add(message, SeverityInfo, DurationInfo)
}
