// ABOUTME: Notification scheduler used by the rest timer for expiry alerts.
// ABOUTME: Defines the Scheduler interface and a no-op implementation.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notification is an alert to deliver at DueAt.
type Notification struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	DueAt time.Time `json:"due_at"`
}

// Scheduler delivers a notification after a delay unless it is cancelled
// first.
type Scheduler interface {
	// Schedule arranges delivery of n after the delay and returns an id
	// for Cancel.
	Schedule(ctx context.Context, after time.Duration, n Notification) (string, error)
	// Cancel drops a pending notification. Unknown ids are ignored.
	Cancel(ctx context.Context, id string) error
}

// Nop accepts every request and delivers nothing.
type Nop struct{}

// Schedule returns a fresh id without scheduling anything.
func (Nop) Schedule(context.Context, time.Duration, Notification) (string, error) {
	return "nop-" + uuid.NewString(), nil
}

// Cancel does nothing.
func (Nop) Cancel(context.Context, string) error { return nil }

var (
	_ Scheduler = Nop{}
	_ Scheduler = (*Local)(nil)
)
