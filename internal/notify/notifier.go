package notify

import "context"

// Event is the compact summary published when new feedback arrives.
type Event struct {
	ID    string `json:"id"`
	User  string `json:"user"`
	Label string `json:"label"`
}

// Notifier publishes new-feedback events to an operational channel.
// Publishing is best-effort; the write path never waits on it.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}
