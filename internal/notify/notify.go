// Package notify publishes scrape run events to downstream consumers.
package notify

import "context"

// RunEvent summarizes one completed scrape run.
type RunEvent struct {
	RunID      string `json:"run_id"`
	Discovered int    `json:"discovered"`
	Fetched    int    `json:"fetched"`
	Filtered   int    `json:"filtered"`
	Inserted   int    `json:"inserted"`
	Updated    int    `json:"updated"`
	ElapsedMS  int64  `json:"elapsed_ms"`
	FinishedAt string `json:"finished_at"`
}

// Publisher delivers run events to a topic and returns the message ID.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
	Close() error
}

// NoOpPublisher drops all events. It is the default when notifications are
// disabled in configuration.
type NoOpPublisher struct{}

// NewNoOpPublisher creates a publisher that drops all events.
func NewNoOpPublisher() *NoOpPublisher {
	return &NoOpPublisher{}
}

// Publish discards the payload.
func (n *NoOpPublisher) Publish(_ context.Context, _ string, _ any) (string, error) {
	return "", nil
}

// Close is a no-op.
func (n *NoOpPublisher) Close() error {
	return nil
}
