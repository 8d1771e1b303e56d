package interfaces

import "context"

// EventPublisher fans recorded trades out to interested consumers. Publish
// failures never affect a recorded trade; callers treat them as best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
