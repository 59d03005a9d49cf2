package entity

import "time"

// WebhookEvent records a processed provider event id. The unique key on
// EventID is what makes checkout processing idempotent across duplicate
// deliveries.
type WebhookEvent struct {
	ID uint64

	EventID   string
	EventType string

	CreatedAt time.Time
}
