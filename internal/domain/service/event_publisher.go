package service

import (
	"context"
	"time"
)

// TickEvent triggers one lifecycle tick on the worker
type TickEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	TickID    string    `json:"tick_id"`
	Preset    string    `json:"preset,omitempty"` // Overrides the environment preset when set
	IssuedAt  time.Time `json:"issued_at"`
}

// DropBatchEvent announces the drops seeded around one user during a tick
type DropBatchEvent struct {
	TickID    string    `json:"tick_id"`
	UserID    string    `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	DropIDs   []string  `json:"drop_ids"`
	ExpiresAt time.Time `json:"expires_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishTickEvent asks the worker to run a lifecycle tick
	PublishTickEvent(ctx context.Context, event *TickEvent) error

	// PublishDropBatchEvent announces a persisted drop batch to downstream consumers
	PublishDropBatchEvent(ctx context.Context, event *DropBatchEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
