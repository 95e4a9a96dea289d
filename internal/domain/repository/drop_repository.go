// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"dropradar/internal/domain/entity"
	"dropradar/internal/errors"
	"dropradar/internal/geo"

	"github.com/google/uuid"
)

// ErrPartialBatch is returned by CreateDrops when at least one drop of the batch was not stored.
var ErrPartialBatch = errors.New("drop batch partially persisted")

// DropFailure describes one drop that could not be stored.
type DropFailure struct {
	DropID uuid.UUID
	Err    error
}

// CreateDropsResult reports the outcome of a batch insert.
type CreateDropsResult struct {
	Created int
	Failed  []DropFailure
}

// SweepResult reports what a sweep removed.
type SweepResult struct {
	// Deleted counts drops removed from the store.
	Deleted int64
	// Retained counts expired claimed drops kept for audit, each on its first sweep
	// whether or not claim processing already deactivated it.
	Retained int64
}

// DropRepository defines the interface for drop-related database operations.
type DropRepository interface {
	// CreateDrops persists a batch. Items are stored independently: the result lists
	// per-item failures, and the error wraps ErrPartialBatch when any item failed.
	CreateDrops(ctx context.Context, drops []*entity.Drop) (*CreateDropsResult, error)

	// FindDropsInBoundingBox returns active drops inside box whose expiry is after liveAt.
	FindDropsInBoundingBox(ctx context.Context, box geo.Box, liveAt time.Time) ([]*entity.Drop, error)

	// DeleteExpiredDrops removes drops with expires_at <= now. When retainClaimed is set,
	// expired claimed drops are deactivated instead of deleted. Repeated calls are no-ops.
	DeleteExpiredDrops(ctx context.Context, now time.Time, retainClaimed bool) (*SweepResult, error)

	// FindDropByID retrieves a drop regardless of its liveness.
	FindDropByID(ctx context.Context, id uuid.UUID) (*entity.Drop, error)
}

// ErrDropNotFound is returned when a drop is not found.
var ErrDropNotFound = errors.New("drop not found")
