package usecase

import (
	"context"
	"time"

	"dropradar/config"
	"dropradar/internal/domain/repository"
)

// TickResult summarises one lifecycle tick
type TickResult struct {
	TickID       string
	StartedAt    time.Time
	Duration     time.Duration
	Users        int // active users collected
	SkippedUsers int // users not reached before the tick deadline
	FailedUsers  int // users whose batch failed to persist, fully or partially
	Generated    int
	Persisted    int
	Swept        repository.SweepResult
}

// SchedulerUsecase runs the drop lifecycle
type SchedulerUsecase interface {
	// Tick seeds drops around every active user and then sweeps expired drops.
	// The sweep runs even when generation fails or the tick deadline passes.
	Tick(ctx context.Context, gen config.GenerationConfig) (*TickResult, error)

	// Sweep removes expired drops without generating new ones.
	Sweep(ctx context.Context) (*repository.SweepResult, error)
}
