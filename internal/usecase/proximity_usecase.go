package usecase

import (
	"context"
	"time"

	"dropradar/internal/domain/entity"

	"github.com/google/uuid"
)

// ProximityQuery is a nearby-drops request from an authenticated caller
type ProximityQuery struct {
	Latitude  float64
	Longitude float64
	// RadiusMeters falls back to the configured default when nil
	RadiusMeters *float64
	Tier         entity.Tier
}

// NearbyDrop is a live drop with its distance from the query point
type NearbyDrop struct {
	Drop           *entity.Drop
	DistanceMeters float64
}

// ProximityResult is the nearest-first list of live drops around the caller
type ProximityResult struct {
	Drops                 []NearbyDrop
	RequestedRadiusMeters float64
	EffectiveRadiusMeters float64
	Clamped               bool
	QueriedAt             time.Time
}

// ProximityUsecase answers which live drops lie around a point
type ProximityUsecase interface {
	// FindNearby returns live drops within the tier-capped radius of the query point.
	FindNearby(ctx context.Context, query *ProximityQuery) (*ProximityResult, error)

	// GetDrop returns a single drop while it is live.
	GetDrop(ctx context.Context, id uuid.UUID) (*entity.Drop, error)
}
