package usecase

import (
	"context"

	"dropradar/internal/domain/entity"

	"github.com/google/uuid"
)

// ReportLocationInput represents a location report from a client
type ReportLocationInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationStatus is a stored location with its freshness
type LocationStatus struct {
	Location *entity.UserLocation
	// Active is true while the location is recent enough to receive drops
	Active bool
}

// LocationUsecase defines the interface for user location reporting
type LocationUsecase interface {
	ReportLocation(ctx context.Context, userID uuid.UUID, input *ReportLocationInput) (*entity.UserLocation, error)
	GetLocation(ctx context.Context, userID uuid.UUID) (*LocationStatus, error)
}
