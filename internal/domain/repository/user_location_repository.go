package repository

import (
	"context"
	"time"

	"dropradar/internal/domain/entity"
	"dropradar/internal/errors"

	"github.com/google/uuid"
)

// ErrUserLocationNotFound is returned when a user has never reported a location.
var ErrUserLocationNotFound = errors.New("user location not found")

// UserLocationRepository defines the interface for user location operations.
type UserLocationRepository interface {
	// UpsertUserLocation stores the latest location of a user, replacing any previous one.
	UpsertUserLocation(ctx context.Context, location *entity.UserLocation) error

	// FindUserLocation returns the stored location of a user.
	FindUserLocation(ctx context.Context, userID uuid.UUID) (*entity.UserLocation, error)

	// ListActiveUserLocations returns locations updated at or after since.
	ListActiveUserLocations(ctx context.Context, since time.Time) ([]*entity.UserLocation, error)
}
