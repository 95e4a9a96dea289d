package impl

import (
	"context"
	"fmt"
	"time"

	"dropradar/config"
	"dropradar/internal/domain/entity"
	domainerrors "dropradar/internal/domain/errors"
	"dropradar/internal/domain/repository"
	"dropradar/internal/errors"
	"dropradar/internal/geo"
	"dropradar/internal/usecase"

	"github.com/google/uuid"
)

type locationService struct {
	locationRepo    repository.UserLocationRepository
	freshnessWindow time.Duration
	clock           func() time.Time
}

// NewLocationService creates a new location service instance
func NewLocationService(locationRepo repository.UserLocationRepository, cfg *config.Config) usecase.LocationUsecase {
	if cfg.Scheduler == nil {
		config.ApplyDefaults(cfg)
	}

	return &locationService{
		locationRepo:    locationRepo,
		freshnessWindow: cfg.Scheduler.FreshnessWindow,
		clock:           time.Now,
	}
}

// ReportLocation stores the caller's current position, replacing the previous one
func (s *locationService) ReportLocation(ctx context.Context, userID uuid.UUID, input *usecase.ReportLocationInput) (*entity.UserLocation, error) {
	if input == nil || !geo.ValidCoordinate(input.Latitude, input.Longitude) {
		return nil, domainerrors.ErrInvalidCoordinates
	}

	location := &entity.UserLocation{
		UserID:    userID,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		UpdatedAt: s.clock().UTC(),
	}

	if err := s.locationRepo.UpsertUserLocation(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to upsert user location: %w", err)
	}

	return location, nil
}

// GetLocation returns the caller's last reported position and whether it is still fresh
func (s *locationService) GetLocation(ctx context.Context, userID uuid.UUID) (*usecase.LocationStatus, error) {
	location, err := s.locationRepo.FindUserLocation(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserLocationNotFound) {
			return nil, domainerrors.ErrLocationNotFound
		}

		return nil, fmt.Errorf("failed to find user location: %w", err)
	}

	return &usecase.LocationStatus{
		Location: location,
		Active:   location.IsFresh(s.clock(), s.freshnessWindow),
	}, nil
}
