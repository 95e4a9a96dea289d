package impl

import (
	"cmp"
	"context"
	"log/slog"
	"math"
	"slices"
	"time"

	"dropradar/config"
	"dropradar/internal/domain/entity"
	domainerrors "dropradar/internal/domain/errors"
	"dropradar/internal/domain/repository"
	"dropradar/internal/errors"
	"dropradar/internal/geo"
	"dropradar/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type proximityService struct {
	drops  repository.DropRepository
	config *config.ProximityConfig
	logger *slog.Logger
	clock  func() time.Time
}

// NewProximityService creates a new proximity query service
func NewProximityService(drops repository.DropRepository, cfg *config.Config, logger *slog.Logger) usecase.ProximityUsecase {
	proximityCfg := cfg.Proximity
	if proximityCfg == nil {
		holder := &config.Config{}
		config.ApplyDefaults(holder)
		proximityCfg = holder.Proximity
	}

	return &proximityService{
		drops:  drops,
		config: proximityCfg,
		logger: logger,
		clock:  time.Now,
	}
}

// FindNearby returns live drops inside the bounding box of the tier-capped radius, nearest first.
func (s *proximityService) FindNearby(ctx context.Context, query *usecase.ProximityQuery) (*usecase.ProximityResult, error) {
	if query == nil || !geo.ValidCoordinate(query.Latitude, query.Longitude) {
		return nil, domainerrors.ErrInvalidCoordinates
	}

	requested := s.config.DefaultRadiusMeters
	if query.RadiusMeters != nil {
		requested = *query.RadiusMeters
	}
	if math.IsNaN(requested) || math.IsInf(requested, 0) || requested <= 0 {
		return nil, domainerrors.ErrInvalidRadius
	}

	effective := math.Min(requested, s.tierCap(query.Tier))
	effective = geo.CapRadius(effective)

	now := s.clock()
	center := orb.Point{query.Longitude, query.Latitude}
	box := geo.BoundingBox(center, effective)

	candidates, err := s.drops.FindDropsInBoundingBox(ctx, box, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query drops in bounding box")
	}

	nearby := make([]usecase.NearbyDrop, 0, len(candidates))
	for _, drop := range candidates {
		if !IsLive(drop, now) {
			continue
		}

		distance := geo.DistanceMeters(center, drop.Point())
		if s.config.CircularFilter && distance > effective {
			continue
		}

		nearby = append(nearby, usecase.NearbyDrop{Drop: drop, DistanceMeters: distance})
	}

	slices.SortStableFunc(nearby, func(a, b usecase.NearbyDrop) int {
		return cmp.Compare(a.DistanceMeters, b.DistanceMeters)
	})
	if s.config.MaxResults > 0 && len(nearby) > s.config.MaxResults {
		nearby = nearby[:s.config.MaxResults]
	}

	s.logger.Debug("Nearby drops queried",
		slog.Float64("requested_radius_meters", requested),
		slog.Float64("effective_radius_meters", effective),
		slog.String("tier", query.Tier.String()),
		slog.Int("candidates", len(candidates)),
		slog.Int("results", len(nearby)),
	)

	return &usecase.ProximityResult{
		Drops:                 nearby,
		RequestedRadiusMeters: requested,
		EffectiveRadiusMeters: effective,
		Clamped:               effective < requested,
		QueriedAt:             now,
	}, nil
}

// GetDrop returns the drop only while it is live.
func (s *proximityService) GetDrop(ctx context.Context, id uuid.UUID) (*entity.Drop, error) {
	drop, err := s.drops.FindDropByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDropNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("drop not found")
		}

		return nil, errors.Wrap(err, "failed to find drop")
	}

	if !IsLive(drop, s.clock()) {
		return nil, domainerrors.ErrNotFound.WithDetails("drop expired")
	}

	return drop, nil
}

func (s *proximityService) tierCap(tier entity.Tier) float64 {
	if tier == entity.TierElevated {
		return s.config.ElevatedMaxRadiusMeters
	}

	return s.config.FreeMaxRadiusMeters
}
