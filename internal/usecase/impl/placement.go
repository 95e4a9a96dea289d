package impl

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"dropradar/config"
	"dropradar/internal/domain/entity"
	"dropradar/internal/domain/service"
	"dropradar/internal/errors"
	"dropradar/internal/geo"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// ErrPlacementExhausted is logged when no candidate satisfied the minimum separation.
var ErrPlacementExhausted = errors.New("placement attempts exhausted")

// PlacementRequest describes one batch of drops around an anchor.
type PlacementRequest struct {
	Anchor       orb.Point
	RadiusMeters float64
	Count        int
	CreatedAt    time.Time
	ExpiresAt    time.Time
	// Existing holds live drop positions the batch must keep clear of.
	Existing []orb.Point
}

// PlacementGenerator scatters drops uniformly over a disc around an anchor.
type PlacementGenerator struct {
	catalog       service.RewardCatalog
	logger        *slog.Logger
	rand          *lockedRand
	minSeparation float64
	maxAttempts   int
}

// NewPlacementGenerator creates a generator with a randomly seeded source.
func NewPlacementGenerator(cfg *config.Config, catalog service.RewardCatalog, logger *slog.Logger) *PlacementGenerator {
	return NewPlacementGeneratorWithRand(cfg, catalog, logger, nil)
}

// NewPlacementGeneratorWithRand creates a generator drawing from rng.
func NewPlacementGeneratorWithRand(cfg *config.Config, catalog service.RewardCatalog, logger *slog.Logger, rng *rand.Rand) *PlacementGenerator {
	g := &PlacementGenerator{
		catalog:     catalog,
		logger:      logger,
		rand:        newLockedRand(rng),
		maxAttempts: 1,
	}

	if cfg != nil && cfg.Drops != nil {
		g.minSeparation = cfg.Drops.Placement.MinSeparationMeters
		g.maxAttempts = max(cfg.Drops.Placement.MaxAttempts, 1)
	}

	return g
}

// Generate always returns exactly req.Count drops (none when Count <= 0).
// A drop whose attempts all violate the separation keeps the candidate farthest
// from its nearest neighbour.
func (g *PlacementGenerator) Generate(req PlacementRequest) []*entity.Drop {
	if req.Count <= 0 {
		return []*entity.Drop{}
	}

	radius := geo.CapRadius(req.RadiusMeters)
	placed := make([]orb.Point, 0, len(req.Existing)+req.Count)
	placed = append(placed, req.Existing...)
	drops := make([]*entity.Drop, 0, req.Count)
	exhausted := 0

	rng := g.rand.child()
	for range req.Count {
		point, ok := g.place(rng, req.Anchor, radius, placed)
		if !ok {
			exhausted++
		}

		dropType, rewards := g.catalog.Draw(rng)
		drops = append(drops, &entity.Drop{
			ID:        uuid.New(),
			Latitude:  point.Lat(),
			Longitude: point.Lon(),
			Type:      dropType,
			Rewards:   rewards,
			CreatedAt: req.CreatedAt,
			ExpiresAt: req.ExpiresAt,
			IsActive:  true,
		})
		placed = append(placed, point)
	}

	if exhausted > 0 && g.logger != nil {
		g.logger.Warn("Placement kept best candidates below minimum separation",
			slog.Any("error", ErrPlacementExhausted),
			slog.Int("exhausted", exhausted),
			slog.Int("count", req.Count),
			slog.Float64("radius_meters", radius),
			slog.Float64("min_separation_meters", g.minSeparation),
		)
	}

	return drops
}

func (g *PlacementGenerator) place(rng *rand.Rand, anchor orb.Point, radius float64, placed []orb.Point) (orb.Point, bool) {
	var best orb.Point
	bestClearance := -1.0

	for range g.maxAttempts {
		candidate := samplePoint(rng, anchor, radius)
		clearance := nearestDistance(candidate, placed)
		if clearance >= g.minSeparation {
			return candidate, true
		}
		if clearance > bestClearance {
			best, bestClearance = candidate, clearance
		}
	}

	return best, false
}

// samplePoint draws a point uniformly by area: theta in [0, 2pi), d = r*sqrt(u).
func samplePoint(rng *rand.Rand, anchor orb.Point, radius float64) orb.Point {
	theta := rng.Float64() * 2 * math.Pi
	distance := radius * math.Sqrt(rng.Float64())

	return geo.Offset(anchor, distance, theta)
}

func nearestDistance(p orb.Point, others []orb.Point) float64 {
	nearest := math.Inf(1)
	for _, other := range others {
		nearest = math.Min(nearest, geo.DistanceMeters(p, other))
	}

	return nearest
}
