package impl

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"dropradar/config"
	deliverycontext "dropradar/internal/delivery/context"
	"dropradar/internal/domain/entity"
	"dropradar/internal/domain/repository"
	"dropradar/internal/domain/service"
	"dropradar/internal/errors"
	"dropradar/internal/geo"
	"dropradar/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type schedulerService struct {
	locations  repository.UserLocationRepository
	drops      repository.DropRepository
	placement  *PlacementGenerator
	expiration *ExpirationPolicy
	publisher  service.EventPublisher
	logger     *slog.Logger
	rand       *lockedRand
	clock      func() time.Time

	workers         int
	tickTimeout     time.Duration
	sweepTimeout    time.Duration
	freshnessWindow time.Duration
	minSeparation   float64
}

// NewSchedulerService creates the lifecycle scheduler
func NewSchedulerService(
	locations repository.UserLocationRepository,
	drops repository.DropRepository,
	placement *PlacementGenerator,
	expiration *ExpirationPolicy,
	publisher service.EventPublisher,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.SchedulerUsecase {
	return NewSchedulerServiceWithRand(locations, drops, placement, expiration, publisher, cfg, logger, nil)
}

// NewSchedulerServiceWithRand creates the scheduler drawing quotas from rng.
// A nil rng gets a randomly seeded source.
func NewSchedulerServiceWithRand(
	locations repository.UserLocationRepository,
	drops repository.DropRepository,
	placement *PlacementGenerator,
	expiration *ExpirationPolicy,
	publisher service.EventPublisher,
	cfg *config.Config,
	logger *slog.Logger,
	rng *rand.Rand,
) usecase.SchedulerUsecase {
	if cfg.Scheduler == nil || cfg.Drops == nil {
		config.ApplyDefaults(cfg)
	}

	return &schedulerService{
		locations:       locations,
		drops:           drops,
		placement:       placement,
		expiration:      expiration,
		publisher:       publisher,
		logger:          logger,
		rand:            newLockedRand(rng),
		clock:           time.Now,
		workers:         cfg.Scheduler.Workers,
		tickTimeout:     cfg.Scheduler.TickTimeout,
		sweepTimeout:    cfg.Scheduler.SweepTimeout,
		freshnessWindow: cfg.Scheduler.FreshnessWindow,
		minSeparation:   cfg.Drops.Placement.MinSeparationMeters,
	}
}

// userOutcome is the result of seeding drops around one user
type userOutcome struct {
	generated int
	persisted int
	err       error
}

// Tick runs CollectActiveUsers, GenerateForEachUser and PersistNewDrops under the
// tick deadline, then SweepExpired under its own deadline.
// The tick logger extends the caller's request logger and travels down to the store.
func (s *schedulerService) Tick(ctx context.Context, gen config.GenerationConfig) (*usecase.TickResult, error) {
	tickID := uuid.NewString()
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger).With(slog.String("tick_id", tickID))
	ctx = deliverycontext.WithLogger(ctx, logger)
	result := &usecase.TickResult{
		TickID:    tickID,
		StartedAt: s.clock(),
	}

	logger.Info("Lifecycle tick started",
		slog.Int("min_quota", gen.MinQuota),
		slog.Int("max_quota", gen.MaxQuota),
		slog.Float64("discovery_radius_meters", gen.DiscoveryRadiusMeters),
		slog.Duration("ttl", gen.TTL),
	)

	genCtx, cancel := context.WithTimeout(ctx, s.tickTimeout)
	genErr := s.generate(genCtx, logger, tickID, gen, result)
	cancel()

	if genErr != nil {
		logger.Error("Drop generation phase failed", slog.Any("error", genErr))
	}

	// The sweep outlives both the tick deadline and a cancelled caller.
	sweepCtx, sweepCancel := context.WithTimeout(context.WithoutCancel(ctx), s.sweepTimeout)
	defer sweepCancel()

	swept, sweepErr := s.expiration.Sweep(sweepCtx, s.clock())
	if sweepErr != nil {
		logger.Error("Expiration sweep failed", slog.Any("error", sweepErr))
	} else {
		result.Swept = *swept
	}

	result.Duration = time.Since(result.StartedAt)

	logger.Info("Lifecycle tick finished",
		slog.Int("users", result.Users),
		slog.Int("skipped_users", result.SkippedUsers),
		slog.Int("failed_users", result.FailedUsers),
		slog.Int("generated", result.Generated),
		slog.Int("persisted", result.Persisted),
		slog.Int64("swept_deleted", result.Swept.Deleted),
		slog.Int64("swept_retained", result.Swept.Retained),
		slog.Duration("duration", result.Duration),
	)

	return result, errors.Join(genErr, sweepErr)
}

// Sweep runs only the expiration phase.
func (s *schedulerService) Sweep(ctx context.Context) (*repository.SweepResult, error) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.sweepTimeout)
	defer cancel()

	return s.expiration.Sweep(sweepCtx, s.clock())
}

func (s *schedulerService) generate(ctx context.Context, logger *slog.Logger, tickID string, gen config.GenerationConfig, result *usecase.TickResult) error {
	now := s.clock()

	users, err := s.locations.ListActiveUserLocations(ctx, now.Add(-s.freshnessWindow))
	if err != nil {
		return errors.Wrap(err, "failed to list active user locations")
	}
	result.Users = len(users)
	if len(users) == 0 {
		return nil
	}

	minQuota := max(gen.MinQuota, 0)
	maxQuota := max(gen.MaxQuota, minQuota)
	expiresAt := ComputeExpiry(now, gen.TTL)

	userCh := make(chan *entity.UserLocation, len(users))
	outcomeCh := make(chan userOutcome, len(users))

	workerGroup := s.spawnUserWorkers(ctx, s.workerCount(len(users)), userCh, outcomeCh, func(user *entity.UserLocation) userOutcome {
		quota := s.rand.intBetween(minQuota, maxQuota)

		return s.seedUser(ctx, logger, tickID, user, quota, gen.DiscoveryRadiusMeters, now, expiresAt)
	})

	go dispatchUsers(ctx, userCh, users)

	processed := collectUserOutcomes(outcomeCh, workerGroup, result)
	result.SkippedUsers = len(users) - processed

	if ctx.Err() != nil {
		return errors.Wrapf(ctx.Err(), "generation interrupted after %d of %d users", processed, len(users))
	}

	return nil
}

func (s *schedulerService) workerCount(userCount int) int {
	return max(min(s.workers, userCount), 1)
}

func (s *schedulerService) spawnUserWorkers(
	ctx context.Context,
	workerCount int,
	userCh <-chan *entity.UserLocation,
	outcomeCh chan<- userOutcome,
	seed func(user *entity.UserLocation) userOutcome,
) *sync.WaitGroup {
	var workerGroup sync.WaitGroup

	for range workerCount {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			for user := range userCh {
				if ctx.Err() != nil {
					return
				}

				outcomeCh <- seed(user)
			}
		}()
	}

	return &workerGroup
}

func dispatchUsers(ctx context.Context, userCh chan<- *entity.UserLocation, users []*entity.UserLocation) {
	defer close(userCh)

	for _, user := range users {
		if ctx.Err() != nil {
			return
		}
		userCh <- user
	}
}

func collectUserOutcomes(outcomeCh chan userOutcome, workerGroup *sync.WaitGroup, result *usecase.TickResult) int {
	go func() {
		workerGroup.Wait()
		close(outcomeCh)
	}()

	processed := 0
	for outcome := range outcomeCh {
		processed++
		result.Generated += outcome.generated
		result.Persisted += outcome.persisted
		if outcome.err != nil {
			result.FailedUsers++
		}
	}

	return processed
}

// seedUser places and persists one user's batch. Failures are logged and
// reported in the outcome, never propagated to other users.
func (s *schedulerService) seedUser(
	ctx context.Context,
	logger *slog.Logger,
	tickID string,
	user *entity.UserLocation,
	quota int,
	radius float64,
	now, expiresAt time.Time,
) userOutcome {
	if quota <= 0 {
		return userOutcome{}
	}

	userLogger := logger.With(slog.String("user_id", user.UserID.String()))
	ctx = deliverycontext.WithLogger(ctx, userLogger)
	anchor := user.Point()

	existing, err := s.drops.FindDropsInBoundingBox(ctx, geo.BoundingBox(anchor, radius+s.minSeparation), now)
	if err != nil {
		userLogger.Warn("Failed to read nearby drops, placing without neighbours", slog.Any("error", err))
		existing = nil
	}

	existingPoints := make([]orb.Point, 0, len(existing))
	for _, drop := range existing {
		if IsLive(drop, now) {
			existingPoints = append(existingPoints, drop.Point())
		}
	}

	batch := s.placement.Generate(PlacementRequest{
		Anchor:       anchor,
		RadiusMeters: radius,
		Count:        quota,
		CreatedAt:    now,
		ExpiresAt:    expiresAt,
		Existing:     existingPoints,
	})
	outcome := userOutcome{generated: len(batch)}

	created, err := s.drops.CreateDrops(ctx, batch)
	if created != nil {
		outcome.persisted = created.Created
	}
	if err != nil {
		outcome.err = err
		attrs := []any{
			slog.Any("error", err),
			slog.Int("generated", len(batch)),
			slog.Int("persisted", outcome.persisted),
		}
		if created != nil {
			for _, failure := range created.Failed {
				userLogger.Debug("Drop failed to persist",
					slog.String("drop_id", failure.DropID.String()),
					slog.Any("error", failure.Err),
				)
			}
		}
		userLogger.Error("Failed to persist drop batch", attrs...)
	}

	if outcome.persisted > 0 {
		s.publishBatch(ctx, userLogger, tickID, user, batch, created, expiresAt)
	}

	return outcome
}

func (s *schedulerService) publishBatch(
	ctx context.Context,
	logger *slog.Logger,
	tickID string,
	user *entity.UserLocation,
	batch []*entity.Drop,
	created *repository.CreateDropsResult,
	expiresAt time.Time,
) {
	failed := make(map[uuid.UUID]struct{}, len(created.Failed))
	for _, failure := range created.Failed {
		failed[failure.DropID] = struct{}{}
	}

	dropIDs := make([]string, 0, len(batch))
	for _, drop := range batch {
		if _, ok := failed[drop.ID]; !ok {
			dropIDs = append(dropIDs, drop.ID.String())
		}
	}

	err := s.publisher.PublishDropBatchEvent(ctx, &service.DropBatchEvent{
		TickID:    tickID,
		UserID:    user.UserID.String(),
		Latitude:  user.Latitude,
		Longitude: user.Longitude,
		DropIDs:   dropIDs,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		logger.Warn("Failed to publish drop batch event", slog.Any("error", err))
	}
}
