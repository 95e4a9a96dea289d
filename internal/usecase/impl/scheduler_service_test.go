package impl

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"dropradar/config"
	deliverycontext "dropradar/internal/delivery/context"
	"dropradar/internal/domain/entity"
	"dropradar/internal/domain/repository"
	"dropradar/internal/domain/service"
	"dropradar/internal/geo"
	mockRepo "dropradar/internal/mocks/repository"
	mockService "dropradar/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type schedulerMocks struct {
	locations *mockRepo.MockUserLocationRepository
	drops     *mockRepo.MockDropRepository
	publisher *mockService.MockEventPublisher
}

func createTestScheduler(t *testing.T, now time.Time) (*schedulerService, schedulerMocks) {
	t.Helper()

	mocks := schedulerMocks{
		locations: mockRepo.NewMockUserLocationRepository(t),
		drops:     mockRepo.NewMockDropRepository(t),
		publisher: mockService.NewMockEventPublisher(t),
	}
	cfg := createTestConfig()
	logger := newDiscardLogger()

	placement := NewPlacementGeneratorWithRand(cfg, stubCatalog{}, logger, newSeededRand())
	expiration := NewExpirationPolicy(cfg, mocks.drops, logger)
	svc := NewSchedulerServiceWithRand(mocks.locations, mocks.drops, placement, expiration, mocks.publisher, cfg, logger, newSeededRand()).(*schedulerService)
	svc.clock = func() time.Time { return now }

	return svc, mocks
}

// persistAll accepts every batch and records it.
func persistAll(mu *sync.Mutex, batches *[][]*entity.Drop) func(context.Context, []*entity.Drop) (*repository.CreateDropsResult, error) {
	return func(_ context.Context, drops []*entity.Drop) (*repository.CreateDropsResult, error) {
		mu.Lock()
		defer mu.Unlock()
		*batches = append(*batches, drops)

		return &repository.CreateDropsResult{Created: len(drops)}, nil
	}
}

func activeUser(lat, lon float64, now time.Time) *entity.UserLocation {
	return &entity.UserLocation{UserID: uuid.New(), Latitude: lat, Longitude: lon, UpdatedAt: now.Add(-time.Minute)}
}

func TestSchedulerService_Tick_SeedsAroundActiveUser(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	svc, mocks := createTestScheduler(t, now)
	user := activeUser(45.0, -73.0, now)
	gen := config.GenerationConfig{MinQuota: 5, MaxQuota: 5, DiscoveryRadiusMeters: 300, TTL: 7 * 24 * time.Hour}

	var (
		mu      sync.Mutex
		batches [][]*entity.Drop
		event   *service.DropBatchEvent
	)

	mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, now.Add(-15*time.Minute)).Return([]*entity.UserLocation{user}, nil)
	mocks.drops.EXPECT().FindDropsInBoundingBox(mock.Anything, geo.BoundingBox(user.Point(), 325), now).Return(nil, nil)
	mocks.drops.EXPECT().CreateDrops(mock.Anything, mock.Anything).RunAndReturn(persistAll(&mu, &batches))
	mocks.publisher.EXPECT().PublishDropBatchEvent(mock.Anything, mock.Anything).
		Run(func(_ context.Context, e *service.DropBatchEvent) { event = e }).
		Return(nil)
	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, now, false).Return(&repository.SweepResult{Deleted: 2}, nil)

	result, err := svc.Tick(context.Background(), gen)

	require.NoError(t, err)
	assert.NotEmpty(t, result.TickID)
	assert.Equal(t, 1, result.Users)
	assert.Equal(t, 0, result.SkippedUsers)
	assert.Equal(t, 0, result.FailedUsers)
	assert.Equal(t, 5, result.Generated)
	assert.Equal(t, 5, result.Persisted)
	assert.Equal(t, int64(2), result.Swept.Deleted)

	require.Len(t, batches, 1)
	require.Len(t, batches[0], 5)
	box := geo.BoundingBox(orb.Point{-73.0, 45.0}, 300)
	for _, drop := range batches[0] {
		assert.True(t, box.Contains(drop.Point()))
		assert.Equal(t, now, drop.CreatedAt)
		assert.Equal(t, now.Add(7*24*time.Hour), drop.ExpiresAt)
		assert.True(t, drop.IsActive)
	}

	require.NotNil(t, event)
	assert.Equal(t, result.TickID, event.TickID)
	assert.Equal(t, user.UserID.String(), event.UserID)
	assert.Len(t, event.DropIDs, 5)
	assert.Equal(t, now.Add(7*24*time.Hour), event.ExpiresAt)
}

func TestSchedulerService_Tick_QuotaWithinRange(t *testing.T) {
	now := time.Now()
	svc, mocks := createTestScheduler(t, now)
	users := []*entity.UserLocation{
		activeUser(10, 10, now), activeUser(20, 20, now), activeUser(30, 30, now), activeUser(40, 40, now),
	}

	var (
		mu      sync.Mutex
		batches [][]*entity.Drop
	)

	mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, mock.Anything).Return(users, nil)
	mocks.drops.EXPECT().FindDropsInBoundingBox(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	mocks.drops.EXPECT().CreateDrops(mock.Anything, mock.Anything).RunAndReturn(persistAll(&mu, &batches))
	mocks.publisher.EXPECT().PublishDropBatchEvent(mock.Anything, mock.Anything).Return(nil)
	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, mock.Anything, mock.Anything).Return(&repository.SweepResult{}, nil)

	result, err := svc.Tick(context.Background(), config.GenerationConfig{MinQuota: 3, MaxQuota: 8, DiscoveryRadiusMeters: 300, TTL: time.Hour})

	require.NoError(t, err)
	assert.Equal(t, 4, result.Users)
	require.Len(t, batches, 4)
	for _, batch := range batches {
		assert.GreaterOrEqual(t, len(batch), 3)
		assert.LessOrEqual(t, len(batch), 8)
	}
	assert.Equal(t, result.Generated, result.Persisted)
}

func TestSchedulerService_Tick_KeepsClearOfExistingDrops(t *testing.T) {
	now := time.Now()
	svc, mocks := createTestScheduler(t, now)
	user := activeUser(0, 0, now)
	existing := &entity.Drop{ID: uuid.New(), Latitude: 0, Longitude: 0, ExpiresAt: now.Add(time.Hour), IsActive: true}

	var (
		mu      sync.Mutex
		batches [][]*entity.Drop
	)

	mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, mock.Anything).Return([]*entity.UserLocation{user}, nil)
	mocks.drops.EXPECT().FindDropsInBoundingBox(mock.Anything, mock.Anything, now).Return([]*entity.Drop{existing}, nil)
	mocks.drops.EXPECT().CreateDrops(mock.Anything, mock.Anything).RunAndReturn(persistAll(&mu, &batches))
	mocks.publisher.EXPECT().PublishDropBatchEvent(mock.Anything, mock.Anything).Return(nil)
	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, mock.Anything, mock.Anything).Return(&repository.SweepResult{}, nil)

	_, err := svc.Tick(context.Background(), config.GenerationConfig{MinQuota: 4, MaxQuota: 4, DiscoveryRadiusMeters: 300, TTL: time.Hour})

	require.NoError(t, err)
	require.Len(t, batches, 1)
	for _, drop := range batches[0] {
		assert.GreaterOrEqual(t, geo.DistanceMeters(drop.Point(), existing.Point()), 25.0)
	}
}

func TestSchedulerService_Tick_IsolatesUserFailures(t *testing.T) {
	now := time.Now()
	svc, mocks := createTestScheduler(t, now)
	healthyA := activeUser(10, 10, now)
	broken := activeUser(-40, 100, now)
	healthyB := activeUser(50, -120, now)
	dbErr := errors.New("write timeout")

	mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, mock.Anything).
		Return([]*entity.UserLocation{healthyA, broken, healthyB}, nil)
	mocks.drops.EXPECT().FindDropsInBoundingBox(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	mocks.drops.EXPECT().CreateDrops(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, drops []*entity.Drop) (*repository.CreateDropsResult, error) {
			// Drops sit within 300 m of their anchor, so latitude identifies the user.
			if math.Abs(drops[0].Latitude-broken.Latitude) < 0.01 {
				return &repository.CreateDropsResult{}, dbErr
			}

			return &repository.CreateDropsResult{Created: len(drops)}, nil
		})
	mocks.publisher.EXPECT().PublishDropBatchEvent(mock.Anything, mock.Anything).Return(nil).Times(2)
	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, now, false).Return(&repository.SweepResult{Deleted: 1}, nil)

	result, err := svc.Tick(context.Background(), config.GenerationConfig{MinQuota: 2, MaxQuota: 2, DiscoveryRadiusMeters: 300, TTL: time.Hour})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Users)
	assert.Equal(t, 1, result.FailedUsers)
	assert.Equal(t, 6, result.Generated)
	assert.Equal(t, 4, result.Persisted)
	assert.Equal(t, int64(1), result.Swept.Deleted)
}

func TestSchedulerService_Tick_PartialBatchPublishesPersistedOnly(t *testing.T) {
	now := time.Now()
	svc, mocks := createTestScheduler(t, now)
	user := activeUser(35, 139, now)

	var event *service.DropBatchEvent

	mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, mock.Anything).Return([]*entity.UserLocation{user}, nil)
	mocks.drops.EXPECT().FindDropsInBoundingBox(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	mocks.drops.EXPECT().CreateDrops(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, drops []*entity.Drop) (*repository.CreateDropsResult, error) {
			return &repository.CreateDropsResult{
				Created: len(drops) - 1,
				Failed:  []repository.DropFailure{{DropID: drops[0].ID, Err: errors.New("duplicate")}},
			}, repository.ErrPartialBatch
		})
	mocks.publisher.EXPECT().PublishDropBatchEvent(mock.Anything, mock.Anything).
		Run(func(_ context.Context, e *service.DropBatchEvent) { event = e }).
		Return(nil)
	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, mock.Anything, mock.Anything).Return(&repository.SweepResult{}, nil)

	result, err := svc.Tick(context.Background(), config.GenerationConfig{MinQuota: 3, MaxQuota: 3, DiscoveryRadiusMeters: 300, TTL: time.Hour})

	require.NoError(t, err)
	assert.Equal(t, 1, result.FailedUsers)
	assert.Equal(t, 3, result.Generated)
	assert.Equal(t, 2, result.Persisted)
	require.NotNil(t, event)
	assert.Len(t, event.DropIDs, 2)
}

func TestSchedulerService_Tick_PublishFailureIsTolerated(t *testing.T) {
	now := time.Now()
	svc, mocks := createTestScheduler(t, now)

	var (
		mu      sync.Mutex
		batches [][]*entity.Drop
	)

	mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, mock.Anything).Return([]*entity.UserLocation{activeUser(1, 1, now)}, nil)
	mocks.drops.EXPECT().FindDropsInBoundingBox(mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("replica lag"))
	mocks.drops.EXPECT().CreateDrops(mock.Anything, mock.Anything).RunAndReturn(persistAll(&mu, &batches))
	mocks.publisher.EXPECT().PublishDropBatchEvent(mock.Anything, mock.Anything).Return(errors.New("topic not found"))
	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, mock.Anything, mock.Anything).Return(&repository.SweepResult{}, nil)

	result, err := svc.Tick(context.Background(), config.GenerationConfig{MinQuota: 1, MaxQuota: 1, DiscoveryRadiusMeters: 300, TTL: time.Hour})

	require.NoError(t, err)
	assert.Equal(t, 0, result.FailedUsers)
	assert.Equal(t, 1, result.Persisted)
}

func TestSchedulerService_Tick_ZeroQuotaSkipsPersistence(t *testing.T) {
	now := time.Now()
	svc, mocks := createTestScheduler(t, now)

	mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, mock.Anything).Return([]*entity.UserLocation{activeUser(1, 1, now)}, nil)
	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, mock.Anything, mock.Anything).Return(&repository.SweepResult{}, nil)

	result, err := svc.Tick(context.Background(), config.GenerationConfig{MinQuota: 0, MaxQuota: 0, DiscoveryRadiusMeters: 300, TTL: time.Hour})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Users)
	assert.Equal(t, 0, result.Generated)
}

func TestSchedulerService_Tick_SweepsAfterListFailure(t *testing.T) {
	now := time.Now()
	svc, mocks := createTestScheduler(t, now)
	listErr := errors.New("connection refused")

	mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, mock.Anything).Return(nil, listErr)
	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, now, false).Return(&repository.SweepResult{Deleted: 7}, nil)

	result, err := svc.Tick(context.Background(), config.GenerationConfig{MinQuota: 1, MaxQuota: 2, DiscoveryRadiusMeters: 300, TTL: time.Hour})

	require.Error(t, err)
	assert.ErrorIs(t, err, listErr)
	require.NotNil(t, result)
	assert.Equal(t, int64(7), result.Swept.Deleted)
}

func TestSchedulerService_Tick_SweepsAfterCancellation(t *testing.T) {
	now := time.Now()
	svc, mocks := createTestScheduler(t, now)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, mock.Anything).
		Return([]*entity.UserLocation{activeUser(1, 1, now), activeUser(2, 2, now)}, nil)
	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, now, false).
		Run(func(sweepCtx context.Context, _ time.Time, _ bool) {
			assert.NoError(t, sweepCtx.Err())
		}).
		Return(&repository.SweepResult{Deleted: 3}, nil)

	result, err := svc.Tick(ctx, config.GenerationConfig{MinQuota: 1, MaxQuota: 1, DiscoveryRadiusMeters: 300, TTL: time.Hour})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, result.SkippedUsers)
	assert.Equal(t, int64(3), result.Swept.Deleted)
}

func TestSchedulerService_Tick_SweepFailure(t *testing.T) {
	now := time.Now()
	svc, mocks := createTestScheduler(t, now)
	sweepErr := errors.New("lock timeout")

	mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, mock.Anything).Return(nil, nil)
	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, mock.Anything, mock.Anything).Return(nil, sweepErr)

	result, err := svc.Tick(context.Background(), config.GenerationConfig{MinQuota: 1, MaxQuota: 1, DiscoveryRadiusMeters: 300, TTL: time.Hour})

	assert.ErrorIs(t, err, sweepErr)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Users)
}

func TestSchedulerService_Sweep(t *testing.T) {
	now := time.Now()
	svc, mocks := createTestScheduler(t, now)

	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, now, false).Return(&repository.SweepResult{Deleted: 4}, nil)

	result, err := svc.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Deleted)
}

func TestSchedulerService_Tick_StoreCallsCarryRequestAndTickLogger(t *testing.T) {
	now := time.Now()
	svc, mocks := createTestScheduler(t, now)
	user := activeUser(45.0, -73.0, now)

	var sink syncBuffer
	requestLogger := slog.New(slog.NewTextHandler(&sink, nil)).With(slog.String("request_id", "req-42"))
	ctx := deliverycontext.WithLogger(context.Background(), requestLogger)

	mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, mock.Anything).Return([]*entity.UserLocation{user}, nil)
	mocks.drops.EXPECT().FindDropsInBoundingBox(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	mocks.drops.EXPECT().CreateDrops(mock.Anything, mock.Anything).
		RunAndReturn(func(storeCtx context.Context, drops []*entity.Drop) (*repository.CreateDropsResult, error) {
			deliverycontext.GetLoggerOrDefault(storeCtx, nil).Info("store write")

			return &repository.CreateDropsResult{Created: len(drops)}, nil
		})
	mocks.publisher.EXPECT().PublishDropBatchEvent(mock.Anything, mock.Anything).Return(nil)
	mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(storeCtx context.Context, _ time.Time, _ bool) (*repository.SweepResult, error) {
			deliverycontext.GetLoggerOrDefault(storeCtx, nil).Info("store sweep")

			return &repository.SweepResult{}, nil
		})

	result, err := svc.Tick(ctx, config.GenerationConfig{MinQuota: 2, MaxQuota: 2, DiscoveryRadiusMeters: 300, TTL: time.Hour})
	require.NoError(t, err)

	lines := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(sink.String()), "\n") {
		for _, msg := range []string{"store write", "store sweep", "Lifecycle tick finished"} {
			if strings.Contains(line, `msg="`+msg+`"`) {
				lines[msg] = line
			}
		}
	}

	require.Len(t, lines, 3)
	for msg, line := range lines {
		assert.Contains(t, line, "request_id=req-42", msg)
		assert.Contains(t, line, "tick_id="+result.TickID, msg)
	}
	assert.Contains(t, lines["store write"], "user_id="+user.UserID.String())
	assert.NotContains(t, lines["store sweep"], "user_id=")
}

func TestSchedulerService_Tick_SeededQuotasAreReproducible(t *testing.T) {
	now := time.Now()
	users := []*entity.UserLocation{
		activeUser(10, 10, now), activeUser(20, 20, now), activeUser(30, 30, now),
		activeUser(40, 40, now), activeUser(50, 50, now),
	}
	gen := config.GenerationConfig{MinQuota: 1, MaxQuota: 8, DiscoveryRadiusMeters: 300, TTL: time.Hour}

	run := func() int {
		svc, mocks := createTestScheduler(t, now)

		mocks.locations.EXPECT().ListActiveUserLocations(mock.Anything, mock.Anything).Return(users, nil)
		mocks.drops.EXPECT().FindDropsInBoundingBox(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
		mocks.drops.EXPECT().CreateDrops(mock.Anything, mock.Anything).
			RunAndReturn(func(_ context.Context, drops []*entity.Drop) (*repository.CreateDropsResult, error) {
				return &repository.CreateDropsResult{Created: len(drops)}, nil
			})
		mocks.publisher.EXPECT().PublishDropBatchEvent(mock.Anything, mock.Anything).Return(nil)
		mocks.drops.EXPECT().DeleteExpiredDrops(mock.Anything, mock.Anything, mock.Anything).Return(&repository.SweepResult{}, nil)

		result, err := svc.Tick(context.Background(), gen)
		require.NoError(t, err)

		return result.Generated
	}

	// Workers draw in any order, but the multiset of quotas is fixed by the seed.
	assert.Equal(t, run(), run())
}
