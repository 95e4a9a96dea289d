package sqlite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"dropradar/internal/domain/entity"
	"dropradar/internal/domain/repository"
	"dropradar/internal/geo"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStore(t *testing.T) (repository.DropRepository, repository.UserLocationRepository) {
	t.Helper()

	db, err := Open(context.Background(), memoryPath, newDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDropRepository(db), NewUserLocationRepository(db)
}

func newTestDrop(lat, lon float64, createdAt time.Time, ttl time.Duration) *entity.Drop {
	return &entity.Drop{
		ID:        uuid.New(),
		Latitude:  lat,
		Longitude: lon,
		Type:      entity.DropTypeCard,
		Rewards: []entity.RewardRef{
			{Kind: "card", RefID: "card-001", Rarity: "rare", Quantity: 1},
		},
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(ttl),
		IsActive:  true,
	}
}

func TestDropRepository_CreateAndFindByID(t *testing.T) {
	drops, _ := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	drop := newTestDrop(45.0, -73.0, now, time.Hour)
	result, err := drops.CreateDrops(ctx, []*entity.Drop{drop})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Empty(t, result.Failed)

	found, err := drops.FindDropByID(ctx, drop.ID)
	require.NoError(t, err)
	assert.Equal(t, drop.ID, found.ID)
	assert.Equal(t, drop.Type, found.Type)
	assert.Equal(t, drop.Rewards, found.Rewards)
	assert.True(t, found.IsActive)
	assert.Nil(t, found.ClaimedAt)
	assert.True(t, drop.ExpiresAt.Equal(found.ExpiresAt))

	_, err = drops.FindDropByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrDropNotFound)
}

func TestDropRepository_CreateDrops_ReportsPerItemFailures(t *testing.T) {
	drops, _ := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	existing := newTestDrop(45.0, -73.0, now, time.Hour)
	_, err := drops.CreateDrops(ctx, []*entity.Drop{existing})
	require.NoError(t, err)

	fresh := newTestDrop(45.001, -73.001, now, time.Hour)
	result, err := drops.CreateDrops(ctx, []*entity.Drop{existing, fresh})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrPartialBatch)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, existing.ID, result.Failed[0].DropID)

	_, err = drops.FindDropByID(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestDropRepository_FindDropsInBoundingBox(t *testing.T) {
	drops, _ := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	inside := newTestDrop(45.0005, -73.0005, now, time.Hour)
	outside := newTestDrop(45.1, -73.0, now, time.Hour)
	expired := newTestDrop(45.0, -73.0, now.Add(-2*time.Hour), time.Hour)
	_, err := drops.CreateDrops(ctx, []*entity.Drop{inside, outside, expired})
	require.NoError(t, err)

	box := geo.BoundingBox(orb.Point{-73.0, 45.0}, 300)
	found, err := drops.FindDropsInBoundingBox(ctx, box, now)
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, inside.ID, found[0].ID)
}

func TestDropRepository_FindDropsInBoundingBox_Antimeridian(t *testing.T) {
	drops, _ := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	east := newTestDrop(0, 179.9995, now, time.Hour)
	west := newTestDrop(0, -179.9995, now, time.Hour)
	far := newTestDrop(0, 0, now, time.Hour)
	_, err := drops.CreateDrops(ctx, []*entity.Drop{east, west, far})
	require.NoError(t, err)

	box := geo.BoundingBox(orb.Point{179.9999, 0}, 1000)
	found, err := drops.FindDropsInBoundingBox(ctx, box, now)
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(found))
	for _, d := range found {
		ids = append(ids, d.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{east.ID, west.ID}, ids)
}

func TestDropRepository_DeleteExpiredDrops_Idempotent(t *testing.T) {
	drops, _ := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	live := newTestDrop(45.0, -73.0, now, time.Hour)
	expiredA := newTestDrop(45.0, -73.0, now.Add(-3*time.Hour), time.Hour)
	expiredB := newTestDrop(45.0, -73.0, now.Add(-time.Hour), time.Hour)
	_, err := drops.CreateDrops(ctx, []*entity.Drop{live, expiredA, expiredB})
	require.NoError(t, err)

	first, err := drops.DeleteExpiredDrops(ctx, now, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.Deleted)

	second, err := drops.DeleteExpiredDrops(ctx, now, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.Deleted)
	assert.Equal(t, int64(0), second.Retained)

	_, err = drops.FindDropByID(ctx, live.ID)
	assert.NoError(t, err)
}

func TestDropRepository_DeleteExpiredDrops_RetainClaimed(t *testing.T) {
	drops, _ := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	claimedAt := now.Add(-90 * time.Minute)
	claimed := newTestDrop(45.0, -73.0, now.Add(-2*time.Hour), time.Hour)
	claimed.ClaimedAt = &claimedAt
	unclaimed := newTestDrop(45.0, -73.0, now.Add(-2*time.Hour), time.Hour)
	_, err := drops.CreateDrops(ctx, []*entity.Drop{claimed, unclaimed})
	require.NoError(t, err)

	first, err := drops.DeleteExpiredDrops(ctx, now, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Deleted)
	assert.Equal(t, int64(1), first.Retained)

	second, err := drops.DeleteExpiredDrops(ctx, now, true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.Deleted)
	assert.Equal(t, int64(0), second.Retained)

	kept, err := drops.FindDropByID(ctx, claimed.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)
	require.NotNil(t, kept.ClaimedAt)
	assert.True(t, claimedAt.Equal(*kept.ClaimedAt))

	_, err = drops.FindDropByID(ctx, unclaimed.ID)
	assert.ErrorIs(t, err, repository.ErrDropNotFound)
}

func TestDropRepository_DeleteExpiredDrops_RetainsInactiveClaimedOnce(t *testing.T) {
	drops, _ := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	claimedAt := now.Add(-90 * time.Minute)
	claimed := newTestDrop(45.0, -73.0, now.Add(-2*time.Hour), time.Hour)
	claimed.ClaimedAt = &claimedAt
	claimed.IsActive = false
	_, err := drops.CreateDrops(ctx, []*entity.Drop{claimed})
	require.NoError(t, err)

	first, err := drops.DeleteExpiredDrops(ctx, now, true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.Deleted)
	assert.Equal(t, int64(1), first.Retained)

	second, err := drops.DeleteExpiredDrops(ctx, now.Add(time.Minute), true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.Retained)

	kept, err := drops.FindDropByID(ctx, claimed.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)
}

func TestUserLocationRepository_UpsertAndList(t *testing.T) {
	_, locations := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	userID := uuid.New()
	require.NoError(t, locations.UpsertUserLocation(ctx, &entity.UserLocation{
		UserID: userID, Latitude: 45.0, Longitude: -73.0, UpdatedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, locations.UpsertUserLocation(ctx, &entity.UserLocation{
		UserID: userID, Latitude: 46.0, Longitude: -72.0, UpdatedAt: now,
	}))

	stale := uuid.New()
	require.NoError(t, locations.UpsertUserLocation(ctx, &entity.UserLocation{
		UserID: stale, Latitude: 10.0, Longitude: 10.0, UpdatedAt: now.Add(-time.Hour),
	}))

	found, err := locations.FindUserLocation(ctx, userID)
	require.NoError(t, err)
	assert.InDelta(t, 46.0, found.Latitude, 0)
	assert.InDelta(t, -72.0, found.Longitude, 0)
	assert.True(t, now.Equal(found.UpdatedAt))

	active, err := locations.ListActiveUserLocations(ctx, now.Add(-15*time.Minute))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, userID, active[0].UserID)

	_, err = locations.FindUserLocation(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserLocationNotFound)
}
