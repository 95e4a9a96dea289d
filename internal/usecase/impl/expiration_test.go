package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"dropradar/internal/domain/entity"
	"dropradar/internal/domain/repository"
	mockRepo "dropradar/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(7*24*time.Hour), ComputeExpiry(now, 7*24*time.Hour))
	assert.Equal(t, now, ComputeExpiry(now, 0))
	assert.Equal(t, now, ComputeExpiry(now, -time.Hour))
}

func TestIsLive_Monotonic(t *testing.T) {
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	drop := &entity.Drop{CreatedAt: created, ExpiresAt: ComputeExpiry(created, time.Hour), IsActive: true}

	assert.True(t, IsLive(drop, created))
	assert.True(t, IsLive(drop, created.Add(59*time.Minute)))
	assert.False(t, IsLive(drop, created.Add(time.Hour)))

	// Once dead, a drop stays dead for every later instant.
	for _, later := range []time.Duration{time.Hour, 2 * time.Hour, 24 * time.Hour, 365 * 24 * time.Hour} {
		assert.False(t, IsLive(drop, created.Add(later)))
	}

	drop.IsActive = false
	assert.False(t, IsLive(drop, created))
	assert.False(t, IsLive(nil, created))
}

func TestExpirationPolicy_Sweep(t *testing.T) {
	mockDropRepo := mockRepo.NewMockDropRepository(t)
	cfg := createTestConfig()
	cfg.Drops.Expiration.RetainClaimed = true
	policy := NewExpirationPolicy(cfg, mockDropRepo, newDiscardLogger())

	ctx := context.Background()
	now := time.Now()

	mockDropRepo.EXPECT().
		DeleteExpiredDrops(ctx, now, true).
		Return(&repository.SweepResult{Deleted: 3, Retained: 1}, nil).
		Once()
	mockDropRepo.EXPECT().
		DeleteExpiredDrops(ctx, now, true).
		Return(&repository.SweepResult{}, nil).
		Once()

	first, err := policy.Sweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.Deleted)
	assert.Equal(t, int64(1), first.Retained)

	second, err := policy.Sweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, repository.SweepResult{}, *second)
}

func TestExpirationPolicy_Sweep_Error(t *testing.T) {
	mockDropRepo := mockRepo.NewMockDropRepository(t)
	policy := NewExpirationPolicy(createTestConfig(), mockDropRepo, newDiscardLogger())

	ctx := context.Background()
	now := time.Now()
	dbErr := errors.New("connection reset")

	mockDropRepo.EXPECT().DeleteExpiredDrops(ctx, now, false).Return(nil, dbErr)

	result, err := policy.Sweep(ctx, now)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, dbErr)
}
