package impl

import (
	"context"
	"log/slog"
	"time"

	"dropradar/config"
	deliverycontext "dropradar/internal/delivery/context"
	"dropradar/internal/domain/entity"
	"dropradar/internal/domain/repository"

	"github.com/pkg/errors"
)

// ComputeExpiry returns the expiry of a drop created at now. A non-positive ttl
// yields a drop that is never live.
func ComputeExpiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return now
	}

	return now.Add(ttl)
}

// IsLive reports whether drop is active and unexpired at now.
func IsLive(drop *entity.Drop, now time.Time) bool {
	return drop != nil && drop.IsLive(now)
}

// ExpirationPolicy removes drops whose expiry has passed.
type ExpirationPolicy struct {
	drops         repository.DropRepository
	logger        *slog.Logger
	retainClaimed bool
}

// NewExpirationPolicy creates the policy from the drops expiration config.
func NewExpirationPolicy(cfg *config.Config, drops repository.DropRepository, logger *slog.Logger) *ExpirationPolicy {
	policy := &ExpirationPolicy{
		drops:  drops,
		logger: logger,
	}
	if cfg != nil && cfg.Drops != nil {
		policy.retainClaimed = cfg.Drops.Expiration.RetainClaimed
	}

	return policy
}

// Sweep clears every drop expired at now. Running it twice with the same now
// changes nothing the second time.
func (p *ExpirationPolicy) Sweep(ctx context.Context, now time.Time) (*repository.SweepResult, error) {
	result, err := p.drops.DeleteExpiredDrops(ctx, now, p.retainClaimed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sweep expired drops")
	}

	deliverycontext.GetLoggerOrDefault(ctx, p.logger).Info("Expired drops swept",
		slog.Int64("deleted", result.Deleted),
		slog.Int64("retained", result.Retained),
		slog.Bool("retain_claimed", p.retainClaimed),
		slog.Time("cutoff", now),
	)

	return result, nil
}
