package service

import (
	"time"

	"dropradar/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenService verifies access tokens issued by the account service.
// Generation exists for tooling and tests; the API never issues tokens.
type TokenService interface {
	// GenerateAccessToken signs an access token for a user and tier.
	GenerateAccessToken(userID uuid.UUID, tier entity.Tier, ttl time.Duration) (string, error)

	// ValidateAccessToken checks the signature, expiry and token type and returns the claims.
	ValidateAccessToken(tokenString string) (*entity.AccessClaims, error)
}
