// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"dropradar/config"
	"dropradar/internal/domain/entity"
	"dropradar/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const accessTokenType = "access"

// accessTokenClaims is the wire form of an access token.
type accessTokenClaims struct {
	Tier string `json:"tier,omitempty"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret []byte // Secret key for signing access tokens.
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	return &jwtService{
		accessSecret: []byte(cfg.SecretKey.Access),
	}, nil
}

// GenerateAccessToken signs an access token carrying the user ID and tier.
func (s *jwtService) GenerateAccessToken(userID uuid.UUID, tier entity.Tier, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := accessTokenClaims{
		Tier: tier.String(),
		Type: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// ValidateAccessToken parses the token and maps its claims. Unknown tiers fall back to free.
func (s *jwtService) ValidateAccessToken(tokenString string) (*entity.AccessClaims, error) {
	claims := &accessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.accessSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse access token")
	}
	if !token.Valid {
		return nil, errors.New("access token is not valid")
	}
	if claims.Type != accessTokenType {
		return nil, errors.Errorf("unexpected token type: %s", claims.Type)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subject in access token")
	}

	return &entity.AccessClaims{
		UserID: userID,
		Tier:   entity.ParseTier(claims.Tier),
	}, nil
}
