package auth

import (
	"testing"
	"time"

	"dropradar/config"
	"dropradar/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_GenerateAndValidateAccessToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	userID := uuid.New()
	token, err := jwtService.GenerateAccessToken(userID, entity.TierElevated, time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.TierElevated, claims.Tier)
}

func TestJWTService_UnknownTierFallsBackToFree(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("secret"))
	require.NoError(t, err)

	token, err := jwtService.GenerateAccessToken(uuid.New(), entity.Tier("platinum"), time.Minute)
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, entity.TierFree, claims.Tier)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("secret"))
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse access token")
}

func TestJWTService_ExpiredToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("secret"))
	require.NoError(t, err)

	token, err := jwtService.GenerateAccessToken(uuid.New(), entity.TierFree, -time.Minute)
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("secret-one"))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestConfig("secret-two"))
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken(uuid.New(), entity.TierFree, time.Minute)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsNonAccessType(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("secret"))
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.New().String(),
		"type": "refresh",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken(signed)
	assert.Error(t, err)
}

func TestNewJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}
