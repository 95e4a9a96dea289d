package handler

import (
	"net/http"
	"time"

	"dropradar/internal/delivery/api/response"
	deliverycontext "dropradar/internal/delivery/context"
	domainerrors "dropradar/internal/domain/errors"
	"dropradar/internal/domain/entity"
	"dropradar/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const testTokenTTL = time.Hour

// TestHandler handles test endpoints for local development
type TestHandler struct {
	tokenSvc service.TokenService
}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler(tokenSvc service.TokenService) *TestHandler {
	return &TestHandler{tokenSvc: tokenSvc}
}

// IssueTokenRequest represents the body of POST /test/token
type IssueTokenRequest struct {
	UserID string `json:"user_id" validate:"omitempty,uuid"`
	Tier   string `json:"tier" validate:"omitempty,oneof=free elevated"`
}

// IssueToken signs a short-lived access token so the API can be exercised without the account service
func (h *TestHandler) IssueToken(c echo.Context) error {
	var req IssueTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid token request")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, domainerrors.ErrValidationFailed.ErrorCode(), domainerrors.ErrValidationFailed.Message(), err.Error())
	}

	userID := uuid.New()
	if req.UserID != "" {
		userID = uuid.MustParse(req.UserID)
	}
	tier := entity.ParseTier(req.Tier)

	token, err := h.tokenSvc.GenerateAccessToken(userID, tier, testTokenTTL)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": token,
		"user_id":      userID,
		"tier":         tier,
		"expires_in":   int(testTokenTTL.Seconds()),
	})
}

// TestAuthMiddleware echoes the caller resolved by the authentication middleware
func (h *TestHandler) TestAuthMiddleware(c echo.Context) error {
	claims := deliverycontext.GetClaims(c)
	if claims == nil {
		return domainerrors.ErrUnauthorized
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"message": "Authentication middleware test successful",
		"user_id": claims.UserID,
		"tier":    claims.Tier,
		"status":  "authenticated",
	})
}

// HealthCheck reports liveness
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
