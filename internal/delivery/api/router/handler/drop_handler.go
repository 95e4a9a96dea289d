package handler

import (
	"log/slog"
	"net/http"

	"dropradar/internal/delivery/api/response"
	deliverycontext "dropradar/internal/delivery/context"
	domainerrors "dropradar/internal/domain/errors"
	"dropradar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DropHandlerParams holds dependencies for DropHandler, injected by Fx.
type DropHandlerParams struct {
	fx.In

	ProximityUC usecase.ProximityUsecase
	Logger      *slog.Logger
}

// DropHandler serves nearby-drop queries
type DropHandler struct {
	proximityUC usecase.ProximityUsecase
	logger      *slog.Logger
}

// NewDropHandler is the constructor for DropHandler
func NewDropHandler(params DropHandlerParams) *DropHandler {
	return &DropHandler{
		proximityUC: params.ProximityUC,
		logger:      params.Logger,
	}
}

// NearbyDropsRequest represents the query of GET /api/v1/drops/nearby
type NearbyDropsRequest struct {
	Latitude  float64 `query:"latitude" validate:"latitude"`
	Longitude float64 `query:"longitude" validate:"longitude"`
	Radius    float64 `query:"radius" validate:"omitempty,gt=0"`
}

// FindNearby handles GET /api/v1/drops/nearby?latitude=&longitude=&radius=
func (h *DropHandler) FindNearby(c echo.Context) error {
	claims := deliverycontext.GetClaims(c)
	if claims == nil {
		return domainerrors.ErrUnauthorized
	}

	var req NearbyDropsRequest
	err := echo.QueryParamsBinder(c).
		MustFloat64("latitude", &req.Latitude).
		MustFloat64("longitude", &req.Longitude).
		Float64("radius", &req.Radius).
		BindError()
	if err != nil {
		return response.BadRequest(c, domainerrors.ErrValidationFailed.ErrorCode(), "latitude and longitude are required numbers, radius must be a number")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, domainerrors.ErrValidationFailed.ErrorCode(), domainerrors.ErrValidationFailed.Message(), err.Error())
	}

	query := &usecase.ProximityQuery{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Tier:      claims.Tier,
	}
	if c.QueryParam("radius") != "" {
		query.RadiusMeters = &req.Radius
	}

	result, err := h.proximityUC.FindNearby(c.Request().Context(), query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toNearbyDropsResponse(result))
}

// GetDrop handles GET /api/v1/drops/:id
func (h *DropHandler) GetDrop(c echo.Context) error {
	dropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid drop ID")
	}

	drop, err := h.proximityUC.GetDrop(c.Request().Context(), dropID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toDropResponse(drop))
}
