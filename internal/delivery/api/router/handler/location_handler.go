package handler

import (
	"log/slog"
	"net/http"

	"dropradar/internal/delivery/api/response"
	deliverycontext "dropradar/internal/delivery/context"
	domainerrors "dropradar/internal/domain/errors"
	"dropradar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LocationHandlerParams holds dependencies for LocationHandler, injected by Fx.
type LocationHandlerParams struct {
	fx.In

	LocationUC usecase.LocationUsecase
	Logger     *slog.Logger
}

// LocationHandler holds dependencies for location reporting handlers
type LocationHandler struct {
	locationUC usecase.LocationUsecase
	logger     *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler
func NewLocationHandler(params LocationHandlerParams) *LocationHandler {
	return &LocationHandler{
		locationUC: params.LocationUC,
		logger:     params.Logger,
	}
}

// ReportLocationRequest represents the body of PUT /api/v1/location
type ReportLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// ReportLocation handles PUT /api/v1/location
func (h *LocationHandler) ReportLocation(c echo.Context) error {
	claims := deliverycontext.GetClaims(c)
	if claims == nil {
		return domainerrors.ErrUnauthorized
	}

	var req ReportLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid location input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, domainerrors.ErrValidationFailed.ErrorCode(), domainerrors.ErrValidationFailed.Message(), err.Error())
	}

	location, err := h.locationUC.ReportLocation(c.Request().Context(), claims.UserID, &usecase.ReportLocationInput{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, LocationResponse{
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		UpdatedAt: location.UpdatedAt,
		Active:    true,
	})
}

// GetLocation handles GET /api/v1/location
func (h *LocationHandler) GetLocation(c echo.Context) error {
	claims := deliverycontext.GetClaims(c)
	if claims == nil {
		return domainerrors.ErrUnauthorized
	}

	status, err := h.locationUC.GetLocation(c.Request().Context(), claims.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, LocationResponse{
		Latitude:  status.Location.Latitude,
		Longitude: status.Location.Longitude,
		UpdatedAt: status.Location.UpdatedAt,
		Active:    status.Active,
	})
}
