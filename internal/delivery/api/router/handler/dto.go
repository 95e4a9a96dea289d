package handler

import (
	"time"

	"dropradar/internal/domain/entity"
	"dropradar/internal/usecase"

	"github.com/google/uuid"
)

// DropResponse is the public view of a drop
type DropResponse struct {
	ID             uuid.UUID          `json:"id"`
	Latitude       float64            `json:"latitude"`
	Longitude      float64            `json:"longitude"`
	Type           string             `json:"type"`
	Rewards        []entity.RewardRef `json:"rewards"`
	CreatedAt      time.Time          `json:"created_at"`
	ExpiresAt      time.Time          `json:"expires_at"`
	DistanceMeters *float64           `json:"distance_meters,omitempty"`
}

// NearbyDropsResponse is the nearest-first drop list with the radius actually searched
type NearbyDropsResponse struct {
	Drops                 []DropResponse `json:"drops"`
	RequestedRadiusMeters float64        `json:"requested_radius_meters"`
	EffectiveRadiusMeters float64        `json:"effective_radius_meters"`
	Clamped               bool           `json:"clamped"`
	QueriedAt             time.Time      `json:"queried_at"`
}

// LocationResponse is the caller's stored position
type LocationResponse struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
	Active    bool      `json:"active"`
}

func toDropResponse(drop *entity.Drop) DropResponse {
	rewards := drop.Rewards
	if rewards == nil {
		rewards = []entity.RewardRef{}
	}

	return DropResponse{
		ID:        drop.ID,
		Latitude:  drop.Latitude,
		Longitude: drop.Longitude,
		Type:      drop.Type.String(),
		Rewards:   rewards,
		CreatedAt: drop.CreatedAt,
		ExpiresAt: drop.ExpiresAt,
	}
}

func toNearbyDropsResponse(result *usecase.ProximityResult) NearbyDropsResponse {
	drops := make([]DropResponse, 0, len(result.Drops))
	for _, nearby := range result.Drops {
		resp := toDropResponse(nearby.Drop)
		distance := nearby.DistanceMeters
		resp.DistanceMeters = &distance
		drops = append(drops, resp)
	}

	return NearbyDropsResponse{
		Drops:                 drops,
		RequestedRadiusMeters: result.RequestedRadiusMeters,
		EffectiveRadiusMeters: result.EffectiveRadiusMeters,
		Clamped:               result.Clamped,
		QueriedAt:             result.QueriedAt,
	}
}
