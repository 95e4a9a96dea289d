// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Drop is a short-lived, location-bound entity holding rewards.
// Drops are shared world state and keep no reference to the user they were seeded around.
type Drop struct {
	ID        uuid.UUID   // Immutable identifier assigned at generation.
	Latitude  float64     // Geographic latitude in degrees.
	Longitude float64     // Geographic longitude in degrees.
	Type      DropType    // Category of the drop.
	Rewards   []RewardRef // Ordered reward references, immutable after creation.
	CreatedAt time.Time   // Generation timestamp.
	ExpiresAt time.Time   // CreatedAt + TTL.
	IsActive  bool        // Starts true and never reverts once cleared.
	ClaimedAt *time.Time  // Set by external claim processing.
}

// IsLive reports whether the drop is visible at the given instant.
func (d *Drop) IsLive(now time.Time) bool {
	return d.IsActive && d.ExpiresAt.After(now)
}

// Point returns the drop location as an orb point (lon, lat).
func (d *Drop) Point() orb.Point {
	return orb.Point{d.Longitude, d.Latitude}
}

// RewardRef references one reward bundled in a drop.
type RewardRef struct {
	Kind     string `json:"kind"`
	RefID    string `json:"ref_id"`
	Rarity   string `json:"rarity"`
	Quantity int    `json:"quantity"`
}
