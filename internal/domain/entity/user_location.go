package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// UserLocation is the last reported position of a user. One row per user.
type UserLocation struct {
	UserID    uuid.UUID
	Latitude  float64
	Longitude float64
	UpdatedAt time.Time
}

// IsFresh reports whether the location was updated within the window ending at now.
func (l *UserLocation) IsFresh(now time.Time, window time.Duration) bool {
	return now.Sub(l.UpdatedAt) <= window
}

// Point returns the location as an orb point (lon, lat).
func (l *UserLocation) Point() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}
