package model

import (
	"time"

	"github.com/google/uuid"
)

// UserLocationModel is the GORM-specific struct for the 'user_locations' table.
type UserLocationModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Latitude  float64   `gorm:"type:double precision;not null"`
	Longitude float64   `gorm:"type:double precision;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false;index:idx_user_locations_updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (UserLocationModel) TableName() string {
	return "user_locations"
}
