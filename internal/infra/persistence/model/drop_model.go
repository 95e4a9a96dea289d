package model

import (
	"time"

	"dropradar/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DropModel is the GORM-specific struct for the 'drops' table.
type DropModel struct {
	ID        uuid.UUID                             `gorm:"type:uuid;primaryKey"`
	Latitude  float64                               `gorm:"type:double precision;not null;index:idx_drops_lat_lon"`
	Longitude float64                               `gorm:"type:double precision;not null;index:idx_drops_lat_lon"`
	Type      string                                `gorm:"type:varchar(32);not null"`
	Rewards   datatypes.JSONSlice[entity.RewardRef] `gorm:"type:jsonb;not null"`
	CreatedAt time.Time                             `gorm:"not null"`
	ExpiresAt time.Time                             `gorm:"not null;index:idx_drops_expires_at"`
	IsActive  bool                                  `gorm:"not null"`
	ClaimedAt  *time.Time
	RetainedAt *time.Time
}

// TableName explicitly sets the table name for GORM.
func (DropModel) TableName() string {
	return "drops"
}
