package model

import (
	"time"

	"github.com/google/uuid"
)

// InterestZoneModel is the GORM-specific struct for the 'interest_zones' table.
type InterestZoneModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"not null;index:idx_interest_zones_on_user"`
	Latitude     float64   `gorm:"type:decimal(10,8);not null"`
	Longitude    float64   `gorm:"type:decimal(11,8);not null"`
	RadiusMeters float64   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (InterestZoneModel) TableName() string {
	return "interest_zones"
}
