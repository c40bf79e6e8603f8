package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MessageGeometryModel is the GORM-specific struct for the 'message_geometries'
// table. The feature collection is stored as raw GeoJSON.
type MessageGeometryModel struct {
	MessageID  uuid.UUID      `gorm:"type:uuid;primary_key"`
	Collection datatypes.JSON `gorm:"type:jsonb;not null"`
	Matched    bool           `gorm:"not null;default:false;index:idx_message_geometries_on_matched"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (MessageGeometryModel) TableName() string {
	return "message_geometries"
}
