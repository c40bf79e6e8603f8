package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationMatchModel is the GORM-specific struct for the
// 'notification_matches' table.
type NotificationMatchModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	MessageID      uuid.UUID  `gorm:"not null;uniqueIndex:idx_notification_matches_user_message"`
	UserID         uuid.UUID  `gorm:"not null;uniqueIndex:idx_notification_matches_user_message"`
	ZoneID         uuid.UUID  `gorm:"not null"`
	DistanceMeters float64    `gorm:"not null"`
	NotifiedAt     *time.Time `gorm:"index:idx_notification_matches_on_notified"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationMatchModel) TableName() string {
	return "notification_matches"
}
