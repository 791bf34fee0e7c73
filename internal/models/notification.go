package model

import (
	"time"

	"helpify.com/helpify/internal/constants"
)

type Notification struct {
	ID        string                     `gorm:"primaryKey;size:36" json:"id"`
	UserID    string                     `gorm:"size:36;not null;index:idx_notifications_user_read" json:"user_id"`
	Type      constants.NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Content   string                     `gorm:"type:text;not null" json:"content"`
	RelatedID string                     `gorm:"size:36" json:"related_id"`
	IsRead    bool                       `gorm:"not null;default:false;index:idx_notifications_user_read" json:"is_read"`
	CreatedAt time.Time                  `gorm:"index" json:"created_at"`
}
