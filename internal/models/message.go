package model

import "time"

type Message struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID     string    `gorm:"size:36;not null;index" json:"task_id"`
	SenderID   string    `gorm:"size:36;not null;index" json:"sender_id"`
	ReceiverID string    `gorm:"size:36;not null;index" json:"receiver_id"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
