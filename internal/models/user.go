package model

import (
	"time"

	"helpify.com/helpify/internal/constants"
)

type User struct {
	ID           string             `gorm:"primaryKey;size:36" json:"id"`
	Fullname     string             `gorm:"size:120;not null" json:"fullname"`
	Email        string             `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string             `gorm:"size:255;not null" json:"-"`
	UserType     constants.UserType `gorm:"type:varchar(10);not null;index" json:"user_type"`
	Bio          string             `gorm:"type:text" json:"bio"`
	Rating       float64            `gorm:"not null;default:0" json:"rating"`
	TotalRatings int                `gorm:"not null;default:0" json:"total_ratings"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
