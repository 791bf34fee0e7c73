package model

import (
	"time"

	"github.com/shopspring/decimal"

	"helpify.com/helpify/internal/constants"
)

type Application struct {
	ID        string                      `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string                      `gorm:"size:36;not null;index:idx_applications_task_helper" json:"task_id"`
	HelperID  string                      `gorm:"size:36;not null;index:idx_applications_task_helper;index" json:"helper_id"`
	Proposal  string                      `gorm:"type:text;not null" json:"proposal"`
	BidAmount decimal.Decimal             `gorm:"type:decimal(10,2);not null" json:"bid_amount"`
	Status    constants.ApplicationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}
