package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"helpify.com/helpify/internal/constants"
)

type Task struct {
	ID               string               `gorm:"primaryKey;size:36" json:"id"`
	ClientID         string               `gorm:"size:36;not null;index" json:"client_id"`
	AssignedHelperID *string              `gorm:"size:36;index" json:"assigned_helper_id,omitempty"`
	Title            string               `gorm:"size:255;not null" json:"title"`
	Description      string               `gorm:"type:text;not null" json:"description"`
	Location         string               `gorm:"size:255;not null" json:"location"`
	ScheduledTime    time.Time            `gorm:"not null" json:"scheduled_time"`
	Budget           decimal.Decimal      `gorm:"type:decimal(10,2);not null" json:"budget"`
	Status           constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Version          uint                 `gorm:"not null;default:1" json:"version"`
	SearchText       string               `gorm:"type:text;not null;default:''" json:"-"`
	LocationText     string               `gorm:"size:255;not null;default:''" json:"-"`
	CreatedAt        time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// RefreshSearchText recomputes the lower-cased columns used for substring
// search. Folding happens here because SQLite's LOWER only folds ASCII.
func (t *Task) RefreshSearchText() {
	t.SearchText = strings.ToLower(t.Title + "\n" + t.Description)
	t.LocationText = strings.ToLower(t.Location)
}

// TaskWithCounts is a task row joined with its application aggregates.
type TaskWithCounts struct {
	Task
	ApplicationCount         int64 `json:"application_count"`
	AcceptedApplicationCount int64 `json:"accepted_application_count"`
}
