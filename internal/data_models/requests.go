package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Fullname string `json:"fullname"`
	Bio      string `json:"bio"`
}

// TaskRequestData is the body of task create and update calls.
type TaskRequestData struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Location      string           `json:"location"`
	ScheduledTime time.Time        `json:"scheduled_time"`
	Budget        *decimal.Decimal `json:"budget"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

type SubmitApplicationRequest struct {
	Proposal  string           `json:"proposal"`
	BidAmount *decimal.Decimal `json:"bid_amount"`
}

type DecideApplicationRequest struct {
	Decision string `json:"decision"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

type MarkNotificationsReadRequest struct {
	IDs []string `json:"ids"`
	All bool     `json:"all"`
}

type DeleteNotificationsRequest struct {
	IDs      []string `json:"ids"`
	ReadOnly bool     `json:"read_only"`
}
