package services

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	apperrors "helpify.com/helpify/internal/errors"
)

const (
	minTitleLength       = 5
	minDescriptionLength = 20
	minProposalLength    = 10
	maxMessageLength     = 2000
	minFullnameLength    = 2
	minPasswordLength    = 8
)

var (
	minBudget = decimal.NewFromInt(10)
	maxBudget = decimal.NewFromInt(10000)
)

// TaskInput carries the client-editable task fields.
type TaskInput struct {
	Title         string
	Description   string
	Location      string
	ScheduledTime time.Time
	Budget        decimal.Decimal
}

func (in *TaskInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
}

func (in TaskInput) validate(now time.Time) error {
	if utf8.RuneCountInString(in.Title) < minTitleLength {
		return apperrors.Validation("title must be at least 5 characters")
	}
	if utf8.RuneCountInString(in.Description) < minDescriptionLength {
		return apperrors.Validation("description must be at least 20 characters")
	}
	if in.Location == "" {
		return apperrors.Validation("location is required")
	}
	if in.ScheduledTime.IsZero() {
		return apperrors.Validation("scheduled_time is required")
	}
	if in.ScheduledTime.Before(now) {
		return apperrors.Validation("scheduled_time cannot be in the past")
	}
	if in.Budget.LessThan(minBudget) || in.Budget.GreaterThan(maxBudget) {
		return apperrors.Validation("budget must be between 10 and 10000")
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperrors.Validation("email is invalid")
	}
	return nil
}
