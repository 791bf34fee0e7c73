package services

import (
	"helpify.com/helpify/internal/constants"
	apperrors "helpify.com/helpify/internal/errors"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID   string
	UserType constants.UserType
}

func (a Actor) IsClient() bool {
	return a.UserType == constants.UserTypeClient
}

func (a Actor) IsHelper() bool {
	return a.UserType == constants.UserTypeHelper
}

func (a Actor) requireClient() error {
	if a.UserID == "" {
		return apperrors.Unauthorized("authentication required")
	}
	if !a.IsClient() {
		return apperrors.Forbidden("only clients can perform this action")
	}
	return nil
}

func (a Actor) requireHelper() error {
	if a.UserID == "" {
		return apperrors.Unauthorized("authentication required")
	}
	if !a.IsHelper() {
		return apperrors.Forbidden("only helpers can perform this action")
	}
	return nil
}

func (a Actor) requireUser() error {
	if a.UserID == "" {
		return apperrors.Unauthorized("authentication required")
	}
	return nil
}
