package errors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindForbidden      Kind = "forbidden"
	KindUnauthorized   Kind = "unauthorized"
	KindInvalidState   Kind = "invalid_state"
	KindConflict       Kind = "conflict"
	KindInfrastructure Kind = "infrastructure"
)

var statusByKind = map[Kind]int{
	KindValidation:     http.StatusBadRequest,
	KindNotFound:       http.StatusNotFound,
	KindForbidden:      http.StatusForbidden,
	KindUnauthorized:   http.StatusUnauthorized,
	KindInvalidState:   http.StatusConflict,
	KindConflict:       http.StatusConflict,
	KindInfrastructure: http.StatusInternalServerError,
}

type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *Exception) Error() string {
	if e.Err != nil && e.Kind == KindInfrastructure {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.Err
}

// Is matches another Exception of the same kind. A target carrying a
// message must also match that message.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

func newException(kind Kind, message string) *Exception {
	return &Exception{
		Kind:       kind,
		Message:    message,
		StatusCode: statusByKind[kind],
	}
}

// Kind sentinels for errors.Is checks.
var (
	ErrValidation     = &Exception{Kind: KindValidation, StatusCode: http.StatusBadRequest}
	ErrNotFound       = &Exception{Kind: KindNotFound, StatusCode: http.StatusNotFound}
	ErrForbidden      = &Exception{Kind: KindForbidden, StatusCode: http.StatusForbidden}
	ErrUnauthorized   = &Exception{Kind: KindUnauthorized, StatusCode: http.StatusUnauthorized}
	ErrInvalidState   = &Exception{Kind: KindInvalidState, StatusCode: http.StatusConflict}
	ErrConflict       = &Exception{Kind: KindConflict, StatusCode: http.StatusConflict}
	ErrInfrastructure = &Exception{Kind: KindInfrastructure, StatusCode: http.StatusInternalServerError}
)

func Validation(message string) *Exception {
	return newException(KindValidation, message)
}

func NotFound(message string) *Exception {
	return newException(KindNotFound, message)
}

func Forbidden(message string) *Exception {
	return newException(KindForbidden, message)
}

func Unauthorized(message string) *Exception {
	return newException(KindUnauthorized, message)
}

func InvalidState(message string) *Exception {
	return newException(KindInvalidState, message)
}

func Conflict(message string) *Exception {
	return newException(KindConflict, message)
}

// Infrastructure wraps a data-store or runtime failure. Domain exceptions
// pass through unchanged so callers can wrap any error they get back.
func Infrastructure(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Exception
	if errors.As(err, &appErr) {
		return err
	}
	e := newException(KindInfrastructure, "internal error")
	e.Err = err
	return e
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
