package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "helpify.com/helpify/internal/data_models"
	apperrors "helpify.com/helpify/internal/errors"
)

var kindByStatus = map[int]apperrors.Kind{
	http.StatusBadRequest:   apperrors.KindValidation,
	http.StatusUnauthorized: apperrors.KindUnauthorized,
	http.StatusForbidden:    apperrors.KindForbidden,
	http.StatusNotFound:     apperrors.KindNotFound,
	http.StatusConflict:     apperrors.KindConflict,
}

const kindRateLimited = "rate_limited"

// NewErrorHandler renders every error as {"error":{"code","kind","message"}}.
// Infrastructure failures are logged and reported with a generic message.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := resolveError(err)
		if body.Code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, dto.ErrorResponse{Error: body})
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}

func resolveError(err error) dto.ErrorBody {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		message := appErr.Message
		if appErr.Kind == apperrors.KindInfrastructure {
			message = "internal server error"
		}
		return dto.ErrorBody{Code: appErr.StatusCode, Kind: string(appErr.Kind), Message: message}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		kind := string(kindByStatus[he.Code])
		switch {
		case he.Code == http.StatusTooManyRequests:
			kind = kindRateLimited
		case he.Code >= http.StatusInternalServerError:
			kind = string(apperrors.KindInfrastructure)
		case kind == "":
			kind = "http_error"
		}

		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		} else if he.Message != nil {
			message = fmt.Sprint(he.Message)
		}
		return dto.ErrorBody{Code: he.Code, Kind: kind, Message: message}
	}

	return dto.ErrorBody{
		Code:    http.StatusInternalServerError,
		Kind:    string(apperrors.KindInfrastructure),
		Message: "internal server error",
	}
}
