package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "helpify.com/helpify/internal/data_models"
)

func ValidateRegisterRequest(r *dto.RegisterRequest) error {
	if strings.TrimSpace(r.Fullname) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "fullname is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	if strings.TrimSpace(r.UserType) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_type is required")
	}
	return nil
}

func ValidateLoginRequest(r *dto.LoginRequest) error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}
	return nil
}

func ValidateUpdateProfileRequest(r *dto.UpdateProfileRequest) error {
	if strings.TrimSpace(r.Fullname) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "fullname is required")
	}
	return nil
}
