package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "helpify.com/helpify/internal/data_models"
)

func ValidateTaskRequest(r *dto.TaskRequestData) error {
	if strings.TrimSpace(r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "location is required")
	}
	if r.ScheduledTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "scheduled_time is required")
	}
	if r.Budget == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "budget is required")
	}
	return nil
}

func ValidateUpdateTaskStatusRequest(r *dto.UpdateTaskStatusRequest) error {
	if strings.TrimSpace(r.Status) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	return nil
}
