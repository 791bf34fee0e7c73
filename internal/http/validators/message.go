package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "helpify.com/helpify/internal/data_models"
)

func ValidateSendMessageRequest(r *dto.SendMessageRequest) error {
	if strings.TrimSpace(r.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}
	return nil
}
