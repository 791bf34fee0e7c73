package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "helpify.com/helpify/internal/data_models"
)

func ValidateSubmitApplicationRequest(r *dto.SubmitApplicationRequest) error {
	if strings.TrimSpace(r.Proposal) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "proposal is required")
	}
	if r.BidAmount == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bid_amount is required")
	}
	return nil
}

func ValidateDecideApplicationRequest(r *dto.DecideApplicationRequest) error {
	if strings.TrimSpace(r.Decision) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "decision is required")
	}
	return nil
}
