package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"helpify.com/helpify/internal/constants"
	dto "helpify.com/helpify/internal/data_models"
	"helpify.com/helpify/internal/http/validators"
)

func (h *Handler) SubmitApplication(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req dto.SubmitApplicationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateSubmitApplicationRequest(&req); err != nil {
		return err
	}

	app, err := h.applicationService.SubmitApplication(c.Request().Context(), actor(c), id, req.Proposal, *req.BidAmount)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, app)
}

func (h *Handler) ListTaskApplications(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	apps, err := h.applicationService.ListApplicationsForTask(c.Request().Context(), actor(c), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(apps),
		"applications": apps,
	})
}

func (h *Handler) ListMyApplications(c echo.Context) error {
	apps, err := h.applicationService.ListApplicationsForHelper(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(apps),
		"applications": apps,
	})
}

func (h *Handler) DecideApplication(c echo.Context) error {
	var req dto.DecideApplicationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateDecideApplicationRequest(&req); err != nil {
		return err
	}

	decision := constants.Decision(strings.ToLower(strings.TrimSpace(req.Decision)))
	app, err := h.applicationService.DecideApplication(c.Request().Context(), actor(c), c.Param("id"), decision)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, app)
}
