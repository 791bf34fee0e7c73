package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	dto "helpify.com/helpify/internal/data_models"
	"helpify.com/helpify/internal/services"
)

func queryFlag(c echo.Context, name string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.QueryParam(name)))
	return err == nil && v
}

func (h *Handler) ListNotifications(c echo.Context) error {
	page := 1
	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "page must be a positive integer")
		}
		if p > services.MaxNotificationPage {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("page must not exceed %d", services.MaxNotificationPage))
		}
		page = p
	}

	result, err := h.notificationService.ListNotifications(c.Request().Context(), actor(c), services.NotificationFilter{
		Type:   c.QueryParam("type"),
		Status: c.QueryParam("status"),
		Page:   page,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) UnreadNotificationCount(c echo.Context) error {
	n, err := h.notificationService.UnreadCount(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}

func (h *Handler) MarkNotificationRead(c echo.Context) error {
	if err := h.notificationService.MarkRead(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkNotificationsRead marks the listed ids read, or every notification
// when all=true is given in the body or query string.
func (h *Handler) MarkNotificationsRead(c echo.Context) error {
	var req dto.MarkNotificationsReadRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	var (
		n   int64
		err error
	)
	switch {
	case req.All || queryFlag(c, "all"):
		n, err = h.notificationService.MarkAllRead(ctx, actor(c))
	case len(req.IDs) > 0:
		n, err = h.notificationService.MarkManyRead(ctx, actor(c), req.IDs)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "ids or all=true is required")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}

func (h *Handler) DeleteNotification(c echo.Context) error {
	if err := h.notificationService.Delete(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteNotifications deletes the listed ids, or every read notification
// when read_only=true is given.
func (h *Handler) DeleteNotifications(c echo.Context) error {
	var req dto.DeleteNotificationsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	var (
		n   int64
		err error
	)
	switch {
	case req.ReadOnly || queryFlag(c, "read_only"):
		n, err = h.notificationService.DeleteAllRead(ctx, actor(c))
	case len(req.IDs) > 0:
		n, err = h.notificationService.DeleteMany(ctx, actor(c), req.IDs)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "ids or read_only=true is required")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}
