package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	middleware "helpify.com/helpify/internal/http/middlewares"
	"helpify.com/helpify/internal/services"
)

const healthCheckTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	accountService      *services.AccountService
	taskService         *services.TaskService
	applicationService  *services.ApplicationService
	messageService      *services.MessageService
	notificationService *services.NotificationService
	db                  Pinger
}

func NewHandler(
	accountService *services.AccountService,
	taskService *services.TaskService,
	applicationService *services.ApplicationService,
	messageService *services.MessageService,
	notificationService *services.NotificationService,
	db Pinger,
) *Handler {
	return &Handler{
		accountService:      accountService,
		taskService:         taskService,
		applicationService:  applicationService,
		messageService:      messageService,
		notificationService: notificationService,
		db:                  db,
	}
}

func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status":   "unavailable",
			"database": "down",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":   "ok",
		"database": "up",
	})
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	return nil
}

func actor(c echo.Context) services.Actor {
	return middleware.ActorFrom(c)
}
