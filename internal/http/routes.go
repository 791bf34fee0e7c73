package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	middleware "helpify.com/helpify/internal/http/middlewares"
	"helpify.com/helpify/internal/ratelimit"
)

func Register(e *echo.Echo, h *Handler, limiter *ratelimit.Limiter, verifier middleware.TokenVerifier, logger *zap.Logger) {
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.ZapLogger(logger))
	e.Use(middleware.RateLimiter(limiter, logger))

	e.GET("/health", h.Health)
	e.POST("/auth/register", h.RegisterUser)
	e.POST("/auth/login", h.Login)

	auth := middleware.Authenticate(verifier)

	e.GET("/me", h.GetProfile, auth)
	e.PATCH("/me", h.UpdateProfile, auth)

	e.POST("/tasks", h.CreateTask, auth)
	e.GET("/tasks", h.ListOpenTasks, auth)
	e.GET("/tasks/mine", h.ListMyTasks, auth)
	e.GET("/tasks/:id", h.GetTask, auth)
	e.PUT("/tasks/:id", h.UpdateTask, auth)
	e.PATCH("/tasks/:id/status", h.UpdateTaskStatus, auth)
	e.POST("/tasks/:id/applications", h.SubmitApplication, auth)
	e.GET("/tasks/:id/applications", h.ListTaskApplications, auth)

	e.GET("/applications/mine", h.ListMyApplications, auth)
	e.PATCH("/applications/:id", h.DecideApplication, auth)

	e.GET("/conversations", h.ListConversations, auth)
	e.GET("/conversations/:taskId/:counterpartyId/messages", h.ListConversationMessages, auth)
	e.POST("/conversations/:taskId/:counterpartyId/messages", h.SendMessage, auth)
	e.PATCH("/conversations/:taskId/:counterpartyId/read", h.MarkConversationRead, auth)

	e.GET("/notifications", h.ListNotifications, auth)
	e.GET("/notifications/unread-count", h.UnreadNotificationCount, auth)
	e.PATCH("/notifications/read", h.MarkNotificationsRead, auth)
	e.PATCH("/notifications/:id/read", h.MarkNotificationRead, auth)
	e.DELETE("/notifications", h.DeleteNotifications, auth)
	e.DELETE("/notifications/:id", h.DeleteNotification, auth)
}
