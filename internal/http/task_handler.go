package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"helpify.com/helpify/internal/constants"
	dto "helpify.com/helpify/internal/data_models"
	apperrors "helpify.com/helpify/internal/errors"
	"helpify.com/helpify/internal/http/validators"
	"helpify.com/helpify/internal/services"
)

func taskInput(req *dto.TaskRequestData) services.TaskInput {
	return services.TaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		ScheduledTime: req.ScheduledTime,
		Budget:        *req.Budget,
	}
}

func taskID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return "", apperrors.ErrTaskIDRequired
	}
	return id, nil
}

// decimalQuery parses an optional decimal query parameter.
func decimalQuery(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrors.Validation(name + " must be a number")
	}
	return &d, nil
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.TaskRequestData
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), actor(c), taskInput(&req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), actor(c), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req dto.TaskRequestData
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), actor(c), id, taskInput(&req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListOpenTasks(c echo.Context) error {
	minBudget, err := decimalQuery(c, "min_budget")
	if err != nil {
		return err
	}
	maxBudget, err := decimalQuery(c, "max_budget")
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListOpenTasksForHelper(c.Request().Context(), actor(c), services.OpenTaskFilter{
		Search:    c.QueryParam("search"),
		Location:  c.QueryParam("location"),
		MinBudget: minBudget,
		MaxBudget: maxBudget,
		Sort:      c.QueryParam("sort"),
		Order:     c.QueryParam("order"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) ListMyTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasksForClient(c.Request().Context(), actor(c), services.ClientTaskFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
		Order:  c.QueryParam("order"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) UpdateTaskStatus(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateUpdateTaskStatusRequest(&req); err != nil {
		return err
	}

	status := constants.TaskStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	task, err := h.taskService.UpdateTaskStatus(c.Request().Context(), actor(c), id, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}
