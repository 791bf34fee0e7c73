package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "helpify.com/helpify/internal/data_models"
	"helpify.com/helpify/internal/http/validators"
)

func (h *Handler) ListConversations(c echo.Context) error {
	convs, err := h.messageService.ListConversations(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":         len(convs),
		"conversations": convs,
	})
}

func (h *Handler) ListConversationMessages(c echo.Context) error {
	msgs, err := h.messageService.ListConversationMessages(
		c.Request().Context(), actor(c), c.Param("taskId"), c.Param("counterpartyId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(msgs),
		"messages": msgs,
	})
}

func (h *Handler) SendMessage(c echo.Context) error {
	var req dto.SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateSendMessageRequest(&req); err != nil {
		return err
	}

	msg, err := h.messageService.SendMessage(
		c.Request().Context(), actor(c), c.Param("taskId"), c.Param("counterpartyId"), req.Message)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, msg)
}

func (h *Handler) MarkConversationRead(c echo.Context) error {
	n, err := h.messageService.MarkConversationRead(
		c.Request().Context(), actor(c), c.Param("taskId"), c.Param("counterpartyId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}
