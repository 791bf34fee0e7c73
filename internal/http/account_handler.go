package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"helpify.com/helpify/internal/constants"
	dto "helpify.com/helpify/internal/data_models"
	"helpify.com/helpify/internal/http/validators"
	model "helpify.com/helpify/internal/models"
	"helpify.com/helpify/internal/services"
)

func userResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Fullname:     u.Fullname,
		Email:        u.Email,
		UserType:     string(u.UserType),
		Bio:          u.Bio,
		Rating:       u.Rating,
		TotalRatings: u.TotalRatings,
		CreatedAt:    u.CreatedAt,
	}
}

func (h *Handler) RegisterUser(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateRegisterRequest(&req); err != nil {
		return err
	}

	user, err := h.accountService.Register(c.Request().Context(), services.RegisterInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
		UserType: constants.UserType(req.UserType),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse(user))
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	session, err := h.accountService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.SessionResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		ExpiresAt: session.ExpiresAt,
		User:      userResponse(session.User),
	})
}

func (h *Handler) GetProfile(c echo.Context) error {
	user, err := h.accountService.GetProfile(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse(user))
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateUpdateProfileRequest(&req); err != nil {
		return err
	}

	user, err := h.accountService.UpdateProfile(c.Request().Context(), actor(c), req.Fullname, req.Bio)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse(user))
}
