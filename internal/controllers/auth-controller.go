package controllers

import (
	"net/http"

	"quote-system/internal/dto"
	"quote-system/internal/services"
	apperrors "quote-system/pkg/errors"
	"quote-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctl *AuthController) Login(c echo.Context) error {
	var body dto.LoginDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	tokens, err := ctl.authService.Login(c.Request().Context(), body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, tokens, "Вход выполнен", http.StatusOK)
}

func (ctl *AuthController) Refresh(c echo.Context) error {
	var body dto.RefreshDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	tokens, err := ctl.authService.Refresh(c.Request().Context(), body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, tokens, "Токены обновлены", http.StatusOK)
}

func (ctl *AuthController) Me(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	user, err := ctl.authService.Me(c.Request().Context(), uint64(userID))
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, user, "Профиль получен", http.StatusOK)
}

func (ctl *AuthController) CreateUser(c echo.Context) error {
	var body dto.CreateUserDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	id, err := ctl.authService.CreateUser(c.Request().Context(), body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, map[string]int{"id": id}, "Пользователь создан", http.StatusCreated)
}

func (ctl *AuthController) GetUsers(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())
	users, total, err := ctl.authService.GetUsers(c.Request().Context(), uint64(filter.Limit), uint64(filter.Offset))
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, users, "Список пользователей получен", http.StatusOK, total)
}

func (ctl *AuthController) SetUserActive(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	var body struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	if err := ctl.authService.SetUserActive(c.Request().Context(), id, *body.IsActive); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "Статус пользователя обновлен", http.StatusOK)
}
