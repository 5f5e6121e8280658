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

type TechniqueController struct {
	techniqueService services.TechniqueServiceInterface
	logger           *zap.Logger
}

func NewTechniqueController(techniqueService services.TechniqueServiceInterface, logger *zap.Logger) *TechniqueController {
	return &TechniqueController{techniqueService: techniqueService, logger: logger}
}

func (ctl *TechniqueController) GetTechniques(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())
	list, total, err := ctl.techniqueService.GetTechniques(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, list, "Справочник техники получен", http.StatusOK, total)
}

func (ctl *TechniqueController) FindTechnique(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	t, err := ctl.techniqueService.FindTechnique(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, t, "Техника найдена", http.StatusOK)
}

func (ctl *TechniqueController) CreateTechnique(c echo.Context) error {
	var body dto.CreateTechniqueDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	id, err := ctl.techniqueService.CreateTechnique(c.Request().Context(), body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, map[string]int{"id": id}, "Техника добавлена", http.StatusCreated)
}

func (ctl *TechniqueController) UpdateTechnique(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	var body dto.UpdateTechniqueDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	if err := ctl.techniqueService.UpdateTechnique(c.Request().Context(), id, body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "Техника обновлена", http.StatusOK)
}

func (ctl *TechniqueController) DeleteTechnique(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	if err := ctl.techniqueService.DeleteTechnique(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "Техника деактивирована", http.StatusOK)
}

func (ctl *TechniqueController) GetEngineOptions(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	opts, err := ctl.techniqueService.GetEngineOptions(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, opts, "Варианты двигателей получены", http.StatusOK)
}

func (ctl *TechniqueController) CreateEngineOption(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	var body dto.CreateEngineOptionDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	optID, err := ctl.techniqueService.CreateEngineOption(c.Request().Context(), id, body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, map[string]int{"id": optID}, "Вариант двигателя добавлен", http.StatusCreated)
}

func (ctl *TechniqueController) DeleteEngineOption(c echo.Context) error {
	id, err := parseIDParam(c, "optionId")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	if err := ctl.techniqueService.DeleteEngineOption(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "Вариант двигателя деактивирован", http.StatusOK)
}

func (ctl *TechniqueController) GetAliases(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())
	list, total, err := ctl.techniqueService.GetAliases(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, list, "Синонимы получены", http.StatusOK, total)
}

func (ctl *TechniqueController) CreateAlias(c echo.Context) error {
	var body dto.CreateTechniqueAliasDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	id, err := ctl.techniqueService.CreateAlias(c.Request().Context(), body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, map[string]int{"id": id}, "Синоним добавлен", http.StatusCreated)
}

func (ctl *TechniqueController) DeleteAlias(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	if err := ctl.techniqueService.DeleteAlias(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "Синоним удален", http.StatusOK)
}
