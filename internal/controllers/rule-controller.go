package controllers

import (
	"net/http"
	"strconv"

	"quote-system/internal/dto"
	"quote-system/internal/services"
	apperrors "quote-system/pkg/errors"
	"quote-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RuleController struct {
	ruleService services.RuleServiceInterface
	logger      *zap.Logger
}

func NewRuleController(ruleService services.RuleServiceInterface, logger *zap.Logger) *RuleController {
	return &RuleController{ruleService: ruleService, logger: logger}
}

func (ctl *RuleController) GetRules(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	var techniqueID *uint64
	if raw := c.QueryParam("technique_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return utils.ErrorResponse(c, apperrors.NewInvalidInputError("Некорректный technique_id"), ctl.logger)
		}
		techniqueID = &id
	}

	rules, total, err := ctl.ruleService.GetRules(c.Request().Context(), techniqueID, uint64(filter.Limit), uint64(filter.Offset))
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, rules, "Правила получены", http.StatusOK, total)
}

func (ctl *RuleController) FindRule(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	rule, err := ctl.ruleService.FindRule(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, rule, "Правило найдено", http.StatusOK)
}

func (ctl *RuleController) CreateRule(c echo.Context) error {
	var body dto.CreateRuleDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	id, err := ctl.ruleService.CreateRule(c.Request().Context(), body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, map[string]int{"id": id}, "Правило создано", http.StatusCreated)
}

func (ctl *RuleController) UpdateRule(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	var body dto.UpdateRuleDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	if err := ctl.ruleService.UpdateRule(c.Request().Context(), id, body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "Правило обновлено", http.StatusOK)
}

func (ctl *RuleController) DeleteRule(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	if err := ctl.ruleService.DeleteRule(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "Правило деактивировано", http.StatusOK)
}
