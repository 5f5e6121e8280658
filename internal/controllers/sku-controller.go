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

type SkuController struct {
	skuService services.SkuServiceInterface
	logger     *zap.Logger
}

func NewSkuController(skuService services.SkuServiceInterface, logger *zap.Logger) *SkuController {
	return &SkuController{skuService: skuService, logger: logger}
}

func (ctl *SkuController) GetSkus(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())
	list, total, err := ctl.skuService.GetSkus(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, list, "Номенклатура получена", http.StatusOK, total)
}

func (ctl *SkuController) FindSku(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	sku, err := ctl.skuService.FindSku(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, sku, "СКЮ найдено", http.StatusOK)
}

func (ctl *SkuController) CreateSku(c echo.Context) error {
	var body dto.CreateSkuDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	id, err := ctl.skuService.CreateSku(c.Request().Context(), body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, map[string]int{"id": id}, "СКЮ добавлено", http.StatusCreated)
}

func (ctl *SkuController) UpdateSku(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	var body dto.UpdateSkuDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	if err := ctl.skuService.UpdateSku(c.Request().Context(), id, body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "СКЮ обновлено", http.StatusOK)
}

func (ctl *SkuController) DeleteSku(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	if err := ctl.skuService.DeleteSku(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "СКЮ деактивировано", http.StatusOK)
}
