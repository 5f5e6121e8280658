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

type ZoneController struct {
	zoneService services.ZoneServiceInterface
	logger      *zap.Logger
}

func NewZoneController(zoneService services.ZoneServiceInterface, logger *zap.Logger) *ZoneController {
	return &ZoneController{zoneService: zoneService, logger: logger}
}

func (ctl *ZoneController) GetZones(c echo.Context) error {
	zones, err := ctl.zoneService.GetZones(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, zones, "Справочник зон получен", http.StatusOK)
}

func (ctl *ZoneController) CreateZone(c echo.Context) error {
	var body dto.CreateZoneDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	id, err := ctl.zoneService.CreateZone(c.Request().Context(), body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, map[string]int{"id": id}, "Зона добавлена", http.StatusCreated)
}

func (ctl *ZoneController) UpdateZone(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	var body dto.UpdateZoneDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	if err := ctl.zoneService.UpdateZone(c.Request().Context(), id, body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "Зона обновлена", http.StatusOK)
}

func (ctl *ZoneController) DeleteZone(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	if err := ctl.zoneService.DeleteZone(c.Request().Context(), id); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "Зона деактивирована", http.StatusOK)
}
