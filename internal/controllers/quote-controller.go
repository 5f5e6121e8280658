package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"quote-system/internal/dto"
	"quote-system/internal/services"
	apperrors "quote-system/pkg/errors"
	"quote-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type QuoteController struct {
	quoteService  services.QuoteServiceInterface
	calcService   services.CalcEngineServiceInterface
	exportService services.ExportServiceInterface
	logger        *zap.Logger
}

func NewQuoteController(
	quoteService services.QuoteServiceInterface,
	calcService services.CalcEngineServiceInterface,
	exportService services.ExportServiceInterface,
	logger *zap.Logger,
) *QuoteController {
	return &QuoteController{
		quoteService:  quoteService,
		calcService:   calcService,
		exportService: exportService,
		logger:        logger,
	}
}

func parseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(http.StatusBadRequest,
			fmt.Sprintf("Некорректный параметр '%s'", name), err, nil)
	}
	return id, nil
}

func (ctl *QuoteController) GetQuotes(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())
	quotes, total, err := ctl.quoteService.GetQuotes(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, quotes, "Список КП получен", http.StatusOK, total)
}

func (ctl *QuoteController) FindQuote(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	quote, err := ctl.quoteService.FindQuote(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, quote, "КП найдено", http.StatusOK)
}

func (ctl *QuoteController) CreateQuote(c echo.Context) error {
	var body dto.CreateQuoteDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	id, err := ctl.quoteService.CreateQuote(c.Request().Context(), body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, map[string]int{"id": id}, "КП создано", http.StatusCreated)
}

func (ctl *QuoteController) UpdateQuote(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	var body dto.UpdateQuoteDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	if err := ctl.quoteService.UpdateQuote(c.Request().Context(), id, body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, nil, "КП обновлено", http.StatusOK)
}

// Calculate запускает расчет спецификации по правилам.
func (ctl *QuoteController) Calculate(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	result, err := ctl.calcService.Calculate(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, result, "Расчет выполнен", http.StatusOK)
}

func (ctl *QuoteController) ChangeStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	var body dto.ChangeStatusDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	out, err := ctl.quoteService.ChangeStatus(c.Request().Context(), id, body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, out, "Статус изменен", http.StatusOK)
}

// WarehouseConfirm — решение склада одним запросом: наличие по строкам
// плюс итоговый переход confirmed|rework.
func (ctl *QuoteController) WarehouseConfirm(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	var body dto.WarehouseConfirmDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	out, err := ctl.quoteService.WarehouseConfirm(c.Request().Context(), id, body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, out, "Проверка склада сохранена", http.StatusOK)
}

func (ctl *QuoteController) GetResultLines(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	lines, err := ctl.quoteService.GetResultLines(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, lines, "Спецификация получена", http.StatusOK)
}

func (ctl *QuoteController) PatchResultLine(c echo.Context) error {
	quoteID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	var body dto.PatchResultLineDTO
	if err := c.Bind(&body); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctl.logger)
	}
	if err := c.Validate(&body); err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	line, err := ctl.quoteService.PatchResultLine(c.Request().Context(), quoteID, lineID, body)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, line, "Строка обновлена", http.StatusOK)
}

func (ctl *QuoteController) GetCalcRuns(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	runs, err := ctl.calcService.GetCalcRuns(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}
	return utils.SuccessResponse(c, runs, "История расчетов получена", http.StatusOK)
}

// ExportXLSX отдает КП файлом.
func (ctl *QuoteController) ExportXLSX(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	data, filename, err := ctl.exportService.ExportQuoteXLSX(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctl.logger)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
