package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"quote-system/internal/dto"
	"quote-system/internal/repositories"
	apperrors "quote-system/pkg/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ExportServiceInterface interface {
	ExportQuoteXLSX(ctx context.Context, quoteID uint64) ([]byte, string, error)
}

// ExportService собирает xlsx-файл КП для отправки заказчику.
type ExportService struct {
	quoteRepo repositories.QuoteRepositoryInterface
	lineRepo  repositories.ResultLineRepositoryInterface
	userRepo  repositories.UserRepositoryInterface
	logger    *zap.Logger
}

func NewExportService(
	quoteRepo repositories.QuoteRepositoryInterface,
	lineRepo repositories.ResultLineRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) ExportServiceInterface {
	return &ExportService{
		quoteRepo: quoteRepo,
		lineRepo:  lineRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// exportHeader — шапка документа КП.
type exportHeader struct {
	QuoteID     int
	ManagerName string
	Date        time.Time
}

func (s *ExportService) ExportQuoteXLSX(ctx context.Context, quoteID uint64) ([]byte, string, error) {
	quote, err := s.quoteRepo.FindQuote(ctx, quoteID)
	if err != nil {
		return nil, "", err
	}

	count, err := s.lineRepo.CountLines(ctx, quoteID)
	if err != nil {
		return nil, "", err
	}
	if count == 0 {
		return nil, "", apperrors.NewHttpError(http.StatusConflict,
			"КП еще не рассчитано, выгружать нечего", nil, nil)
	}

	lines, err := s.lineRepo.GetLines(ctx, quoteID)
	if err != nil {
		return nil, "", err
	}

	managerName := ""
	if user, err := s.userRepo.FindByID(ctx, uint64(quote.CreatedBy)); err == nil {
		managerName = user.Login
	}

	f, err := buildQuoteWorkbook(exportHeader{
		QuoteID:     quote.ID,
		ManagerName: managerName,
		Date:        time.Now(),
	}, lines)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("ошибка записи xlsx: %w", err)
	}

	s.logger.Info("КП выгружено в xlsx",
		zap.Uint64("quoteId", quoteID), zap.Int("lines", len(lines)))

	return buf.Bytes(), fmt.Sprintf("kp_%d.xlsx", quote.ID), nil
}

const quoteSheetName = "КП"

// buildQuoteWorkbook рендерит книгу: шапка с датой, номером и менеджером,
// затем таблица строк спецификации.
func buildQuoteWorkbook(header exportHeader, lines []dto.ResultLineDTO) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), quoteSheetName); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	headerRows := [][2]string{
		{"Дата", header.Date.Format("02.01.2006")},
		{"КП №", fmt.Sprintf("%d", header.QuoteID)},
		{"Менеджер", header.ManagerName},
	}
	for i, hr := range headerRows {
		row := i + 1
		_ = f.SetCellValue(quoteSheetName, fmt.Sprintf("A%d", row), hr[0])
		_ = f.SetCellValue(quoteSheetName, fmt.Sprintf("B%d", row), hr[1])
		_ = f.SetCellStyle(quoteSheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), bold)
	}

	tableRow := len(headerRows) + 2
	columns := []string{"Код", "Наименование", "Ед. изм.", "Кол-во", "Примечание"}
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		_ = f.SetCellValue(quoteSheetName, cell, col)
		_ = f.SetCellStyle(quoteSheetName, cell, cell, bold)
	}

	for i, ln := range lines {
		row := tableRow + 1 + i
		_ = f.SetCellValue(quoteSheetName, fmt.Sprintf("A%d", row), strOrEmpty(ln.SkuCode))
		_ = f.SetCellValue(quoteSheetName, fmt.Sprintf("B%d", row), strOrEmpty(ln.SkuName))
		_ = f.SetCellValue(quoteSheetName, fmt.Sprintf("C%d", row), strOrEmpty(ln.SkuUnit))
		_ = f.SetCellValue(quoteSheetName, fmt.Sprintf("D%d", row), ln.Qty)
		_ = f.SetCellValue(quoteSheetName, fmt.Sprintf("E%d", row), strOrEmpty(ln.Note))
	}

	_ = f.SetColWidth(quoteSheetName, "A", "A", 16)
	_ = f.SetColWidth(quoteSheetName, "B", "B", 40)
	_ = f.SetColWidth(quoteSheetName, "C", "C", 10)
	_ = f.SetColWidth(quoteSheetName, "D", "D", 10)
	_ = f.SetColWidth(quoteSheetName, "E", "E", 30)

	return f, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
