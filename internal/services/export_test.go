package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"quote-system/internal/dto"
	"quote-system/internal/repositories"
	apperrors "quote-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildQuoteWorkbook(t *testing.T) {
	lines := []dto.ResultLineDTO{
		{ID: 1, SkuID: 100, SkuCode: strPtr("GPM-040"), SkuName: strPtr("Модуль порошкового пожаротушения 4 л"), SkuUnit: strPtr("шт"), Qty: 2},
		{ID: 2, SkuID: 101, SkuCode: strPtr("TRM-010"), SkuName: strPtr("Термокабель, бухта 10 м"), SkuUnit: strPtr("м"), Qty: 10, Note: strPtr("отрезать по месту")},
	}
	header := exportHeader{
		QuoteID:     42,
		ManagerName: "manager",
		Date:        time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}

	f, err := buildQuoteWorkbook(header, lines)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, quoteSheetName, f.GetSheetName(0))

	// Шапка.
	v, _ := f.GetCellValue(quoteSheetName, "A1")
	assert.Equal(t, "Дата", v)
	v, _ = f.GetCellValue(quoteSheetName, "B1")
	assert.Equal(t, "31.08.2026", v)
	v, _ = f.GetCellValue(quoteSheetName, "B2")
	assert.Equal(t, "42", v)
	v, _ = f.GetCellValue(quoteSheetName, "B3")
	assert.Equal(t, "manager", v)

	// Заголовок таблицы.
	v, _ = f.GetCellValue(quoteSheetName, "A5")
	assert.Equal(t, "Код", v)
	v, _ = f.GetCellValue(quoteSheetName, "E5")
	assert.Equal(t, "Примечание", v)

	// Строки спецификации.
	v, _ = f.GetCellValue(quoteSheetName, "A6")
	assert.Equal(t, "GPM-040", v)
	v, _ = f.GetCellValue(quoteSheetName, "D6")
	assert.Equal(t, "2", v)
	v, _ = f.GetCellValue(quoteSheetName, "E7")
	assert.Equal(t, "отрезать по месту", v)
}

func TestBuildQuoteWorkbook_NilSkuFields(t *testing.T) {
	lines := []dto.ResultLineDTO{{ID: 1, SkuID: 100, Qty: 1}}

	f, err := buildQuoteWorkbook(exportHeader{QuoteID: 1, Date: time.Now()}, lines)
	require.NoError(t, err)
	defer f.Close()

	v, _ := f.GetCellValue(quoteSheetName, "A6")
	assert.Equal(t, "", v)
	v, _ = f.GetCellValue(quoteSheetName, "D6")
	assert.Equal(t, "1", v)
}

type fakeExportQuoteRepo struct {
	repositories.QuoteRepositoryInterface
}

func (fakeExportQuoteRepo) FindQuote(ctx context.Context, id uint64) (*dto.QuoteDTO, error) {
	return &dto.QuoteDTO{ID: int(id), CreatedBy: 1, Status: "draft"}, nil
}

type fakeExportLineRepo struct {
	repositories.ResultLineRepositoryInterface
	count int
}

func (f fakeExportLineRepo) CountLines(ctx context.Context, quoteID uint64) (int, error) {
	return f.count, nil
}

func TestExportQuoteXLSX_NoLinesConflict(t *testing.T) {
	svc := NewExportService(fakeExportQuoteRepo{}, fakeExportLineRepo{count: 0}, nil, zap.NewNop())

	_, _, err := svc.ExportQuoteXLSX(context.Background(), 7)
	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}
