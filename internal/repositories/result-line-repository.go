package repositories

import (
	"context"
	"errors"
	"fmt"

	"quote-system/internal/dto"
	"quote-system/internal/entities"
	apperrors "quote-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResultLineRepositoryInterface interface {
	GetLines(ctx context.Context, quoteID uint64) ([]dto.ResultLineDTO, error)
	GetLinesInTx(ctx context.Context, tx pgx.Tx, quoteID uint64) ([]dto.ResultLineDTO, error)
	ReplaceLinesInTx(ctx context.Context, tx pgx.Tx, quoteID uint64, lines []entities.QuoteResultLine) ([]entities.QuoteResultLine, error)
	FindLineInTx(ctx context.Context, tx pgx.Tx, quoteID, lineID uint64) (*entities.QuoteResultLine, error)
	UpdateLineInTx(ctx context.Context, tx pgx.Tx, lineID uint64, qty *int, note *string) error
	SetAvailabilityInTx(ctx context.Context, tx pgx.Tx, quoteID, lineID uint64, status string, comment *string) error
	CountLines(ctx context.Context, quoteID uint64) (int, error)
}

type ResultLineRepository struct {
	storage *pgxpool.Pool
}

func NewResultLineRepository(storage *pgxpool.Pool) ResultLineRepositoryInterface {
	return &ResultLineRepository{storage: storage}
}

const resultLineSelect = `
	SELECT rl.id, rl.sku_id, s.code, s.name, s.unit,
	       rl.qty, rl.note, rl.availability_status, rl.availability_comment
	FROM quote_result_lines rl
	LEFT JOIN sku s ON rl.sku_id = s.id
	WHERE rl.quote_id = $1
	ORDER BY rl.id`

func (r *ResultLineRepository) GetLines(ctx context.Context, quoteID uint64) ([]dto.ResultLineDTO, error) {
	return getResultLines(ctx, r.storage, quoteID)
}

func (r *ResultLineRepository) GetLinesInTx(ctx context.Context, tx pgx.Tx, quoteID uint64) ([]dto.ResultLineDTO, error) {
	return getResultLines(ctx, tx, quoteID)
}

// getResultLines выполняет одну и ту же выборку через пул или транзакцию.
func getResultLines(ctx context.Context, q querier, quoteID uint64) ([]dto.ResultLineDTO, error) {
	rows, err := q.Query(ctx, resultLineSelect, quoteID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения строк спецификации: %w", err)
	}
	defer rows.Close()
	return scanResultLines(rows)
}

func scanResultLines(rows pgx.Rows) ([]dto.ResultLineDTO, error) {
	lines := make([]dto.ResultLineDTO, 0)
	for rows.Next() {
		var ln dto.ResultLineDTO
		if err := rows.Scan(
			&ln.ID, &ln.SkuID, &ln.SkuCode, &ln.SkuName, &ln.SkuUnit,
			&ln.Qty, &ln.Note, &ln.AvailabilityStatus, &ln.AvailabilityComment,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки спецификации: %w", err)
		}
		lines = append(lines, ln)
	}
	return lines, nil
}

// ReplaceLinesInTx целиком заменяет спецификацию КП результатом нового расчета.
func (r *ResultLineRepository) ReplaceLinesInTx(ctx context.Context, tx pgx.Tx, quoteID uint64, lines []entities.QuoteResultLine) ([]entities.QuoteResultLine, error) {
	if _, err := tx.Exec(ctx, `DELETE FROM quote_result_lines WHERE quote_id = $1`, quoteID); err != nil {
		return nil, fmt.Errorf("ошибка очистки спецификации: %w", err)
	}

	inserted := make([]entities.QuoteResultLine, 0, len(lines))
	for _, ln := range lines {
		var id int
		err := tx.QueryRow(ctx, `
			INSERT INTO quote_result_lines (quote_id, sku_id, qty, note)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			quoteID, ln.SkuID, ln.Qty, ln.Note,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("ошибка вставки строки спецификации: %w", err)
		}
		ln.ID = id
		ln.QuoteID = int(quoteID)
		inserted = append(inserted, ln)
	}
	return inserted, nil
}

func (r *ResultLineRepository) FindLineInTx(ctx context.Context, tx pgx.Tx, quoteID, lineID uint64) (*entities.QuoteResultLine, error) {
	var ln entities.QuoteResultLine
	err := tx.QueryRow(ctx, `
		SELECT id, quote_id, sku_id, qty, note, availability_status, availability_comment
		FROM quote_result_lines
		WHERE id = $1 AND quote_id = $2`, lineID, quoteID).Scan(
		&ln.ID, &ln.QuoteID, &ln.SkuID, &ln.Qty, &ln.Note, &ln.AvailabilityStatus, &ln.AvailabilityComment,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения строки спецификации: %w", err)
	}
	return &ln, nil
}

func (r *ResultLineRepository) UpdateLineInTx(ctx context.Context, tx pgx.Tx, lineID uint64, qty *int, note *string) error {
	if _, err := tx.Exec(ctx, `
		UPDATE quote_result_lines SET
			qty = COALESCE($2, qty),
			note = COALESCE($3, note)
		WHERE id = $1`, lineID, qty, note); err != nil {
		return fmt.Errorf("ошибка обновления строки спецификации: %w", err)
	}
	return nil
}

func (r *ResultLineRepository) SetAvailabilityInTx(ctx context.Context, tx pgx.Tx, quoteID, lineID uint64, status string, comment *string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE quote_result_lines SET
			availability_status = $3,
			availability_comment = $4
		WHERE id = $2 AND quote_id = $1`, quoteID, lineID, status, comment)
	if err != nil {
		return fmt.Errorf("ошибка записи наличия по строке: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ResultLineRepository) CountLines(ctx context.Context, quoteID uint64) (int, error) {
	var count int
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM quote_result_lines WHERE quote_id = $1`, quoteID).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчета строк спецификации: %w", err)
	}
	return count, nil
}
