package repositories

import (
	"context"
	"fmt"

	"quote-system/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CalcRunRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, run entities.QuoteCalcRun) error
	GetRuns(ctx context.Context, quoteID uint64) ([]entities.QuoteCalcRun, error)
}

// CalcRunRepository хранит аудит прогонов расчета КП.
type CalcRunRepository struct {
	storage *pgxpool.Pool
}

func NewCalcRunRepository(storage *pgxpool.Pool) CalcRunRepositoryInterface {
	return &CalcRunRepository{storage: storage}
}

func (r *CalcRunRepository) CreateInTx(ctx context.Context, tx pgx.Tx, run entities.QuoteCalcRun) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO quote_calc_runs (quote_id, run_id, matched_rule_ids, debug_note)
		VALUES ($1, $2, $3, $4)`,
		run.QuoteID, run.RunID, run.MatchedRuleIDs, run.DebugNote,
	); err != nil {
		return fmt.Errorf("ошибка записи прогона расчета: %w", err)
	}
	return nil
}

func (r *CalcRunRepository) GetRuns(ctx context.Context, quoteID uint64) ([]entities.QuoteCalcRun, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, quote_id, run_id, matched_rule_ids, debug_note, created_at
		FROM quote_calc_runs
		WHERE quote_id = $1
		ORDER BY created_at DESC`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения прогонов расчета: %w", err)
	}
	defer rows.Close()

	runs := make([]entities.QuoteCalcRun, 0)
	for rows.Next() {
		var run entities.QuoteCalcRun
		if err := rows.Scan(&run.ID, &run.QuoteID, &run.RunID, &run.MatchedRuleIDs, &run.DebugNote, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования прогона расчета: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
