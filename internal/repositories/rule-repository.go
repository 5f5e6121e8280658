package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quote-system/internal/entities"
	apperrors "quote-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RuleRepositoryInterface interface {
	GetRules(ctx context.Context, techniqueID *uint64, limit, offset uint64) ([]entities.Rule, uint64, error)
	FindRule(ctx context.Context, id uint64) (*entities.Rule, error)
	CreateRule(ctx context.Context, rule entities.Rule) (int, error)
	UpdateRule(ctx context.Context, id uint64, rule entities.Rule) error
	DeleteRule(ctx context.Context, id uint64) error
	// GetActiveForTechniquesInTx возвращает активные правила для набора техники
	// с учетом окна действия на дату asOf.
	GetActiveForTechniquesInTx(ctx context.Context, tx pgx.Tx, techniqueIDs []int, asOf time.Time) ([]entities.Rule, error)
}

type RuleRepository struct {
	storage *pgxpool.Pool
}

func NewRuleRepository(storage *pgxpool.Pool) RuleRepositoryInterface {
	return &RuleRepository{storage: storage}
}

const ruleColumns = `id, technique_id, conditions_json, actions_json, version, active_from, active_to, active`

func scanRule(row pgx.Row) (*entities.Rule, error) {
	var rule entities.Rule
	err := row.Scan(
		&rule.ID, &rule.TechniqueID, &rule.ConditionsJSON, &rule.ActionsJSON,
		&rule.Version, &rule.ActiveFrom, &rule.ActiveTo, &rule.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования правила: %w", err)
	}
	return &rule, nil
}

func (r *RuleRepository) GetRules(ctx context.Context, techniqueID *uint64, limit, offset uint64) ([]entities.Rule, uint64, error) {
	countQuery := `SELECT COUNT(*) FROM rules`
	listQuery := `SELECT ` + ruleColumns + ` FROM rules`
	args := []interface{}{}
	if techniqueID != nil {
		countQuery += ` WHERE technique_id = $1`
		listQuery += ` WHERE technique_id = $1`
		args = append(args, *techniqueID)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета правил: %w", err)
	}

	listQuery += fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.storage.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения правил: %w", err)
	}
	defer rows.Close()

	rules := make([]entities.Rule, 0)
	for rows.Next() {
		var rule entities.Rule
		if err := rows.Scan(
			&rule.ID, &rule.TechniqueID, &rule.ConditionsJSON, &rule.ActionsJSON,
			&rule.Version, &rule.ActiveFrom, &rule.ActiveTo, &rule.Active,
		); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования правила: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, total, nil
}

func (r *RuleRepository) FindRule(ctx context.Context, id uint64) (*entities.Rule, error) {
	return scanRule(r.storage.QueryRow(ctx, `SELECT `+ruleColumns+` FROM rules WHERE id = $1`, id))
}

func (r *RuleRepository) CreateRule(ctx context.Context, rule entities.Rule) (int, error) {
	var id int
	err := r.storage.QueryRow(ctx, `
		INSERT INTO rules (technique_id, conditions_json, actions_json, version, active_from, active_to, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		rule.TechniqueID, rule.ConditionsJSON, rule.ActionsJSON, rule.Version, rule.ActiveFrom, rule.ActiveTo, rule.Active,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания правила: %w", err)
	}
	return id, nil
}

func (r *RuleRepository) UpdateRule(ctx context.Context, id uint64, rule entities.Rule) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE rules SET
			conditions_json = $2, actions_json = $3, version = $4,
			active_from = $5, active_to = $6, active = $7
		WHERE id = $1`,
		id, rule.ConditionsJSON, rule.ActionsJSON, rule.Version, rule.ActiveFrom, rule.ActiveTo, rule.Active,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления правила: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RuleRepository) DeleteRule(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления правила: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RuleRepository) GetActiveForTechniquesInTx(ctx context.Context, tx pgx.Tx, techniqueIDs []int, asOf time.Time) ([]entities.Rule, error) {
	if len(techniqueIDs) == 0 {
		return []entities.Rule{}, nil
	}

	rows, err := tx.Query(ctx, `
		SELECT `+ruleColumns+`
		FROM rules
		WHERE technique_id = ANY($1)
		  AND active = TRUE
		  AND (active_from IS NULL OR active_from <= $2)
		  AND (active_to IS NULL OR active_to >= $2)
		ORDER BY id`, techniqueIDs, asOf)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки активных правил: %w", err)
	}
	defer rows.Close()

	rules := make([]entities.Rule, 0)
	for rows.Next() {
		var rule entities.Rule
		if err := rows.Scan(
			&rule.ID, &rule.TechniqueID, &rule.ConditionsJSON, &rule.ActionsJSON,
			&rule.Version, &rule.ActiveFrom, &rule.ActiveTo, &rule.Active,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования правила: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
