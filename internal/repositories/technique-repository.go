package repositories

import (
	"context"
	"errors"
	"fmt"

	"quote-system/internal/dto"
	"quote-system/internal/entities"
	db "quote-system/internal/infrastructure/bd"
	apperrors "quote-system/pkg/errors"
	"quote-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TechniqueRepositoryInterface interface {
	GetTechniques(ctx context.Context, filter types.Filter) ([]entities.Technique, uint64, error)
	FindTechnique(ctx context.Context, id uint64) (*entities.Technique, error)
	CreateTechnique(ctx context.Context, data dto.CreateTechniqueDTO) (int, error)
	UpdateTechnique(ctx context.Context, id uint64, data dto.UpdateTechniqueDTO) error
	DeleteTechnique(ctx context.Context, id uint64) error

	GetEngineOptions(ctx context.Context, techniqueID uint64) ([]entities.EngineOption, error)
	CreateEngineOption(ctx context.Context, techniqueID uint64, data dto.CreateEngineOptionDTO) (int, error)
	DeleteEngineOption(ctx context.Context, id uint64) error
	FindEngineOptionInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.EngineOption, error)

	GetAliases(ctx context.Context, filter types.Filter) ([]entities.TechniqueAlias, uint64, error)
	CreateAlias(ctx context.Context, data dto.CreateTechniqueAliasDTO) (int, error)
	DeleteAlias(ctx context.Context, id uint64) error
}

type TechniqueRepository struct {
	storage *pgxpool.Pool
}

func NewTechniqueRepository(storage *pgxpool.Pool) TechniqueRepositoryInterface {
	return &TechniqueRepository{storage: storage}
}

var techniqueListAllowedFields = map[string]string{
	"manufacturer": "manufacturer",
	"model":        "model",
	"series":       "series",
	"active":       "active",
}

func (r *TechniqueRepository) GetTechniques(ctx context.Context, filter types.Filter) ([]entities.Technique, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	baseSelect := psql.Select().From("technique")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		// Алиасы участвуют в поиске наравне с основным написанием.
		baseSelect = baseSelect.Where(sq.Or{
			sq.ILike{"manufacturer": pattern},
			sq.ILike{"model": pattern},
			sq.ILike{"series": pattern},
			sq.Expr(`id IN (SELECT technique_id FROM technique_alias WHERE alias_text ILIKE ?)`, pattern),
		})
	}

	countQuery, countArgs, err := db.ApplyListParams(baseSelect.Columns("COUNT(id)"), types.Filter{Filter: filter.Filter}, techniqueListAllowedFields).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err = r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета техники: %w", err)
	}
	if total == 0 {
		return []entities.Technique{}, 0, nil
	}

	mainBuilder := baseSelect.Columns("id", "manufacturer", "model", "series", "meta", "active")
	if len(filter.Sort) == 0 {
		mainBuilder = mainBuilder.OrderBy("manufacturer", "model")
	}
	query, args, err := db.ApplyListParams(mainBuilder, filter, techniqueListAllowedFields).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка техники: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка техники: %w", err)
	}
	defer rows.Close()

	techniques := make([]entities.Technique, 0)
	for rows.Next() {
		var t entities.Technique
		if err := rows.Scan(&t.ID, &t.Manufacturer, &t.Model, &t.Series, &t.Meta, &t.Active); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования техники: %w", err)
		}
		techniques = append(techniques, t)
	}
	return techniques, total, nil
}

func (r *TechniqueRepository) FindTechnique(ctx context.Context, id uint64) (*entities.Technique, error) {
	var t entities.Technique
	err := r.storage.QueryRow(ctx, `
		SELECT id, manufacturer, model, series, meta, active
		FROM technique WHERE id = $1`, id).Scan(&t.ID, &t.Manufacturer, &t.Model, &t.Series, &t.Meta, &t.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования техники: %w", err)
	}
	return &t, nil
}

func (r *TechniqueRepository) CreateTechnique(ctx context.Context, data dto.CreateTechniqueDTO) (int, error) {
	active := true
	if data.Active != nil {
		active = *data.Active
	}
	var id int
	err := r.storage.QueryRow(ctx, `
		INSERT INTO technique (manufacturer, model, series, meta, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		data.Manufacturer, data.Model, data.Series, data.Meta, active,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания техники: %w", err)
	}
	return id, nil
}

func (r *TechniqueRepository) UpdateTechnique(ctx context.Context, id uint64, data dto.UpdateTechniqueDTO) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE technique SET
			manufacturer = COALESCE($2, manufacturer),
			model = COALESCE($3, model),
			series = COALESCE($4, series),
			meta = COALESCE($5, meta),
			active = COALESCE($6, active)
		WHERE id = $1`,
		id, data.Manufacturer, data.Model, data.Series, data.Meta, data.Active,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления техники: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TechniqueRepository) DeleteTechnique(ctx context.Context, id uint64) error {
	// Технику не удаляем физически — на нее ссылаются правила и позиции КП.
	tag, err := r.storage.Exec(ctx, `UPDATE technique SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка деактивации техники: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TechniqueRepository) GetEngineOptions(ctx context.Context, techniqueID uint64) ([]entities.EngineOption, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, technique_id, engine_name, year_from, year_to, source, active
		FROM engine_option
		WHERE technique_id = $1 AND active = TRUE
		ORDER BY engine_name`, techniqueID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения вариантов двигателя: %w", err)
	}
	defer rows.Close()

	options := make([]entities.EngineOption, 0)
	for rows.Next() {
		var eo entities.EngineOption
		if err := rows.Scan(&eo.ID, &eo.TechniqueID, &eo.EngineName, &eo.YearFrom, &eo.YearTo, &eo.Source, &eo.Active); err != nil {
			return nil, fmt.Errorf("ошибка сканирования варианта двигателя: %w", err)
		}
		options = append(options, eo)
	}
	return options, nil
}

func (r *TechniqueRepository) CreateEngineOption(ctx context.Context, techniqueID uint64, data dto.CreateEngineOptionDTO) (int, error) {
	source := data.Source
	if source == "" {
		source = "manual"
	}
	active := true
	if data.Active != nil {
		active = *data.Active
	}
	var id int
	err := r.storage.QueryRow(ctx, `
		INSERT INTO engine_option (technique_id, engine_name, year_from, year_to, source, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		techniqueID, data.EngineName, data.YearFrom, data.YearTo, source, active,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания варианта двигателя: %w", err)
	}
	return id, nil
}

func (r *TechniqueRepository) DeleteEngineOption(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `UPDATE engine_option SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка деактивации варианта двигателя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TechniqueRepository) FindEngineOptionInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.EngineOption, error) {
	var eo entities.EngineOption
	err := tx.QueryRow(ctx, `
		SELECT id, technique_id, engine_name, year_from, year_to, source, active
		FROM engine_option WHERE id = $1`, id).Scan(
		&eo.ID, &eo.TechniqueID, &eo.EngineName, &eo.YearFrom, &eo.YearTo, &eo.Source, &eo.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения варианта двигателя: %w", err)
	}
	return &eo, nil
}

func (r *TechniqueRepository) GetAliases(ctx context.Context, filter types.Filter) ([]entities.TechniqueAlias, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM technique_alias`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета алиасов: %w", err)
	}

	rows, err := r.storage.Query(ctx, `
		SELECT id, alias_text, technique_id, note
		FROM technique_alias
		ORDER BY alias_text
		LIMIT $1 OFFSET $2`, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения алиасов: %w", err)
	}
	defer rows.Close()

	aliases := make([]entities.TechniqueAlias, 0)
	for rows.Next() {
		var a entities.TechniqueAlias
		if err := rows.Scan(&a.ID, &a.AliasText, &a.TechniqueID, &a.Note); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования алиаса: %w", err)
		}
		aliases = append(aliases, a)
	}
	return aliases, total, nil
}

func (r *TechniqueRepository) CreateAlias(ctx context.Context, data dto.CreateTechniqueAliasDTO) (int, error) {
	var id int
	err := r.storage.QueryRow(ctx, `
		INSERT INTO technique_alias (alias_text, technique_id, note)
		VALUES ($1, $2, $3)
		RETURNING id`,
		data.AliasText, data.TechniqueID, data.Note,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания алиаса: %w", err)
	}
	return id, nil
}

func (r *TechniqueRepository) DeleteAlias(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM technique_alias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления алиаса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
