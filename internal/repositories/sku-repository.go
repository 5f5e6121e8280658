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

type SkuRepositoryInterface interface {
	GetSkus(ctx context.Context, filter types.Filter) ([]entities.SKU, uint64, error)
	FindSku(ctx context.Context, id uint64) (*entities.SKU, error)
	CreateSku(ctx context.Context, data dto.CreateSkuDTO) (int, error)
	UpdateSku(ctx context.Context, id uint64, data dto.UpdateSkuDTO) error
	DeleteSku(ctx context.Context, id uint64) error
	GetByIDs(ctx context.Context, ids []int) (map[int]entities.SKU, error)
}

type SkuRepository struct {
	storage *pgxpool.Pool
}

func NewSkuRepository(storage *pgxpool.Pool) SkuRepositoryInterface {
	return &SkuRepository{storage: storage}
}

var skuListAllowedFields = map[string]string{
	"code":   "code",
	"name":   "name",
	"active": "active",
}

func (r *SkuRepository) GetSkus(ctx context.Context, filter types.Filter) ([]entities.SKU, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	baseSelect := psql.Select().From("sku")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		baseSelect = baseSelect.Where(sq.Or{
			sq.ILike{"code": pattern},
			sq.ILike{"name": pattern},
		})
	}

	countQuery, countArgs, err := db.ApplyListParams(baseSelect.Columns("COUNT(id)"), types.Filter{Filter: filter.Filter}, skuListAllowedFields).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err = r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета номенклатуры: %w", err)
	}
	if total == 0 {
		return []entities.SKU{}, 0, nil
	}

	mainBuilder := baseSelect.Columns("id", "code", "name", "unit", "active", "version_tag")
	if len(filter.Sort) == 0 {
		mainBuilder = mainBuilder.OrderBy("code")
	}
	query, args, err := db.ApplyListParams(mainBuilder, filter, skuListAllowedFields).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса номенклатуры: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения номенклатуры: %w", err)
	}
	defer rows.Close()

	skus := make([]entities.SKU, 0)
	for rows.Next() {
		var s entities.SKU
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Unit, &s.Active, &s.VersionTag); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования СКЮ: %w", err)
		}
		skus = append(skus, s)
	}
	return skus, total, nil
}

func (r *SkuRepository) FindSku(ctx context.Context, id uint64) (*entities.SKU, error) {
	var s entities.SKU
	err := r.storage.QueryRow(ctx, `
		SELECT id, code, name, unit, active, version_tag FROM sku WHERE id = $1`, id).Scan(
		&s.ID, &s.Code, &s.Name, &s.Unit, &s.Active, &s.VersionTag,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования СКЮ: %w", err)
	}
	return &s, nil
}

func (r *SkuRepository) CreateSku(ctx context.Context, data dto.CreateSkuDTO) (int, error) {
	active := true
	if data.Active != nil {
		active = *data.Active
	}
	var id int
	err := r.storage.QueryRow(ctx, `
		INSERT INTO sku (code, name, unit, active, version_tag)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, data.Code, data.Name, data.Unit, active, data.VersionTag).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания СКЮ: %w", err)
	}
	return id, nil
}

func (r *SkuRepository) UpdateSku(ctx context.Context, id uint64, data dto.UpdateSkuDTO) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE sku SET
			code = COALESCE($2, code),
			name = COALESCE($3, name),
			unit = COALESCE($4, unit),
			active = COALESCE($5, active),
			version_tag = COALESCE($6, version_tag)
		WHERE id = $1`, id, data.Code, data.Name, data.Unit, data.Active, data.VersionTag)
	if err != nil {
		return fmt.Errorf("ошибка обновления СКЮ: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SkuRepository) DeleteSku(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `UPDATE sku SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка деактивации СКЮ: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SkuRepository) GetByIDs(ctx context.Context, ids []int) (map[int]entities.SKU, error) {
	result := make(map[int]entities.SKU, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.storage.Query(ctx, `
		SELECT id, code, name, unit, active, version_tag FROM sku WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки СКЮ по идентификаторам: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s entities.SKU
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Unit, &s.Active, &s.VersionTag); err != nil {
			return nil, fmt.Errorf("ошибка сканирования СКЮ: %w", err)
		}
		result[s.ID] = s
	}
	return result, nil
}
