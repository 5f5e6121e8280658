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

type ZoneRepositoryInterface interface {
	GetZones(ctx context.Context) ([]entities.Zone, error)
	FindZoneByCode(ctx context.Context, code string) (*entities.Zone, error)
	CreateZone(ctx context.Context, data dto.CreateZoneDTO) (int, error)
	UpdateZone(ctx context.Context, id uint64, data dto.UpdateZoneDTO) error
	DeleteZone(ctx context.Context, id uint64) error
}

type ZoneRepository struct {
	storage *pgxpool.Pool
}

func NewZoneRepository(storage *pgxpool.Pool) ZoneRepositoryInterface {
	return &ZoneRepository{storage: storage}
}

func (r *ZoneRepository) GetZones(ctx context.Context) ([]entities.Zone, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, code, title_ru, active
		FROM zones
		WHERE active = TRUE
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения зон: %w", err)
	}
	defer rows.Close()

	zones := make([]entities.Zone, 0)
	for rows.Next() {
		var z entities.Zone
		if err := rows.Scan(&z.ID, &z.Code, &z.TitleRu, &z.Active); err != nil {
			return nil, fmt.Errorf("ошибка сканирования зоны: %w", err)
		}
		zones = append(zones, z)
	}
	return zones, nil
}

func (r *ZoneRepository) FindZoneByCode(ctx context.Context, code string) (*entities.Zone, error) {
	var z entities.Zone
	err := r.storage.QueryRow(ctx, `
		SELECT id, code, title_ru, active FROM zones WHERE code = $1`, code).Scan(&z.ID, &z.Code, &z.TitleRu, &z.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска зоны по коду: %w", err)
	}
	return &z, nil
}

func (r *ZoneRepository) CreateZone(ctx context.Context, data dto.CreateZoneDTO) (int, error) {
	active := true
	if data.Active != nil {
		active = *data.Active
	}
	var id int
	err := r.storage.QueryRow(ctx, `
		INSERT INTO zones (code, title_ru, active)
		VALUES ($1, $2, $3)
		RETURNING id`, data.Code, data.TitleRu, active).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания зоны: %w", err)
	}
	return id, nil
}

func (r *ZoneRepository) UpdateZone(ctx context.Context, id uint64, data dto.UpdateZoneDTO) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE zones SET
			code = COALESCE($2, code),
			title_ru = COALESCE($3, title_ru),
			active = COALESCE($4, active)
		WHERE id = $1`, id, data.Code, data.TitleRu, data.Active)
	if err != nil {
		return fmt.Errorf("ошибка обновления зоны: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ZoneRepository) DeleteZone(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `UPDATE zones SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка деактивации зоны: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
