package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quote-system/internal/dto"
	"quote-system/internal/entities"
	db "quote-system/internal/infrastructure/bd"
	apperrors "quote-system/pkg/errors"
	"quote-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type QuoteRepositoryInterface interface {
	GetQuotes(ctx context.Context, filter types.Filter) ([]dto.QuoteListItemDTO, uint64, error)
	FindQuote(ctx context.Context, id uint64) (*dto.QuoteDTO, error)
	CreateQuote(ctx context.Context, creatorUserID int, data dto.CreateQuoteDTO) (int, error)
	FindQuoteForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Quote, error)
	UpdateQuoteInTx(ctx context.Context, tx pgx.Tx, id uint64, data dto.UpdateQuoteDTO) error
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string, comment *string) error
	GetItemsInTx(ctx context.Context, tx pgx.Tx, quoteID uint64) ([]entities.QuoteItem, error)
}

type QuoteRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewQuoteRepository(storage *pgxpool.Pool, logger *zap.Logger) QuoteRepositoryInterface {
	return &QuoteRepository{
		storage: storage,
		logger:  logger,
	}
}

// Поля, по которым разрешены filter[...] и sort[...] из query-параметров.
var quoteListAllowedFields = map[string]string{
	"status":     "q.status",
	"created_by": "q.created_by",
	"created_at": "q.created_at",
	"updated_at": "q.updated_at",
}

func (r *QuoteRepository) GetQuotes(ctx context.Context, filter types.Filter) ([]dto.QuoteListItemDTO, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	baseSelect := psql.Select().From("quotes q")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		// Поиск по заказчику и по технике в позициях КП.
		baseSelect = baseSelect.Where(sq.Or{
			sq.ILike{"q.customer_name": pattern},
			sq.Expr(`q.id IN (
				SELECT qi.quote_id FROM quote_items qi
				JOIN technique t ON qi.technique_id = t.id
				WHERE t.manufacturer ILIKE ? OR t.model ILIKE ? OR t.series ILIKE ?
			)`, pattern, pattern, pattern),
		})
	}

	countBuilder := db.ApplyListParams(baseSelect.Columns("COUNT(q.id)"), types.Filter{Filter: filter.Filter}, quoteListAllowedFields)
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err = r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета КП: %w", err)
	}
	if total == 0 {
		return []dto.QuoteListItemDTO{}, 0, nil
	}

	mainBuilder := baseSelect.Columns(
		"q.id", "q.created_by", "q.status", "q.customer_name",
		"(SELECT COUNT(*) FROM quote_items qi WHERE qi.quote_id = q.id)",
		"q.created_at", "q.updated_at",
	)
	if len(filter.Sort) == 0 {
		mainBuilder = mainBuilder.OrderBy("q.updated_at DESC")
	}
	mainBuilder = db.ApplyListParams(mainBuilder, filter, quoteListAllowedFields)

	query, args, err := mainBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка КП: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка КП: %w", err)
	}
	defer rows.Close()

	quotes := make([]dto.QuoteListItemDTO, 0)
	for rows.Next() {
		var q dto.QuoteListItemDTO
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&q.ID, &q.CreatedBy, &q.Status, &q.CustomerName, &q.ItemsCount, &createdAt, &updatedAt); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования КП в списке: %w", err)
		}
		q.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
		q.UpdatedAt = updatedAt.Local().Format("2006-01-02 15:04:05")
		quotes = append(quotes, q)
	}
	return quotes, total, nil
}

func (r *QuoteRepository) FindQuote(ctx context.Context, id uint64) (*dto.QuoteDTO, error) {
	query := `
		SELECT id, created_by, status, customer_name, comment, zones_json, created_at, updated_at
		FROM quotes
		WHERE id = $1`

	var q dto.QuoteDTO
	var zonesJSON *string
	var createdAt, updatedAt time.Time

	err := r.storage.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.CreatedBy, &q.Status, &q.CustomerName, &q.Comment, &zonesJSON, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования КП: %w", err)
	}

	q.Zones = decodeZones(zonesJSON)
	q.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
	q.UpdatedAt = updatedAt.Local().Format("2006-01-02 15:04:05")

	itemRows, err := r.storage.Query(ctx, `
		SELECT id, technique_id, engine_option_id, engine_text, year, qty, params_json
		FROM quote_items
		WHERE quote_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения позиций КП: %w", err)
	}
	defer itemRows.Close()

	q.Items = make([]dto.QuoteItemOutDTO, 0)
	for itemRows.Next() {
		var it dto.QuoteItemOutDTO
		if err := itemRows.Scan(&it.ID, &it.TechniqueID, &it.EngineOptionID, &it.EngineText, &it.Year, &it.Qty, &it.ParamsJSON); err != nil {
			return nil, fmt.Errorf("ошибка сканирования позиции КП: %w", err)
		}
		q.Items = append(q.Items, it)
	}

	return &q, nil
}

func (r *QuoteRepository) CreateQuote(ctx context.Context, creatorUserID int, data dto.CreateQuoteDTO) (newQuoteID int, err error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	zonesJSON := encodeZones(data.Zones)
	err = tx.QueryRow(ctx, `
		INSERT INTO quotes (created_by, status, customer_name, comment, zones_json)
		VALUES ($1, 'draft', $2, $3, $4)
		RETURNING id`,
		creatorUserID, data.CustomerName, data.Comment, zonesJSON,
	).Scan(&newQuoteID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания КП: %w", err)
	}

	if err = insertItems(ctx, tx, newQuoteID, data.Items); err != nil {
		return 0, err
	}

	return newQuoteID, nil
}

// FindQuoteForUpdateInTx читает КП с блокировкой строки (FOR UPDATE).
// Все операции над одним КП сериализуются через эту блокировку, проверка
// перехода всегда выполняется по сохраненному статусу, а не по клиентскому.
func (r *QuoteRepository) FindQuoteForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Quote, error) {
	var q entities.Quote
	var zonesJSON *string
	var createdAt, updatedAt time.Time

	err := tx.QueryRow(ctx, `
		SELECT id, created_by, status, customer_name, comment, zones_json, created_at, updated_at
		FROM quotes
		WHERE id = $1
		FOR UPDATE`, id).Scan(
		&q.ID, &q.CreatedBy, &q.Status, &q.CustomerName, &q.Comment, &zonesJSON, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения КП под блокировкой: %w", err)
	}

	q.Zones = decodeZones(zonesJSON)
	q.CreatedAt = &createdAt
	q.UpdatedAt = &updatedAt
	return &q, nil
}

// UpdateQuoteInTx обновляет поля КП и целиком заменяет позиции, если они переданы.
func (r *QuoteRepository) UpdateQuoteInTx(ctx context.Context, tx pgx.Tx, id uint64, data dto.UpdateQuoteDTO) error {
	if _, err := tx.Exec(ctx, `
		UPDATE quotes SET
			customer_name = COALESCE($2, customer_name),
			comment = COALESCE($3, comment),
			zones_json = COALESCE($4, zones_json),
			updated_at = NOW()
		WHERE id = $1`,
		id, data.CustomerName, data.Comment, encodeZonesOptional(data.Zones),
	); err != nil {
		return fmt.Errorf("ошибка обновления КП: %w", err)
	}

	if data.Items != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM quote_items WHERE quote_id = $1`, id); err != nil {
			return fmt.Errorf("ошибка очистки позиций КП: %w", err)
		}
		if err := insertItems(ctx, tx, int(id), data.Items); err != nil {
			return err
		}
	}

	return nil
}

func (r *QuoteRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string, comment *string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE quotes SET
			status = $2,
			comment = COALESCE($3, comment),
			updated_at = NOW()
		WHERE id = $1`, id, status, comment)
	if err != nil {
		return fmt.Errorf("ошибка смены статуса КП: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *QuoteRepository) GetItemsInTx(ctx context.Context, tx pgx.Tx, quoteID uint64) ([]entities.QuoteItem, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, quote_id, technique_id, engine_option_id, engine_text, year, qty, params_json
		FROM quote_items
		WHERE quote_id = $1
		ORDER BY id`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения позиций КП: %w", err)
	}
	defer rows.Close()

	items := make([]entities.QuoteItem, 0)
	for rows.Next() {
		var it entities.QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.TechniqueID, &it.EngineOptionID, &it.EngineText, &it.Year, &it.Qty, &it.ParamsJSON); err != nil {
			return nil, fmt.Errorf("ошибка сканирования позиции КП: %w", err)
		}
		items = append(items, it)
	}
	return items, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, quoteID int, items []dto.QuoteItemDTO) error {
	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO quote_items (quote_id, technique_id, engine_option_id, engine_text, year, qty, params_json)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			quoteID, it.TechniqueID, it.EngineOptionID, it.EngineText, it.Year, it.Qty, it.ParamsJSON,
		); err != nil {
			return fmt.Errorf("ошибка вставки позиции КП: %w", err)
		}
	}
	return nil
}

func encodeZones(zones []string) *string {
	if len(zones) == 0 {
		return nil
	}
	// Дубликаты зон отбрасываются: zones — множество.
	seen := make(map[string]struct{}, len(zones))
	uniq := make([]string, 0, len(zones))
	for _, z := range zones {
		if _, ok := seen[z]; ok {
			continue
		}
		seen[z] = struct{}{}
		uniq = append(uniq, z)
	}
	b, _ := json.Marshal(uniq)
	s := string(b)
	return &s
}

func encodeZonesOptional(zones []string) *string {
	if zones == nil {
		return nil
	}
	if enc := encodeZones(zones); enc != nil {
		return enc
	}
	empty := "[]"
	return &empty
}

func decodeZones(zonesJSON *string) []string {
	if zonesJSON == nil || *zonesJSON == "" {
		return []string{}
	}
	var zones []string
	if err := json.Unmarshal([]byte(*zonesJSON), &zones); err != nil {
		return []string{}
	}
	return zones
}
