package services

import (
	"context"
	"encoding/json"

	"quote-system/internal/dto"
	"quote-system/internal/repositories"
	"quote-system/pkg/config"

	"go.uber.org/zap"
)

type ZoneServiceInterface interface {
	GetZones(ctx context.Context) ([]dto.ZoneDTO, error)
	CreateZone(ctx context.Context, data dto.CreateZoneDTO) (int, error)
	UpdateZone(ctx context.Context, id uint64, data dto.UpdateZoneDTO) error
	DeleteZone(ctx context.Context, id uint64) error
}

const zonesCacheKey = "dict:zones"

// ZoneService — справочник зон. Список маленький и читается при каждой
// отрисовке формы КП, поэтому кешируется в Redis; запись сбрасывает кеш.
type ZoneService struct {
	zoneRepo  repositories.ZoneRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cfg       *config.QuoteConfig
}

func NewZoneService(
	zoneRepo repositories.ZoneRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *config.QuoteConfig,
) ZoneServiceInterface {
	return &ZoneService{zoneRepo: zoneRepo, cacheRepo: cacheRepo, logger: logger, cfg: cfg}
}

func (s *ZoneService) GetZones(ctx context.Context) ([]dto.ZoneDTO, error) {
	if raw, err := s.cacheRepo.Get(ctx, zonesCacheKey); err == nil && raw != "" {
		var cached []dto.ZoneDTO
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	}

	zones, err := s.zoneRepo.GetZones(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ZoneDTO, 0, len(zones))
	for _, z := range zones {
		out = append(out, dto.ZoneDTO{ID: z.ID, Code: z.Code, TitleRu: z.TitleRu, Active: z.Active})
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := s.cacheRepo.Set(ctx, zonesCacheKey, string(raw), s.cfg.DictionaryCacheTTL); err != nil {
			s.logger.Warn("Не удалось закешировать справочник зон", zap.Error(err))
		}
	}
	return out, nil
}

func (s *ZoneService) CreateZone(ctx context.Context, data dto.CreateZoneDTO) (int, error) {
	id, err := s.zoneRepo.CreateZone(ctx, data)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return id, nil
}

func (s *ZoneService) UpdateZone(ctx context.Context, id uint64, data dto.UpdateZoneDTO) error {
	if err := s.zoneRepo.UpdateZone(ctx, id, data); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ZoneService) DeleteZone(ctx context.Context, id uint64) error {
	if err := s.zoneRepo.DeleteZone(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ZoneService) invalidate(ctx context.Context) {
	if err := s.cacheRepo.Del(ctx, zonesCacheKey); err != nil {
		s.logger.Warn("Не удалось сбросить кеш справочника зон", zap.Error(err))
	}
}
