package services

import (
	"context"

	"quote-system/internal/dto"
	"quote-system/internal/entities"
	"quote-system/internal/repositories"
	"quote-system/pkg/types"

	"go.uber.org/zap"
)

type SkuServiceInterface interface {
	GetSkus(ctx context.Context, filter types.Filter) ([]dto.SkuDTO, uint64, error)
	FindSku(ctx context.Context, id uint64) (*dto.SkuDTO, error)
	CreateSku(ctx context.Context, data dto.CreateSkuDTO) (int, error)
	UpdateSku(ctx context.Context, id uint64, data dto.UpdateSkuDTO) error
	DeleteSku(ctx context.Context, id uint64) error
}

type SkuService struct {
	skuRepo repositories.SkuRepositoryInterface
	logger  *zap.Logger
}

func NewSkuService(skuRepo repositories.SkuRepositoryInterface, logger *zap.Logger) SkuServiceInterface {
	return &SkuService{skuRepo: skuRepo, logger: logger}
}

func (s *SkuService) GetSkus(ctx context.Context, filter types.Filter) ([]dto.SkuDTO, uint64, error) {
	list, total, err := s.skuRepo.GetSkus(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.SkuDTO, 0, len(list))
	for i := range list {
		out = append(out, skuToDTO(&list[i]))
	}
	return out, total, nil
}

func (s *SkuService) FindSku(ctx context.Context, id uint64) (*dto.SkuDTO, error) {
	sku, err := s.skuRepo.FindSku(ctx, id)
	if err != nil {
		return nil, err
	}
	d := skuToDTO(sku)
	return &d, nil
}

func (s *SkuService) CreateSku(ctx context.Context, data dto.CreateSkuDTO) (int, error) {
	id, err := s.skuRepo.CreateSku(ctx, data)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Добавлено СКЮ", zap.Int("skuId", id), zap.String("code", data.Code))
	return id, nil
}

func (s *SkuService) UpdateSku(ctx context.Context, id uint64, data dto.UpdateSkuDTO) error {
	return s.skuRepo.UpdateSku(ctx, id, data)
}

func (s *SkuService) DeleteSku(ctx context.Context, id uint64) error {
	return s.skuRepo.DeleteSku(ctx, id)
}

func skuToDTO(sku *entities.SKU) dto.SkuDTO {
	return dto.SkuDTO{
		ID:         sku.ID,
		Code:       sku.Code,
		Name:       sku.Name,
		Unit:       sku.Unit,
		Active:     sku.Active,
		VersionTag: sku.VersionTag,
	}
}
