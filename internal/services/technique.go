package services

import (
	"context"

	"quote-system/internal/dto"
	"quote-system/internal/entities"
	"quote-system/internal/repositories"
	"quote-system/pkg/types"

	"go.uber.org/zap"
)

type TechniqueServiceInterface interface {
	GetTechniques(ctx context.Context, filter types.Filter) ([]dto.TechniqueDTO, uint64, error)
	FindTechnique(ctx context.Context, id uint64) (*dto.TechniqueDTO, error)
	CreateTechnique(ctx context.Context, data dto.CreateTechniqueDTO) (int, error)
	UpdateTechnique(ctx context.Context, id uint64, data dto.UpdateTechniqueDTO) error
	DeleteTechnique(ctx context.Context, id uint64) error

	GetEngineOptions(ctx context.Context, techniqueID uint64) ([]dto.EngineOptionDTO, error)
	CreateEngineOption(ctx context.Context, techniqueID uint64, data dto.CreateEngineOptionDTO) (int, error)
	DeleteEngineOption(ctx context.Context, id uint64) error

	GetAliases(ctx context.Context, filter types.Filter) ([]dto.TechniqueAliasDTO, uint64, error)
	CreateAlias(ctx context.Context, data dto.CreateTechniqueAliasDTO) (int, error)
	DeleteAlias(ctx context.Context, id uint64) error
}

type TechniqueService struct {
	techniqueRepo repositories.TechniqueRepositoryInterface
	logger        *zap.Logger
}

func NewTechniqueService(techniqueRepo repositories.TechniqueRepositoryInterface, logger *zap.Logger) TechniqueServiceInterface {
	return &TechniqueService{techniqueRepo: techniqueRepo, logger: logger}
}

func (s *TechniqueService) GetTechniques(ctx context.Context, filter types.Filter) ([]dto.TechniqueDTO, uint64, error) {
	list, total, err := s.techniqueRepo.GetTechniques(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.TechniqueDTO, 0, len(list))
	for i := range list {
		out = append(out, techniqueToDTO(&list[i]))
	}
	return out, total, nil
}

func (s *TechniqueService) FindTechnique(ctx context.Context, id uint64) (*dto.TechniqueDTO, error) {
	t, err := s.techniqueRepo.FindTechnique(ctx, id)
	if err != nil {
		return nil, err
	}
	d := techniqueToDTO(t)
	return &d, nil
}

func (s *TechniqueService) CreateTechnique(ctx context.Context, data dto.CreateTechniqueDTO) (int, error) {
	id, err := s.techniqueRepo.CreateTechnique(ctx, data)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Добавлена техника", zap.Int("techniqueId", id),
		zap.String("manufacturer", data.Manufacturer), zap.String("model", data.Model))
	return id, nil
}

func (s *TechniqueService) UpdateTechnique(ctx context.Context, id uint64, data dto.UpdateTechniqueDTO) error {
	return s.techniqueRepo.UpdateTechnique(ctx, id, data)
}

func (s *TechniqueService) DeleteTechnique(ctx context.Context, id uint64) error {
	return s.techniqueRepo.DeleteTechnique(ctx, id)
}

func (s *TechniqueService) GetEngineOptions(ctx context.Context, techniqueID uint64) ([]dto.EngineOptionDTO, error) {
	if _, err := s.techniqueRepo.FindTechnique(ctx, techniqueID); err != nil {
		return nil, err
	}
	opts, err := s.techniqueRepo.GetEngineOptions(ctx, techniqueID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EngineOptionDTO, 0, len(opts))
	for _, o := range opts {
		out = append(out, dto.EngineOptionDTO{
			ID:          o.ID,
			TechniqueID: o.TechniqueID,
			EngineName:  o.EngineName,
			YearFrom:    o.YearFrom,
			YearTo:      o.YearTo,
			Source:      o.Source,
			Active:      o.Active,
		})
	}
	return out, nil
}

func (s *TechniqueService) CreateEngineOption(ctx context.Context, techniqueID uint64, data dto.CreateEngineOptionDTO) (int, error) {
	if _, err := s.techniqueRepo.FindTechnique(ctx, techniqueID); err != nil {
		return 0, err
	}
	return s.techniqueRepo.CreateEngineOption(ctx, techniqueID, data)
}

func (s *TechniqueService) DeleteEngineOption(ctx context.Context, id uint64) error {
	return s.techniqueRepo.DeleteEngineOption(ctx, id)
}

func (s *TechniqueService) GetAliases(ctx context.Context, filter types.Filter) ([]dto.TechniqueAliasDTO, uint64, error) {
	list, total, err := s.techniqueRepo.GetAliases(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.TechniqueAliasDTO, 0, len(list))
	for _, a := range list {
		out = append(out, dto.TechniqueAliasDTO{
			ID:          a.ID,
			AliasText:   a.AliasText,
			TechniqueID: a.TechniqueID,
			Note:        a.Note,
		})
	}
	return out, total, nil
}

func (s *TechniqueService) CreateAlias(ctx context.Context, data dto.CreateTechniqueAliasDTO) (int, error) {
	if _, err := s.techniqueRepo.FindTechnique(ctx, uint64(data.TechniqueID)); err != nil {
		return 0, err
	}
	return s.techniqueRepo.CreateAlias(ctx, data)
}

func (s *TechniqueService) DeleteAlias(ctx context.Context, id uint64) error {
	return s.techniqueRepo.DeleteAlias(ctx, id)
}

func techniqueToDTO(t *entities.Technique) dto.TechniqueDTO {
	return dto.TechniqueDTO{
		ID:           t.ID,
		Manufacturer: t.Manufacturer,
		Model:        t.Model,
		Series:       t.Series,
		Meta:         t.Meta,
		Active:       t.Active,
	}
}
