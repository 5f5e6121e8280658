package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"quote-system/internal/dto"
	"quote-system/internal/entities"
	"quote-system/internal/repositories"
	apperrors "quote-system/pkg/errors"

	"go.uber.org/zap"
)

type RuleServiceInterface interface {
	GetRules(ctx context.Context, techniqueID *uint64, limit, offset uint64) ([]dto.RuleDTO, uint64, error)
	FindRule(ctx context.Context, id uint64) (*dto.RuleDTO, error)
	CreateRule(ctx context.Context, data dto.CreateRuleDTO) (int, error)
	UpdateRule(ctx context.Context, id uint64, data dto.UpdateRuleDTO) error
	DeleteRule(ctx context.Context, id uint64) error
}

// RuleService — администрирование правил расчета. Условия и действия
// проверяются при сохранении, чтобы движок не спотыкался на мусоре в рантайме.
type RuleService struct {
	ruleRepo repositories.RuleRepositoryInterface
	skuRepo  repositories.SkuRepositoryInterface
	logger   *zap.Logger
}

func NewRuleService(
	ruleRepo repositories.RuleRepositoryInterface,
	skuRepo repositories.SkuRepositoryInterface,
	logger *zap.Logger,
) RuleServiceInterface {
	return &RuleService{ruleRepo: ruleRepo, skuRepo: skuRepo, logger: logger}
}

const ruleDateLayout = "2006-01-02"

func (s *RuleService) GetRules(ctx context.Context, techniqueID *uint64, limit, offset uint64) ([]dto.RuleDTO, uint64, error) {
	rules, total, err := s.ruleRepo.GetRules(ctx, techniqueID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.RuleDTO, 0, len(rules))
	for i := range rules {
		out = append(out, ruleToDTO(&rules[i]))
	}
	return out, total, nil
}

func (s *RuleService) FindRule(ctx context.Context, id uint64) (*dto.RuleDTO, error) {
	rule, err := s.ruleRepo.FindRule(ctx, id)
	if err != nil {
		return nil, err
	}
	d := ruleToDTO(rule)
	return &d, nil
}

func (s *RuleService) CreateRule(ctx context.Context, data dto.CreateRuleDTO) (int, error) {
	if err := validateConditionsJSON(data.ConditionsJSON); err != nil {
		return 0, err
	}
	if err := s.validateActionsJSON(ctx, data.ActionsJSON); err != nil {
		return 0, err
	}

	activeFrom, err := parseRuleDate(data.ActiveFrom)
	if err != nil {
		return 0, err
	}
	activeTo, err := parseRuleDate(data.ActiveTo)
	if err != nil {
		return 0, err
	}

	version := data.Version
	if version == 0 {
		version = 1
	}
	active := true
	if data.Active != nil {
		active = *data.Active
	}

	id, err := s.ruleRepo.CreateRule(ctx, entities.Rule{
		TechniqueID:    data.TechniqueID,
		ConditionsJSON: data.ConditionsJSON,
		ActionsJSON:    data.ActionsJSON,
		Version:        version,
		ActiveFrom:     activeFrom,
		ActiveTo:       activeTo,
		Active:         active,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Создано правило расчета",
		zap.Int("ruleId", id), zap.Int("techniqueId", data.TechniqueID))
	return id, nil
}

func (s *RuleService) UpdateRule(ctx context.Context, id uint64, data dto.UpdateRuleDTO) error {
	rule, err := s.ruleRepo.FindRule(ctx, id)
	if err != nil {
		return err
	}

	if data.ConditionsJSON != nil {
		if err := validateConditionsJSON(*data.ConditionsJSON); err != nil {
			return err
		}
		rule.ConditionsJSON = *data.ConditionsJSON
	}
	if data.ActionsJSON != nil {
		if err := s.validateActionsJSON(ctx, *data.ActionsJSON); err != nil {
			return err
		}
		rule.ActionsJSON = *data.ActionsJSON
	}
	if data.Version != nil {
		rule.Version = *data.Version
	}
	if data.ActiveFrom != nil {
		t, err := parseRuleDate(data.ActiveFrom)
		if err != nil {
			return err
		}
		rule.ActiveFrom = t
	}
	if data.ActiveTo != nil {
		t, err := parseRuleDate(data.ActiveTo)
		if err != nil {
			return err
		}
		rule.ActiveTo = t
	}
	if data.Active != nil {
		rule.Active = *data.Active
	}

	return s.ruleRepo.UpdateRule(ctx, id, *rule)
}

func (s *RuleService) DeleteRule(ctx context.Context, id uint64) error {
	return s.ruleRepo.DeleteRule(ctx, id)
}

// validateConditionsJSON требует валидный объект условий.
// Неизвестные поля отклоняются, чтобы опечатка в условии не превращала
// правило в «матчит все».
func validateConditionsJSON(raw string) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	var cond dto.RuleConditions
	if err := dec.Decode(&cond); err != nil {
		return apperrors.NewInvalidInputError("Некорректные условия правила: %v", err)
	}
	if cond.YearRange != nil && cond.YearRange.From != nil && cond.YearRange.To != nil &&
		*cond.YearRange.From > *cond.YearRange.To {
		return apperrors.NewInvalidInputError("Диапазон лет правила задан наоборот")
	}
	return nil
}

// validateActionsJSON проверяет список действий: не пуст, СКЮ существуют,
// множители положительны.
func (s *RuleService) validateActionsJSON(ctx context.Context, raw string) error {
	var actions []dto.RuleAction
	if err := json.Unmarshal([]byte(raw), &actions); err != nil {
		return apperrors.NewInvalidInputError("Некорректные действия правила: %v", err)
	}
	if len(actions) == 0 {
		return apperrors.NewInvalidInputError("Правило должно содержать хотя бы одно действие")
	}

	skuIDs := make([]int, 0, len(actions))
	for _, a := range actions {
		if a.SkuID < 1 {
			return apperrors.NewInvalidInputError("Действие правила без sku_id")
		}
		if a.Multiplier <= 0 {
			return apperrors.NewInvalidInputError("Множитель действия должен быть положительным")
		}
		skuIDs = append(skuIDs, a.SkuID)
	}

	known, err := s.skuRepo.GetByIDs(ctx, skuIDs)
	if err != nil {
		return err
	}
	for _, id := range skuIDs {
		if _, ok := known[id]; !ok {
			return apperrors.NewInvalidInputError("СКЮ %d не найдено в номенклатуре", id)
		}
	}
	return nil
}

func parseRuleDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(ruleDateLayout, *raw)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("Дата должна быть в формате ГГГГ-ММ-ДД")
	}
	return &t, nil
}

func ruleToDTO(r *entities.Rule) dto.RuleDTO {
	d := dto.RuleDTO{
		ID:             r.ID,
		TechniqueID:    r.TechniqueID,
		ConditionsJSON: r.ConditionsJSON,
		ActionsJSON:    r.ActionsJSON,
		Version:        r.Version,
		Active:         r.Active,
	}
	if r.ActiveFrom != nil {
		v := r.ActiveFrom.Format(ruleDateLayout)
		d.ActiveFrom = &v
	}
	if r.ActiveTo != nil {
		v := r.ActiveTo.Format(ruleDateLayout)
		d.ActiveTo = &v
	}
	return d
}
