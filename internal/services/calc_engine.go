package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"time"

	"quote-system/internal/dto"
	"quote-system/internal/entities"
	"quote-system/internal/repositories"
	"quote-system/pkg/constants"
	apperrors "quote-system/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CalcEngineServiceInterface interface {
	Calculate(ctx context.Context, quoteID uint64) (*dto.CalcResultDTO, error)
	GetCalcRuns(ctx context.Context, quoteID uint64) ([]entities.QuoteCalcRun, error)
}

// CalcEngineService прогоняет позиции КП через правила и целиком заменяет
// спецификацию. Расчет идемпотентен: повторный прогон по тем же данным
// дает те же строки.
type CalcEngineService struct {
	txManager     repositories.TxManagerInterface
	quoteRepo     repositories.QuoteRepositoryInterface
	lineRepo      repositories.ResultLineRepositoryInterface
	ruleRepo      repositories.RuleRepositoryInterface
	calcRunRepo   repositories.CalcRunRepositoryInterface
	techniqueRepo repositories.TechniqueRepositoryInterface
	logger        *zap.Logger
}

func NewCalcEngineService(
	txManager repositories.TxManagerInterface,
	quoteRepo repositories.QuoteRepositoryInterface,
	lineRepo repositories.ResultLineRepositoryInterface,
	ruleRepo repositories.RuleRepositoryInterface,
	calcRunRepo repositories.CalcRunRepositoryInterface,
	techniqueRepo repositories.TechniqueRepositoryInterface,
	logger *zap.Logger,
) CalcEngineServiceInterface {
	return &CalcEngineService{
		txManager:     txManager,
		quoteRepo:     quoteRepo,
		lineRepo:      lineRepo,
		ruleRepo:      ruleRepo,
		calcRunRepo:   calcRunRepo,
		techniqueRepo: techniqueRepo,
		logger:        logger,
	}
}

// Calculate выполняет расчет в одной транзакции: блокирует КП, собирает
// активные правила, заменяет строки спецификации, пишет аудит прогона и
// переводит КП в статус calculated.
func (s *CalcEngineService) Calculate(ctx context.Context, quoteID uint64) (*dto.CalcResultDTO, error) {
	var result dto.CalcResultDTO
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		quote, err := s.quoteRepo.FindQuoteForUpdateInTx(ctx, tx, quoteID)
		if err != nil {
			return err
		}

		if err := quoteEditableOrConflict(quote); err != nil {
			return err
		}

		items, err := s.quoteRepo.GetItemsInTx(ctx, tx, quoteID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apperrors.NewInvalidInputError("В КП нет позиций техники, расчет невозможен")
		}

		deduped := dedupItems(items)

		// Имена двигателей подтягиваются для сравнения с условием engine.
		engineNames := map[int]string{}
		for _, it := range deduped {
			if it.EngineOptionID == nil {
				continue
			}
			if _, ok := engineNames[*it.EngineOptionID]; ok {
				continue
			}
			opt, err := s.techniqueRepo.FindEngineOptionInTx(ctx, tx, uint64(*it.EngineOptionID))
			if err != nil {
				if err == apperrors.ErrNotFound {
					return apperrors.NewInvalidInputError("Вариант двигателя %d не найден", *it.EngineOptionID)
				}
				return err
			}
			engineNames[*it.EngineOptionID] = opt.EngineName
		}

		techniqueIDs := make([]int, 0, len(deduped))
		seen := map[int]struct{}{}
		for _, it := range deduped {
			if _, ok := seen[it.TechniqueID]; !ok {
				seen[it.TechniqueID] = struct{}{}
				techniqueIDs = append(techniqueIDs, it.TechniqueID)
			}
		}

		rules, err := s.ruleRepo.GetActiveForTechniquesInTx(ctx, tx, techniqueIDs, time.Now())
		if err != nil {
			return err
		}

		accum, matchedRuleIDs, err := runRules(deduped, rules, quote.Zones, engineNames)
		if err != nil {
			return err
		}

		lines := buildResultLines(accum)
		if _, err := s.lineRepo.ReplaceLinesInTx(ctx, tx, quoteID, lines); err != nil {
			return err
		}

		run := entities.QuoteCalcRun{
			QuoteID:        quote.ID,
			RunID:          uuid.NewString(),
			MatchedRuleIDs: encodeRuleIDs(matchedRuleIDs),
		}
		if err := s.calcRunRepo.CreateInTx(ctx, tx, run); err != nil {
			return err
		}

		if err := s.quoteRepo.UpdateStatusInTx(ctx, tx, quoteID, constants.StatusCalculated, nil); err != nil {
			return err
		}

		outLines, err := s.lineRepo.GetLinesInTx(ctx, tx, quoteID)
		if err != nil {
			return err
		}

		s.logger.Info("Расчет КП выполнен",
			zap.Uint64("quoteId", quoteID),
			zap.String("runId", run.RunID),
			zap.Int("matchedRules", len(matchedRuleIDs)),
			zap.Int("lines", len(outLines)),
		)

		result = dto.CalcResultDTO{QuoteID: quote.ID, Status: constants.StatusCalculated, Lines: outLines}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *CalcEngineService) GetCalcRuns(ctx context.Context, quoteID uint64) ([]entities.QuoteCalcRun, error) {
	if _, err := s.quoteRepo.FindQuote(ctx, quoteID); err != nil {
		return nil, err
	}
	return s.calcRunRepo.GetRuns(ctx, quoteID)
}

// dedupedItem — позиция техники после схлопывания дубликатов.
type dedupedItem struct {
	TechniqueID    int
	EngineOptionID *int
	EngineText     *string
	Year           *int
	Qty            int
	ParamsJSON     *string
}

// dedupKey — ключ схлопывания: (техника, двигатель, год, параметры).
func dedupKey(it entities.QuoteItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "t=%d", it.TechniqueID)
	if it.EngineOptionID != nil {
		fmt.Fprintf(&b, "|eo=%d", *it.EngineOptionID)
	}
	if it.EngineText != nil {
		fmt.Fprintf(&b, "|et=%s", strings.ToLower(strings.TrimSpace(*it.EngineText)))
	}
	if it.Year != nil {
		fmt.Fprintf(&b, "|y=%d", *it.Year)
	}
	if it.ParamsJSON != nil {
		fmt.Fprintf(&b, "|p=%s", canonicalJSON(*it.ParamsJSON))
	}
	return b.String()
}

// dedupItems схлопывает одинаковые позиции, суммируя количества.
// Порядок первых вхождений сохраняется.
func dedupItems(items []entities.QuoteItem) []dedupedItem {
	index := map[string]int{}
	out := make([]dedupedItem, 0, len(items))
	for _, it := range items {
		key := dedupKey(it)
		if i, ok := index[key]; ok {
			out[i].Qty += it.Qty
			continue
		}
		index[key] = len(out)
		out = append(out, dedupedItem{
			TechniqueID:    it.TechniqueID,
			EngineOptionID: it.EngineOptionID,
			EngineText:     it.EngineText,
			Year:           it.Year,
			Qty:            it.Qty,
			ParamsJSON:     it.ParamsJSON,
		})
	}
	return out
}

// canonicalJSON нормализует JSON-объект для сравнения: ключи сортируются
// маршалингом map. Невалидный JSON возвращается как есть.
func canonicalJSON(raw string) string {
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	b, err := json.Marshal(v)
	if err != nil {
		return raw
	}
	return string(b)
}

// runRules матчит каждую схлопнутую позицию против правил ее техники
// и накапливает количества по СКЮ. Количество каждого действия считается
// как int(multiplier * qty) с отбрасыванием дробной части. Возвращает
// аккумулятор и ID сработавших правил.
func runRules(items []dedupedItem, rules []entities.Rule, quoteZones []string, engineNames map[int]string) (map[int]int, []int, error) {
	zones := map[string]struct{}{}
	for _, z := range quoteZones {
		zones[z] = struct{}{}
	}

	byTechnique := map[int][]entities.Rule{}
	for _, r := range rules {
		byTechnique[r.TechniqueID] = append(byTechnique[r.TechniqueID], r)
	}

	accum := map[int]int{}
	matchedSet := map[int]struct{}{}

	for _, it := range items {
		engine := itemEngineName(it, engineNames)
		for _, rule := range byTechnique[it.TechniqueID] {
			var cond dto.RuleConditions
			if err := json.Unmarshal([]byte(rule.ConditionsJSON), &cond); err != nil {
				return nil, nil, apperrors.NewHttpError(http.StatusUnprocessableEntity,
					fmt.Sprintf("Правило %d содержит некорректные условия", rule.ID), err, nil)
			}
			if !matchConditions(cond, it, engine, zones) {
				continue
			}

			var actions []dto.RuleAction
			if err := json.Unmarshal([]byte(rule.ActionsJSON), &actions); err != nil {
				return nil, nil, apperrors.NewHttpError(http.StatusUnprocessableEntity,
					fmt.Sprintf("Правило %d содержит некорректные действия", rule.ID), err, nil)
			}

			matchedSet[rule.ID] = struct{}{}
			for _, a := range actions {
				accum[a.SkuID] += int(a.Multiplier * float64(it.Qty))
			}
		}
	}

	matched := make([]int, 0, len(matchedSet))
	for id := range matchedSet {
		matched = append(matched, id)
	}
	sort.Ints(matched)
	return accum, matched, nil
}

func itemEngineName(it dedupedItem, engineNames map[int]string) string {
	if it.EngineOptionID != nil {
		return engineNames[*it.EngineOptionID]
	}
	if it.EngineText != nil {
		return *it.EngineText
	}
	return ""
}

// matchConditions проверяет декларативные условия правила против позиции.
// Пустое условие матчит все.
func matchConditions(cond dto.RuleConditions, it dedupedItem, engine string, quoteZones map[string]struct{}) bool {
	// zones_included: все перечисленные зоны должны присутствовать в КП.
	for _, z := range cond.ZonesIncluded {
		if _, ok := quoteZones[z]; !ok {
			return false
		}
	}

	if cond.YearRange != nil {
		if it.Year == nil {
			return false
		}
		if cond.YearRange.From != nil && *it.Year < *cond.YearRange.From {
			return false
		}
		if cond.YearRange.To != nil && *it.Year > *cond.YearRange.To {
			return false
		}
	}

	if cond.Engine != nil {
		if !strings.EqualFold(strings.TrimSpace(*cond.Engine), strings.TrimSpace(engine)) {
			return false
		}
	}

	if len(cond.Params) > 0 {
		var params map[string]interface{}
		if it.ParamsJSON != nil {
			if err := json.Unmarshal([]byte(*it.ParamsJSON), &params); err != nil {
				return false
			}
		}
		for k, want := range cond.Params {
			got, ok := params[k]
			if !ok || !reflect.DeepEqual(want, got) {
				return false
			}
		}
	}

	return true
}

// buildResultLines превращает аккумулятор в строки спецификации.
// Нулевые и отрицательные количества отбрасываются.
func buildResultLines(accum map[int]int) []entities.QuoteResultLine {
	skuIDs := make([]int, 0, len(accum))
	for id := range accum {
		skuIDs = append(skuIDs, id)
	}
	sort.Ints(skuIDs)

	lines := make([]entities.QuoteResultLine, 0, len(skuIDs))
	for _, skuID := range skuIDs {
		qty := accum[skuID]
		if qty <= 0 {
			continue
		}
		lines = append(lines, entities.QuoteResultLine{SkuID: skuID, Qty: qty})
	}
	return lines
}

func encodeRuleIDs(ids []int) string {
	b, _ := json.Marshal(ids)
	return string(b)
}
