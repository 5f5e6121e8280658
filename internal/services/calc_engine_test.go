package services

import (
	"testing"

	"quote-system/internal/dto"
	"quote-system/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestDedupItems_SumsEqualItems(t *testing.T) {
	items := []entities.QuoteItem{
		{TechniqueID: 1, EngineOptionID: intPtr(5), Year: intPtr(2015), Qty: 2},
		{TechniqueID: 1, EngineOptionID: intPtr(5), Year: intPtr(2015), Qty: 3},
		{TechniqueID: 2, Qty: 1},
	}

	deduped := dedupItems(items)
	require.Len(t, deduped, 2)
	assert.Equal(t, 5, deduped[0].Qty)
	assert.Equal(t, 1, deduped[0].TechniqueID)
	assert.Equal(t, 1, deduped[1].Qty)
}

func TestDedupItems_DifferentYearsStaySeparate(t *testing.T) {
	items := []entities.QuoteItem{
		{TechniqueID: 1, Year: intPtr(2010), Qty: 1},
		{TechniqueID: 1, Year: intPtr(2020), Qty: 1},
		{TechniqueID: 1, Qty: 1},
	}
	assert.Len(t, dedupItems(items), 3)
}

func TestDedupItems_ParamsOrderIrrelevant(t *testing.T) {
	items := []entities.QuoteItem{
		{TechniqueID: 1, Qty: 1, ParamsJSON: strPtr(`{"a": 1, "b": 2}`)},
		{TechniqueID: 1, Qty: 2, ParamsJSON: strPtr(`{"b": 2, "a": 1}`)},
	}

	deduped := dedupItems(items)
	require.Len(t, deduped, 1)
	assert.Equal(t, 3, deduped[0].Qty)
}

func TestMatchConditions_EmptyMatchesEverything(t *testing.T) {
	it := dedupedItem{TechniqueID: 1, Qty: 1}
	assert.True(t, matchConditions(dto.RuleConditions{}, it, "", map[string]struct{}{}))
}

func TestMatchConditions_ZonesSubset(t *testing.T) {
	cond := dto.RuleConditions{ZonesIncluded: []string{"engine", "fuel_tank"}}
	it := dedupedItem{TechniqueID: 1, Qty: 1}

	both := map[string]struct{}{"engine": {}, "fuel_tank": {}, "cabin": {}}
	assert.True(t, matchConditions(cond, it, "", both))

	onlyEngine := map[string]struct{}{"engine": {}}
	assert.False(t, matchConditions(cond, it, "", onlyEngine))
}

func TestMatchConditions_YearRange(t *testing.T) {
	cond := dto.RuleConditions{YearRange: &dto.YearRange{From: intPtr(2010), To: intPtr(2020)}}
	zones := map[string]struct{}{}

	assert.True(t, matchConditions(cond, dedupedItem{Year: intPtr(2015)}, "", zones))
	assert.True(t, matchConditions(cond, dedupedItem{Year: intPtr(2010)}, "", zones))
	assert.True(t, matchConditions(cond, dedupedItem{Year: intPtr(2020)}, "", zones))
	assert.False(t, matchConditions(cond, dedupedItem{Year: intPtr(2009)}, "", zones))
	assert.False(t, matchConditions(cond, dedupedItem{Year: intPtr(2021)}, "", zones))
	// Позиция без года не матчит правило с ограничением по годам.
	assert.False(t, matchConditions(cond, dedupedItem{}, "", zones))
}

func TestMatchConditions_OpenEndedYearRange(t *testing.T) {
	cond := dto.RuleConditions{YearRange: &dto.YearRange{From: intPtr(2011)}}
	zones := map[string]struct{}{}

	assert.True(t, matchConditions(cond, dedupedItem{Year: intPtr(2030)}, "", zones))
	assert.False(t, matchConditions(cond, dedupedItem{Year: intPtr(2010)}, "", zones))
}

func TestMatchConditions_EngineCaseInsensitive(t *testing.T) {
	cond := dto.RuleConditions{Engine: strPtr("Cummins KTA50-C")}
	zones := map[string]struct{}{}

	assert.True(t, matchConditions(cond, dedupedItem{}, "cummins kta50-c", zones))
	assert.True(t, matchConditions(cond, dedupedItem{}, " CUMMINS KTA50-C ", zones))
	assert.False(t, matchConditions(cond, dedupedItem{}, "ЯМЗ-845.10", zones))
	assert.False(t, matchConditions(cond, dedupedItem{}, "", zones))
}

func TestMatchConditions_Params(t *testing.T) {
	cond := dto.RuleConditions{Params: map[string]interface{}{"cabin_type": "closed"}}
	zones := map[string]struct{}{}

	matching := dedupedItem{ParamsJSON: strPtr(`{"cabin_type": "closed", "extra": true}`)}
	assert.True(t, matchConditions(cond, matching, "", zones))

	other := dedupedItem{ParamsJSON: strPtr(`{"cabin_type": "open"}`)}
	assert.False(t, matchConditions(cond, other, "", zones))

	assert.False(t, matchConditions(cond, dedupedItem{}, "", zones))
}

func TestRunRules_AccumulatesActionsAcrossItemsAndRules(t *testing.T) {
	items := []dedupedItem{
		{TechniqueID: 1, Qty: 2},
		{TechniqueID: 2, Qty: 1},
	}
	rules := []entities.Rule{
		{ID: 10, TechniqueID: 1, ConditionsJSON: `{}`, ActionsJSON: `[{"sku_id": 100, "multiplier": 2}, {"sku_id": 101, "multiplier": 1}]`},
		{ID: 11, TechniqueID: 2, ConditionsJSON: `{}`, ActionsJSON: `[{"sku_id": 100, "multiplier": 3}]`},
		{ID: 12, TechniqueID: 3, ConditionsJSON: `{}`, ActionsJSON: `[{"sku_id": 999, "multiplier": 1}]`},
	}

	accum, matched, err := runRules(items, rules, nil, nil)
	require.NoError(t, err)

	// техника 1: 2 шт * множитель 2 = 4, плюс техника 2: 1 шт * 3 = 3.
	assert.Equal(t, 7, accum[100])
	assert.Equal(t, 2, accum[101])
	_, ok := accum[999]
	assert.False(t, ok, "правило чужой техники не должно срабатывать")
	assert.Equal(t, []int{10, 11}, matched)
}

func TestRunRules_TruncatesFractionalQuantities(t *testing.T) {
	items := []dedupedItem{{TechniqueID: 1, Qty: 1}}
	rules := []entities.Rule{
		{ID: 1, TechniqueID: 1, ConditionsJSON: `{}`, ActionsJSON: `[{"sku_id": 100, "multiplier": 0.4}, {"sku_id": 200, "multiplier": 2.3}]`},
	}

	accum, _, err := runRules(items, rules, nil, nil)
	require.NoError(t, err)

	// Дробная часть отбрасывается: 0.4 -> 0, 2.3 -> 2.
	assert.Equal(t, 0, accum[100])
	assert.Equal(t, 2, accum[200])

	lines := buildResultLines(accum)
	require.Len(t, lines, 1)
	assert.Equal(t, 200, lines[0].SkuID)
	assert.Equal(t, 2, lines[0].Qty)
}

func TestRunRules_ConditionFilters(t *testing.T) {
	items := []dedupedItem{{TechniqueID: 1, Qty: 1, Year: intPtr(2005)}}
	rules := []entities.Rule{
		{ID: 1, TechniqueID: 1, ConditionsJSON: `{"year_range": {"from": 2010}}`, ActionsJSON: `[{"sku_id": 100, "multiplier": 1}]`},
	}

	accum, matched, err := runRules(items, rules, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, accum)
	assert.Empty(t, matched)
}

func TestRunRules_BrokenConditionsJSON(t *testing.T) {
	items := []dedupedItem{{TechniqueID: 1, Qty: 1}}
	rules := []entities.Rule{
		{ID: 1, TechniqueID: 1, ConditionsJSON: `{broken`, ActionsJSON: `[]`},
	}

	_, _, err := runRules(items, rules, nil, nil)
	assert.Error(t, err)
}

func TestBuildResultLines_DropsZeroAndNegative(t *testing.T) {
	accum := map[int]int{
		100: 2,
		101: 3,
		102: 0,
		103: -1,
	}

	lines := buildResultLines(accum)
	require.Len(t, lines, 2)
	// Строки отсортированы по sku_id.
	assert.Equal(t, 100, lines[0].SkuID)
	assert.Equal(t, 2, lines[0].Qty)
	assert.Equal(t, 101, lines[1].SkuID)
	assert.Equal(t, 3, lines[1].Qty)
}

func TestBuildResultLines_Empty(t *testing.T) {
	assert.Empty(t, buildResultLines(map[int]int{}))
}

func TestCanonicalJSON(t *testing.T) {
	assert.Equal(t, canonicalJSON(`{"b":2,"a":1}`), canonicalJSON(`{"a":1,"b":2}`))
	assert.NotEqual(t, canonicalJSON(`{"a":1}`), canonicalJSON(`{"a":2}`))
	// Невалидный JSON возвращается как есть.
	assert.Equal(t, "not json", canonicalJSON("not json"))
}

func TestEncodeRuleIDs(t *testing.T) {
	assert.Equal(t, "[1,2,3]", encodeRuleIDs([]int{1, 2, 3}))
	assert.Equal(t, "[]", encodeRuleIDs([]int{}))
}
