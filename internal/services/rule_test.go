package services

import (
	"context"
	"testing"

	"quote-system/internal/entities"
	"quote-system/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSkuRepo struct {
	repositories.SkuRepositoryInterface
	known map[int]entities.SKU
}

func (f *fakeSkuRepo) GetByIDs(_ context.Context, ids []int) (map[int]entities.SKU, error) {
	out := make(map[int]entities.SKU)
	for _, id := range ids {
		if sku, ok := f.known[id]; ok {
			out[id] = sku
		}
	}
	return out, nil
}

func newTestRuleService(knownSkus ...int) *RuleService {
	known := make(map[int]entities.SKU)
	for _, id := range knownSkus {
		known[id] = entities.SKU{ID: id}
	}
	return &RuleService{
		skuRepo: &fakeSkuRepo{known: known},
		logger:  zap.NewNop(),
	}
}

func TestValidateConditionsJSON(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"пустой объект", `{}`, false},
		{"полный набор условий", `{"zones_included": ["engine"], "year_range": {"from": 2010, "to": 2020}, "engine": "Cat C32", "params": {"cabin": "closed"}}`, false},
		{"битый JSON", `{broken`, true},
		{"неизвестное поле", `{"zonez": ["engine"]}`, true},
		{"перевернутый диапазон лет", `{"year_range": {"from": 2020, "to": 2010}}`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateConditionsJSON(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateActionsJSON(t *testing.T) {
	svc := newTestRuleService(1, 2)
	ctx := context.Background()

	assert.NoError(t, svc.validateActionsJSON(ctx, `[{"sku_id": 1, "multiplier": 2}, {"sku_id": 2, "multiplier": 0.5}]`))

	cases := []struct {
		name string
		raw  string
	}{
		{"пустой список", `[]`},
		{"битый JSON", `[{`},
		{"без sku_id", `[{"multiplier": 1}]`},
		{"нулевой множитель", `[{"sku_id": 1, "multiplier": 0}]`},
		{"отрицательный множитель", `[{"sku_id": 1, "multiplier": -2}]`},
		{"несуществующее СКЮ", `[{"sku_id": 99, "multiplier": 1}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, svc.validateActionsJSON(ctx, tc.raw))
		})
	}
}

func TestParseRuleDate(t *testing.T) {
	got, err := parseRuleDate(strPtr("2026-01-15"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())

	got, err = parseRuleDate(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	empty := ""
	got, err = parseRuleDate(&empty)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseRuleDate(strPtr("15.01.2026"))
	assert.Error(t, err)
}

func TestRuleToDTO_Dates(t *testing.T) {
	from, err := parseRuleDate(strPtr("2026-01-01"))
	require.NoError(t, err)

	d := ruleToDTO(&entities.Rule{ID: 1, TechniqueID: 2, Version: 3, Active: true, ActiveFrom: from})
	require.NotNil(t, d.ActiveFrom)
	assert.Equal(t, "2026-01-01", *d.ActiveFrom)
	assert.Nil(t, d.ActiveTo)
}
