package dto

// RuleConditions — декларативные условия срабатывания правила.
// Никакого eval: все условия матчится по фиксированному набору полей.
type RuleConditions struct {
	ZonesIncluded []string               `json:"zones_included,omitempty"`
	YearRange     *YearRange             `json:"year_range,omitempty"`
	Engine        *string                `json:"engine,omitempty"`
	Params        map[string]interface{} `json:"params,omitempty"`
}

type YearRange struct {
	From *int `json:"from,omitempty"`
	To   *int `json:"to,omitempty"`
}

// RuleAction — одно действие правила: добавить СКЮ с множителем
// относительно количества позиции.
type RuleAction struct {
	SkuID      int     `json:"sku_id"`
	Multiplier float64 `json:"multiplier"`
}

type CreateRuleDTO struct {
	TechniqueID    int     `json:"technique_id" validate:"required,min=1"`
	ConditionsJSON string  `json:"conditions_json" validate:"required"`
	ActionsJSON    string  `json:"actions_json" validate:"required"`
	Version        int     `json:"version" validate:"omitempty,min=1"`
	ActiveFrom     *string `json:"active_from"`
	ActiveTo       *string `json:"active_to"`
	Active         *bool   `json:"active"`
}

type UpdateRuleDTO struct {
	ConditionsJSON *string `json:"conditions_json"`
	ActionsJSON    *string `json:"actions_json"`
	Version        *int    `json:"version" validate:"omitempty,min=1"`
	ActiveFrom     *string `json:"active_from"`
	ActiveTo       *string `json:"active_to"`
	Active         *bool   `json:"active"`
}

type RuleDTO struct {
	ID             int     `json:"id"`
	TechniqueID    int     `json:"technique_id"`
	ConditionsJSON string  `json:"conditions_json"`
	ActionsJSON    string  `json:"actions_json"`
	Version        int     `json:"version"`
	ActiveFrom     *string `json:"active_from"`
	ActiveTo       *string `json:"active_to"`
	Active         bool    `json:"active"`
}
