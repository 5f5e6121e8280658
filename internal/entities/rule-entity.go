package entities

import "time"

// Rule — правило расчета, привязанное к технике.
// Условия и действия хранятся как JSON и разбираются движком расчета.
type Rule struct {
	ID             int        `json:"id"`
	TechniqueID    int        `json:"technique_id"`
	ConditionsJSON string     `json:"conditions_json"`
	ActionsJSON    string     `json:"actions_json"`
	Version        int        `json:"version"`
	ActiveFrom     *time.Time `json:"active_from"`
	ActiveTo       *time.Time `json:"active_to"`
	Active         bool       `json:"active"`
}
