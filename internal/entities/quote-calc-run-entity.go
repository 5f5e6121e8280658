package entities

import "time"

// QuoteCalcRun — аудит одного прогона расчета: какие правила сработали.
type QuoteCalcRun struct {
	ID             int       `json:"id"`
	QuoteID        int       `json:"quote_id"`
	RunID          string    `json:"run_id"`
	MatchedRuleIDs string    `json:"matched_rule_ids"`
	DebugNote      *string   `json:"debug_note"`
	CreatedAt      time.Time `json:"created_at"`
}
