package entities

import (
	"quote-system/pkg/types"
)

// Quote — коммерческое предложение (КП) на комплект пожаротушения.
type Quote struct {
	ID           int     `json:"id"`
	CreatedBy    int     `json:"created_by"`
	Status       string  `json:"status"`
	CustomerName *string `json:"customer_name"`
	Comment      *string `json:"comment"`
	// Коды защищаемых зон, хранятся как JSON-массив в колонке zones_json.
	Zones []string    `json:"zones"`
	Items []QuoteItem `json:"items"`

	types.BaseEntity
}

// QuoteItem — одна позиция техники в КП.
type QuoteItem struct {
	ID             int     `json:"id"`
	QuoteID        int     `json:"quote_id"`
	TechniqueID    int     `json:"technique_id"`
	EngineOptionID *int    `json:"engine_option_id"`
	EngineText     *string `json:"engine_text"`
	Year           *int    `json:"year"`
	Qty            int     `json:"qty"`
	ParamsJSON     *string `json:"params_json"`
}
