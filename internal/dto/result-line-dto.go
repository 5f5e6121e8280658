package dto

// ResultLineDTO — строка спецификации, обогащенная данными номенклатуры.
type ResultLineDTO struct {
	ID                  int     `json:"id"`
	SkuID               int     `json:"sku_id"`
	SkuCode             *string `json:"sku_code"`
	SkuName             *string `json:"sku_name"`
	SkuUnit             *string `json:"sku_unit"`
	Qty                 int     `json:"qty"`
	Note                *string `json:"note"`
	AvailabilityStatus  *string `json:"availability_status"`
	AvailabilityComment *string `json:"availability_comment"`
}

type CalcResultDTO struct {
	QuoteID int             `json:"quote_id"`
	Status  string          `json:"status"`
	Lines   []ResultLineDTO `json:"lines"`
}

// PatchResultLineDTO — точечная правка строки: количество (только admin) и примечание.
type PatchResultLineDTO struct {
	Qty  *int    `json:"qty" validate:"omitempty,min=1"`
	Note *string `json:"note"`
}
