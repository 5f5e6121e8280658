package entities

// QuoteResultLine — строка спецификации, полученная расчетом КП.
// Поля наличия заполняются на шаге проверки склада.
type QuoteResultLine struct {
	ID                  int     `json:"id"`
	QuoteID             int     `json:"quote_id"`
	SkuID               int     `json:"sku_id"`
	Qty                 int     `json:"qty"`
	Note                *string `json:"note"`
	AvailabilityStatus  *string `json:"availability_status"`
	AvailabilityComment *string `json:"availability_comment"`
}
