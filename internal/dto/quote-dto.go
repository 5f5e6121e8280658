package dto

// QuoteItemDTO — позиция техники в запросе на создание/редактирование КП.
// Авторитетен либо engine_option_id, либо engine_text — выбор одного
// очищает другой (контролируется фронтендом, сервер хранит как прислали).
type QuoteItemDTO struct {
	TechniqueID    int     `json:"technique_id" validate:"required,min=1"`
	EngineOptionID *int    `json:"engine_option_id" validate:"omitempty,min=1"`
	EngineText     *string `json:"engine_text" validate:"omitempty,max=255"`
	Year           *int    `json:"year" validate:"omitempty,min=1900,max=2100"`
	Qty            int     `json:"qty" validate:"required,min=1"`
	ParamsJSON     *string `json:"params_json"`
}

type CreateQuoteDTO struct {
	CustomerName *string        `json:"customer_name" validate:"omitempty,max=255"`
	Comment      *string        `json:"comment"`
	Zones        []string       `json:"zones"`
	Items        []QuoteItemDTO `json:"items" validate:"required,min=1,max=100,dive"`
}

type UpdateQuoteDTO struct {
	CustomerName *string        `json:"customer_name" validate:"omitempty,max=255"`
	Comment      *string        `json:"comment"`
	Zones        []string       `json:"zones"`
	Items        []QuoteItemDTO `json:"items" validate:"omitempty,min=1,max=100,dive"`
}

type QuoteItemOutDTO struct {
	ID             int     `json:"id"`
	TechniqueID    int     `json:"technique_id"`
	EngineOptionID *int    `json:"engine_option_id"`
	EngineText     *string `json:"engine_text"`
	Year           *int    `json:"year"`
	Qty            int     `json:"qty"`
	ParamsJSON     *string `json:"params_json"`
}

type QuoteDTO struct {
	ID           int               `json:"id"`
	CreatedBy    int               `json:"created_by"`
	Status       string            `json:"status"`
	CustomerName *string           `json:"customer_name"`
	Comment      *string           `json:"comment"`
	Zones        []string          `json:"zones"`
	Items        []QuoteItemOutDTO `json:"items"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

type QuoteListItemDTO struct {
	ID           int     `json:"id"`
	CreatedBy    int     `json:"created_by"`
	Status       string  `json:"status"`
	CustomerName *string `json:"customer_name"`
	ItemsCount   int     `json:"items_count"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// ChangeStatusDTO — запрос на переход статуса через таблицу переходов.
type ChangeStatusDTO struct {
	Status  string  `json:"status" validate:"required,quote_status"`
	Comment *string `json:"comment"`
}

type StatusOutDTO struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

// LineAvailabilityDTO — решение склада по одной строке спецификации.
type LineAvailabilityDTO struct {
	LineID              int     `json:"line_id" validate:"required,min=1"`
	AvailabilityStatus  string  `json:"availability_status" validate:"required,availability_status"`
	AvailabilityComment *string `json:"availability_comment"`
}

// WarehouseConfirmDTO — составная операция: запись наличия по строкам
// и переход warehouse_check -> confirmed|rework одной транзакцией.
type WarehouseConfirmDTO struct {
	Decision string                `json:"decision" validate:"required,oneof=confirmed rework"`
	Comment  *string               `json:"comment"`
	Lines    []LineAvailabilityDTO `json:"lines" validate:"omitempty,dive"`
}
