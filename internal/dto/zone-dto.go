package dto

type CreateZoneDTO struct {
	Code    string `json:"code" validate:"required,max=50"`
	TitleRu string `json:"title_ru" validate:"required,max=255"`
	Active  *bool  `json:"active"`
}

type UpdateZoneDTO struct {
	Code    *string `json:"code" validate:"omitempty,max=50"`
	TitleRu *string `json:"title_ru" validate:"omitempty,max=255"`
	Active  *bool   `json:"active"`
}

type ZoneDTO struct {
	ID      int    `json:"id"`
	Code    string `json:"code"`
	TitleRu string `json:"title_ru"`
	Active  bool   `json:"active"`
}
