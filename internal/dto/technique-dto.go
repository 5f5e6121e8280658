package dto

type CreateTechniqueDTO struct {
	Manufacturer string  `json:"manufacturer" validate:"required,max=255"`
	Model        string  `json:"model" validate:"required,max=255"`
	Series       *string `json:"series" validate:"omitempty,max=255"`
	Meta         *string `json:"meta"`
	Active       *bool   `json:"active"`
}

type UpdateTechniqueDTO struct {
	Manufacturer *string `json:"manufacturer" validate:"omitempty,max=255"`
	Model        *string `json:"model" validate:"omitempty,max=255"`
	Series       *string `json:"series" validate:"omitempty,max=255"`
	Meta         *string `json:"meta"`
	Active       *bool   `json:"active"`
}

type TechniqueDTO struct {
	ID           int     `json:"id"`
	Manufacturer string  `json:"manufacturer"`
	Model        string  `json:"model"`
	Series       *string `json:"series"`
	Meta         *string `json:"meta"`
	Active       bool    `json:"active"`
}

type CreateEngineOptionDTO struct {
	EngineName string `json:"engine_name" validate:"required,max=255"`
	YearFrom   *int   `json:"year_from" validate:"omitempty,min=1900,max=2100"`
	YearTo     *int   `json:"year_to" validate:"omitempty,min=1900,max=2100"`
	Source     string `json:"source" validate:"omitempty,max=50"`
	Active     *bool  `json:"active"`
}

type EngineOptionDTO struct {
	ID          int    `json:"id"`
	TechniqueID int    `json:"technique_id"`
	EngineName  string `json:"engine_name"`
	YearFrom    *int   `json:"year_from"`
	YearTo      *int   `json:"year_to"`
	Source      string `json:"source"`
	Active      bool   `json:"active"`
}

type CreateTechniqueAliasDTO struct {
	AliasText   string  `json:"alias_text" validate:"required,max=255"`
	TechniqueID int     `json:"technique_id" validate:"required,min=1"`
	Note        *string `json:"note"`
}

type TechniqueAliasDTO struct {
	ID          int     `json:"id"`
	AliasText   string  `json:"alias_text"`
	TechniqueID int     `json:"technique_id"`
	Note        *string `json:"note"`
}
