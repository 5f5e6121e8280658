package entities

// Technique — модель техники, по которой строится КП.
type Technique struct {
	ID           int     `json:"id"`
	Manufacturer string  `json:"manufacturer"`
	Model        string  `json:"model"`
	Series       *string `json:"series"`
	Meta         *string `json:"meta"`
	Active       bool    `json:"active"`
}

// EngineOption — вариант двигателя конкретной техники.
type EngineOption struct {
	ID          int    `json:"id"`
	TechniqueID int    `json:"technique_id"`
	EngineName  string `json:"engine_name"`
	YearFrom    *int   `json:"year_from"`
	YearTo      *int   `json:"year_to"`
	Source      string `json:"source"`
	Active      bool   `json:"active"`
}

// TechniqueAlias — альтернативное написание названия техники для поиска.
type TechniqueAlias struct {
	ID          int     `json:"id"`
	AliasText   string  `json:"alias_text"`
	TechniqueID int     `json:"technique_id"`
	Note        *string `json:"note"`
}
