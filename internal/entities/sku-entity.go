package entities

// SKU — номенклатурная позиция (деталь/материал), в которую разворачивается КП.
type SKU struct {
	ID         int     `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Active     bool    `json:"active"`
	VersionTag *string `json:"version_tag"`
}
