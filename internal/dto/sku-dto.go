package dto

type CreateSkuDTO struct {
	Code       string  `json:"code" validate:"required,max=100"`
	Name       string  `json:"name" validate:"required,max=255"`
	Unit       string  `json:"unit" validate:"required,max=50"`
	Active     *bool   `json:"active"`
	VersionTag *string `json:"version_tag" validate:"omitempty,max=50"`
}

type UpdateSkuDTO struct {
	Code       *string `json:"code" validate:"omitempty,max=100"`
	Name       *string `json:"name" validate:"omitempty,max=255"`
	Unit       *string `json:"unit" validate:"omitempty,max=50"`
	Active     *bool   `json:"active"`
	VersionTag *string `json:"version_tag" validate:"omitempty,max=50"`
}

type SkuDTO struct {
	ID         int     `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Active     bool    `json:"active"`
	VersionTag *string `json:"version_tag"`
}
