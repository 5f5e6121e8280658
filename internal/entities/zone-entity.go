package entities

// Zone — защищаемая зона на технике (моторный отсек, топливный бак и т.д.).
type Zone struct {
	ID      int    `json:"id"`
	Code    string `json:"code"`
	TitleRu string `json:"title_ru"`
	Active  bool   `json:"active"`
}
