package models

// ThemeColors is the resolved color palette of a storefront. All five colors are always set.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	HeaderText string `json:"headerText"`
}
