package models

import "encoding/json"

// StoreInfo represents a merchant (brand)
type StoreInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LocationInfo represents a physical selling point of a store
type LocationInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StoreID string `json:"store_id"`
}

// StoreLayoutData holds the draft and published layouts of a store.
// LayoutPublished is nil when the store never published.
type StoreLayoutData struct {
	LayoutDraft     StoreLayout `json:"layout_draft"`
	LayoutPublished StoreLayout `json:"layout_published"`
}

// StoreSettings holds store level settings such as the logo and theme.
// ThemeStore is either a JSON object or a JSON string containing an object.
type StoreSettings struct {
	StoreID    string          `json:"store_id"`
	LogoURL    string          `json:"logo_url,omitempty"`
	ThemeStore json.RawMessage `json:"theme_store,omitempty"`
}

// AppSettings holds application wide settings, including the fallback theme
type AppSettings struct {
	Theme json.RawMessage `json:"theme,omitempty"`
}

// ValidationError describes a problem found in a layout section
type ValidationError struct {
	SectionID string `json:"sectionId"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}
