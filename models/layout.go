package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionType identifies what kind of block a layout section renders
type SectionType string

const (
	SectionTypeBannerMedia       SectionType = "BANNER_MEDIA"
	SectionTypeBaseCategory      SectionType = "BASE_CATEGORY"
	SectionTypeTagGroupNav       SectionType = "TAG_GROUP_NAV"
	SectionTypeProductCollection SectionType = "PRODUCT_COLLECTION"
)

// LayoutStyle is the display style of a section
type LayoutStyle string

const (
	LayoutStyleIconRow  LayoutStyle = "ICON_ROW"
	LayoutStyleCarousel LayoutStyle = "CAROUSEL"
	LayoutStyleGrid     LayoutStyle = "GRID"
	LayoutStyleBanner   LayoutStyle = "BANNER"
)

// ItemShape is the card/icon shape used by a section
type ItemShape string

const (
	ItemShapeSquare  ItemShape = "SQUARE"
	ItemShapeCircle  ItemShape = "CIRCLE"
	ItemShapeRounded ItemShape = "ROUNDED"
)

// Banner width and height modes
const (
	BannerWidthFull    = "full"
	BannerWidthHalf    = "half"
	BannerHeightSmall  = "small"
	BannerHeightMedium = "medium"
	BannerHeightLarge  = "large"
)

// ClickActionType is the kind of navigation a click triggers
type ClickActionType string

const (
	ClickActionLink          ClickActionType = "LINK"
	ClickActionCategoryPage  ClickActionType = "CATEGORY_PAGE"
	ClickActionProductList   ClickActionType = "PRODUCT_LIST"
	ClickActionTagPage       ClickActionType = "TAG_PAGE"
	ClickActionProductDetail ClickActionType = "PRODUCT_DETAIL"
	ClickActionSearch        ClickActionType = "SEARCH"
)

// ClickAction is a declarative navigation intent. The engine passes it through untouched.
type ClickAction struct {
	Type   ClickActionType `json:"type"`
	Target string          `json:"target"`
}

// LayoutStyleConfig holds the style settings of a section
type LayoutStyleConfig struct {
	Style            LayoutStyle `json:"style"`
	Shape            ItemShape   `json:"shape,omitempty"`
	Size             string      `json:"size,omitempty"`
	ItemDimensions   string      `json:"item_dimensions,omitempty"`
	BackgroundColor  string      `json:"backgroundColor,omitempty"`
	BannerWidthMode  string      `json:"banner_width_mode,omitempty"`
	BannerHeightMode string      `json:"banner_height_mode,omitempty"`
}

// LayoutSection represents a single section of a store's home layout.
// LocationID nil means the section applies to every location.
type LayoutSection struct {
	SectionID               string
	Title                   string
	SectionType             SectionType
	DisplayOrder            float64
	LocationID              *string
	Layout                  LayoutStyleConfig
	Source                  ContentSource
	CustomImageURL          string
	CustomImageURLSecondary string
	LinkBehavior            *ClickAction
	LinkBehaviorSecondary   *ClickAction
}

// layoutSectionJSON is the stored (jsonb) shape of a LayoutSection
type layoutSectionJSON struct {
	SectionID               string            `json:"section_id"`
	Title                   string            `json:"title"`
	SectionType             SectionType       `json:"section_type"`
	DisplayOrder            interface{}       `json:"display_order"`
	LocationID              *string           `json:"location_id"`
	Layout                  LayoutStyleConfig `json:"layout"`
	Source                  json.RawMessage   `json:"source"`
	CustomImageURL          *string           `json:"custom_image_url,omitempty"`
	CustomImageURLSecondary *string           `json:"custom_image_url_secondary,omitempty"`
	LinkBehavior            *ClickAction      `json:"link_behavior,omitempty"`
	LinkBehaviorSecondary   *ClickAction      `json:"link_behavior_secondary,omitempty"`
}

// UnmarshalJSON decodes a stored section. A missing or non-numeric display_order becomes 0,
// and an empty location_id is treated as global.
func (s *LayoutSection) UnmarshalJSON(data []byte) error {
	var raw layoutSectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	source, err := DecodeContentSource(raw.Source)
	if err != nil {
		return fmt.Errorf("section %s: %w", raw.SectionID, err)
	}

	order := 0.0
	if f, ok := raw.DisplayOrder.(float64); ok {
		order = f
	}

	locationID := raw.LocationID
	if locationID != nil && strings.TrimSpace(*locationID) == "" {
		locationID = nil
	}

	*s = LayoutSection{
		SectionID:             raw.SectionID,
		Title:                 raw.Title,
		SectionType:           raw.SectionType,
		DisplayOrder:          order,
		LocationID:            locationID,
		Layout:                raw.Layout,
		Source:                source,
		LinkBehavior:          raw.LinkBehavior,
		LinkBehaviorSecondary: raw.LinkBehaviorSecondary,
	}
	if raw.CustomImageURL != nil {
		s.CustomImageURL = *raw.CustomImageURL
	}
	if raw.CustomImageURLSecondary != nil {
		s.CustomImageURLSecondary = *raw.CustomImageURLSecondary
	}
	return nil
}

// MarshalJSON encodes a section back into its stored shape
func (s LayoutSection) MarshalJSON() ([]byte, error) {
	var source json.RawMessage
	if s.Source != nil {
		encoded, err := json.Marshal(s.Source)
		if err != nil {
			return nil, fmt.Errorf("section %s: failed to encode source: %w", s.SectionID, err)
		}
		source = encoded
	}

	raw := layoutSectionJSON{
		SectionID:             s.SectionID,
		Title:                 s.Title,
		SectionType:           s.SectionType,
		DisplayOrder:          s.DisplayOrder,
		LocationID:            s.LocationID,
		Layout:                s.Layout,
		Source:                source,
		LinkBehavior:          s.LinkBehavior,
		LinkBehaviorSecondary: s.LinkBehaviorSecondary,
	}
	if s.CustomImageURL != "" {
		raw.CustomImageURL = &s.CustomImageURL
	}
	if s.CustomImageURLSecondary != "" {
		raw.CustomImageURLSecondary = &s.CustomImageURLSecondary
	}
	return json.Marshal(raw)
}

// StoreLayout is the full layout document of a store
type StoreLayout []LayoutSection

// DecodeLayout decodes a stored layout document section by section.
// Sections that fail to decode are dropped and reported in the returned errors;
// a document that is null or not an array yields an empty layout.
func DecodeLayout(data []byte) (StoreLayout, []error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return StoreLayout{}, nil
	}

	var rawSections []json.RawMessage
	if err := json.Unmarshal(data, &rawSections); err != nil {
		return StoreLayout{}, []error{fmt.Errorf("layout is not an array: %w", err)}
	}

	layout := make(StoreLayout, 0, len(rawSections))
	var errs []error
	for i, rawSection := range rawSections {
		var section LayoutSection
		if err := json.Unmarshal(rawSection, &section); err != nil {
			errs = append(errs, fmt.Errorf("section at index %d: %w", i, err))
			continue
		}
		layout = append(layout, section)
	}
	return layout, errs
}
