package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SourceType is the discriminant of a ContentSource
type SourceType string

const (
	SourceTypeBaseCategory      SourceType = "BASE_CATEGORY"
	SourceTypeTagGroupNav       SourceType = "TAG_GROUP_NAV"
	SourceTypeProductCollection SourceType = "PRODUCT_COLLECTION"
)

// AllSourceTypes lists every known content source variant
var AllSourceTypes = []SourceType{
	SourceTypeBaseCategory,
	SourceTypeTagGroupNav,
	SourceTypeProductCollection,
}

// CollectionMode is the sub-strategy of a product collection
type CollectionMode string

const (
	CollectionModeManualSelection CollectionMode = "MANUAL_SELECTION"
	CollectionModeByCriteria      CollectionMode = "BY_CRITERIA"
	CollectionModeFromTag         CollectionMode = "FROM_TAG"
	CollectionModeFromCategory    CollectionMode = "FROM_CATEGORY"
)

// AllCollectionModes lists every known collection mode
var AllCollectionModes = []CollectionMode{
	CollectionModeManualSelection,
	CollectionModeByCriteria,
	CollectionModeFromTag,
	CollectionModeFromCategory,
}

// CriteriaType is the rule used by BY_CRITERIA collections
type CriteriaType string

const (
	CriteriaNewArrivals CriteriaType = "NEW_ARRIVALS"
	CriteriaDiscounted  CriteriaType = "DISCOUNTED"
	CriteriaBestSellers CriteriaType = "BEST_SELLERS"
	CriteriaTrendingNow CriteriaType = "TRENDING_NOW"
)

// AllCriteriaTypes lists every known criteria type
var AllCriteriaTypes = []CriteriaType{
	CriteriaNewArrivals,
	CriteriaDiscounted,
	CriteriaBestSellers,
	CriteriaTrendingNow,
}

// ContentSource describes what data a section displays.
// Implemented by CategorySource, TagGroupSource, ProductCollectionSource and UnknownSource.
type ContentSource interface {
	SourceType() SourceType
}

// CategorySource selects categories by id
type CategorySource struct {
	IDs []string `json:"ids"`
}

func (CategorySource) SourceType() SourceType { return SourceTypeBaseCategory }

// MarshalJSON adds the type discriminant
func (s CategorySource) MarshalJSON() ([]byte, error) {
	type alias CategorySource
	return json.Marshal(struct {
		Type SourceType `json:"type"`
		alias
	}{SourceTypeBaseCategory, alias(s)})
}

// TagGroupSource selects featured tags by id
type TagGroupSource struct {
	IDs []string `json:"ids"`
}

func (TagGroupSource) SourceType() SourceType { return SourceTypeTagGroupNav }

// MarshalJSON adds the type discriminant
func (s TagGroupSource) MarshalJSON() ([]byte, error) {
	type alias TagGroupSource
	return json.Marshal(struct {
		Type SourceType `json:"type"`
		alias
	}{SourceTypeTagGroupNav, alias(s)})
}

// ProductCollectionSource selects products manually, by rule, or by category/tag back-reference
type ProductCollectionSource struct {
	CollectionMode             CollectionMode      `json:"collection_mode"`
	ProductIDs                 []string            `json:"product_ids,omitempty"`
	LegacyIDs                  []string            `json:"ids,omitempty"` // older layouts stored manual picks here
	ManualSelectionsByLocation map[string][]string `json:"manualSelectionsByLocation,omitempty"`
	CriteriaType               CriteriaType        `json:"criteria_type,omitempty"`
	CriteriaTimeframeDays      int                 `json:"criteria_timeframe_days,omitempty"`
	CriteriaLimit              int                 `json:"criteria_limit,omitempty"`
	CriteriaLocationID         *string             `json:"criteria_location_id,omitempty"`
	SourceTagID                string              `json:"source_tag_id,omitempty"`
	SourceCategoryID           string              `json:"source_category_id,omitempty"`
}

func (ProductCollectionSource) SourceType() SourceType { return SourceTypeProductCollection }

// MarshalJSON adds the type discriminant
func (s ProductCollectionSource) MarshalJSON() ([]byte, error) {
	type alias ProductCollectionSource
	return json.Marshal(struct {
		Type SourceType `json:"type"`
		alias
	}{SourceTypeProductCollection, alias(s)})
}

// UnmarshalJSON decodes the criteria numbers leniently: a number is truncated, a numeric
// string is parsed, and anything else reads as 0 so the resolver falls back to its defaults.
func (s *ProductCollectionSource) UnmarshalJSON(data []byte) error {
	type alias ProductCollectionSource
	raw := struct {
		*alias
		CriteriaTimeframeDays interface{} `json:"criteria_timeframe_days"`
		CriteriaLimit         interface{} `json:"criteria_limit"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.CriteriaTimeframeDays = lenientInt(raw.CriteriaTimeframeDays)
	s.CriteriaLimit = lenientInt(raw.CriteriaLimit)
	return nil
}

func lenientInt(v interface{}) int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// UnknownSource keeps a source whose type is not recognized so it survives a round trip
type UnknownSource struct {
	Type string
	Raw  json.RawMessage
}

func (s UnknownSource) SourceType() SourceType { return SourceType(s.Type) }

// MarshalJSON returns the original payload
func (s UnknownSource) MarshalJSON() ([]byte, error) {
	if len(s.Raw) == 0 {
		return json.Marshal(map[string]string{"type": s.Type})
	}
	return s.Raw, nil
}

// DecodeContentSource decodes a tagged content source. A null or empty payload returns nil.
func DecodeContentSource(data json.RawMessage) (ContentSource, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("invalid content source: %w", err)
	}

	switch SourceType(head.Type) {
	case SourceTypeBaseCategory:
		var s CategorySource
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("invalid %s source: %w", head.Type, err)
		}
		return s, nil
	case SourceTypeTagGroupNav:
		var s TagGroupSource
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("invalid %s source: %w", head.Type, err)
		}
		return s, nil
	case SourceTypeProductCollection:
		var s ProductCollectionSource
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("invalid %s source: %w", head.Type, err)
		}
		return s, nil
	default:
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return UnknownSource{Type: head.Type, Raw: raw}, nil
	}
}

// ExpectedSourceType returns the source type a section type must carry.
// ok is false for BANNER_MEDIA, which carries no source, and for unknown section types.
func ExpectedSourceType(t SectionType) (SourceType, bool) {
	switch t {
	case SectionTypeBaseCategory:
		return SourceTypeBaseCategory, true
	case SectionTypeTagGroupNav:
		return SourceTypeTagGroupNav, true
	case SectionTypeProductCollection:
		return SourceTypeProductCollection, true
	}
	return "", false
}

// SourceMatchesType reports whether a section's source agrees with its section type
func SourceMatchesType(t SectionType, source ContentSource) bool {
	if t == SectionTypeBannerMedia {
		return source == nil
	}
	expected, ok := ExpectedSourceType(t)
	if !ok || source == nil {
		return false
	}
	return source.SourceType() == expected
}
