package service

import (
	"sort"

	"storefront-home/models"
)

// ResolveLayout returns the sections applicable to a location, ordered by display_order.
// Global sections (no location_id) always apply; located sections apply only to their location.
// Sections with equal display_order keep their stored order. The input is not modified.
func ResolveLayout(sections []models.LayoutSection, locationID *string) []models.LayoutSection {
	resolved := make([]models.LayoutSection, 0, len(sections))
	for _, s := range sections {
		if appliesTo(s, locationID) {
			resolved = append(resolved, s)
		}
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].DisplayOrder < resolved[j].DisplayOrder
	})
	return resolved
}

func appliesTo(s models.LayoutSection, locationID *string) bool {
	if s.LocationID == nil {
		return true
	}
	return locationID != nil && *s.LocationID == *locationID
}
