package service

import (
	"fmt"
	"strings"

	"storefront-home/models"
)

// ValidateLayout checks a layout before it is published and returns every problem found.
// An empty result means the layout is publishable.
func ValidateLayout(layout models.StoreLayout) []models.ValidationError {
	errs := []models.ValidationError{}
	seen := make(map[string]bool, len(layout))

	for i, section := range layout {
		id := strings.TrimSpace(section.SectionID)
		ref := id
		if ref == "" {
			ref = fmt.Sprintf("#%d", i)
			errs = append(errs, validationError(ref, "section_id", "section_id is required"))
		} else if seen[id] {
			errs = append(errs, validationError(ref, "section_id", "duplicate section_id"))
		}
		seen[id] = true

		errs = append(errs, validateSection(ref, section)...)
	}
	return errs
}

func validateSection(ref string, section models.LayoutSection) []models.ValidationError {
	var errs []models.ValidationError

	if _, ok := eligibleStyles[section.SectionType]; !ok {
		return append(errs, validationError(ref, "section_type", fmt.Sprintf("unknown section type %q", section.SectionType)))
	}

	if section.SectionType != models.SectionTypeBannerMedia && strings.TrimSpace(section.Title) == "" {
		errs = append(errs, validationError(ref, "title", "title is required"))
	}
	if !StyleEligible(section.SectionType, section.Layout.Style) {
		errs = append(errs, validationError(ref, "layout.style",
			fmt.Sprintf("style %q cannot render %s", section.Layout.Style, section.SectionType)))
	}
	if !models.SourceMatchesType(section.SectionType, section.Source) {
		if section.SectionType == models.SectionTypeBannerMedia {
			errs = append(errs, validationError(ref, "source", "banner sections carry no source"))
		} else {
			errs = append(errs, validationError(ref, "source", fmt.Sprintf("source must be %s", section.SectionType)))
		}
		return errs
	}

	switch source := section.Source.(type) {
	case nil:
		if strings.TrimSpace(section.CustomImageURL) == "" {
			errs = append(errs, validationError(ref, "custom_image_url", "banner image is required"))
		}
	case models.CategorySource:
		if len(nonBlank(source.IDs)) == 0 {
			errs = append(errs, validationError(ref, "source.ids", "select at least one category"))
		}
	case models.TagGroupSource:
		if len(nonBlank(source.IDs)) == 0 {
			errs = append(errs, validationError(ref, "source.ids", "select at least one tag"))
		}
	case models.ProductCollectionSource:
		errs = append(errs, validateCollection(ref, source)...)
	}
	return errs
}

func validateCollection(ref string, source models.ProductCollectionSource) []models.ValidationError {
	switch source.CollectionMode {
	case models.CollectionModeManualSelection:
		if len(nonBlank(source.ProductIDs)) > 0 || len(nonBlank(source.LegacyIDs)) > 0 {
			return nil
		}
		for _, ids := range source.ManualSelectionsByLocation {
			if len(nonBlank(ids)) > 0 {
				return nil
			}
		}
		return []models.ValidationError{validationError(ref, "source.product_ids", "select at least one product")}
	case models.CollectionModeByCriteria:
		for _, c := range models.AllCriteriaTypes {
			if source.CriteriaType == c {
				return nil
			}
		}
		return []models.ValidationError{validationError(ref, "source.criteria_type",
			fmt.Sprintf("unknown criteria type %q", source.CriteriaType))}
	case models.CollectionModeFromTag:
		if strings.TrimSpace(source.SourceTagID) == "" {
			return []models.ValidationError{validationError(ref, "source.source_tag_id", "select a tag")}
		}
		return nil
	case models.CollectionModeFromCategory:
		if strings.TrimSpace(source.SourceCategoryID) == "" {
			return []models.ValidationError{validationError(ref, "source.source_category_id", "select a category")}
		}
		return nil
	}
	return []models.ValidationError{validationError(ref, "source.collection_mode",
		fmt.Sprintf("unknown collection mode %q", source.CollectionMode))}
}

func validationError(sectionID, field, message string) models.ValidationError {
	return models.ValidationError{SectionID: sectionID, Field: field, Message: message}
}

func nonBlank(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			out = append(out, id)
		}
	}
	return out
}
