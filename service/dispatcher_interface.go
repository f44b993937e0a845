package service

import (
	"context"

	"storefront-home/models"
)

// SectionDispatcherInterface defines the contract for section hydration
type SectionDispatcherInterface interface {
	Dispatch(ctx context.Context, sections []models.LayoutSection, brandID string, locationID *string, theme models.ThemeColors) []*models.RenderableSection
	DispatchOne(ctx context.Context, section models.LayoutSection, brandID string, locationID *string, theme models.ThemeColors) *models.RenderableSection
}
