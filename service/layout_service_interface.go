package service

import (
	"context"

	"storefront-home/models"
)

// LayoutServiceInterface defines the contract for the layout editor operations
type LayoutServiceInterface interface {
	GetLayout(ctx context.Context, storeID string) (*models.StoreLayoutData, error)
	SaveDraft(ctx context.Context, storeID string, layout models.StoreLayout) (models.StoreLayout, error)
	Publish(ctx context.Context, storeID string, layout models.StoreLayout) ([]models.ValidationError, error)
	Validate(layout models.StoreLayout) []models.ValidationError
	Categories(ctx context.Context, storeID string) ([]models.CategoryInfo, error)
	Tags(ctx context.Context, storeID string) ([]models.TagInfo, error)
}
