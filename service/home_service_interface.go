package service

import (
	"context"

	"storefront-home/models"
)

// HomeServiceInterface defines the contract for storefront home resolution
type HomeServiceInterface interface {
	Resolve(ctx context.Context, req HomeRequest) (*models.HomePage, error)
	Theme(ctx context.Context, locationID string) (models.ThemeColors, error)
	ResolveSection(ctx context.Context, locationID, sectionID string) (*models.RenderableSection, error)
	Stores(ctx context.Context) ([]models.StoreInfo, error)
	Locations(ctx context.Context, storeID string) ([]models.LocationInfo, error)
	Search(ctx context.Context, storeID string, q SearchQuery) ([]models.ProductInfo, error)
}
