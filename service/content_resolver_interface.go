package service

import (
	"context"

	"storefront-home/models"
)

// ContentResolverInterface defines the contract for content source resolution
type ContentResolverInterface interface {
	Resolve(ctx context.Context, source models.ContentSource, rc ResolveContext) (models.Content, error)
	SearchProducts(ctx context.Context, brandID string, q SearchQuery) ([]models.ProductInfo, error)
}
