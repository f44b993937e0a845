package service

import (
	"context"

	"storefront-home/models"
)

// PreviewServiceInterface defines the contract for home page previews
type PreviewServiceInterface interface {
	RenderHTML(page *models.HomePage) (string, error)
	Screenshot(ctx context.Context, html string) ([]byte, error)
}
