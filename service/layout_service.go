package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront-home/models"
	"storefront-home/repository"
)

// LayoutService handles the layout editor: drafts, publishing and the catalog selectors
type LayoutService struct {
	stores  repository.StoreRepositoryInterface
	catalog repository.CatalogRepositoryInterface
	log     logrus.FieldLogger
}

// NewLayoutService creates a new LayoutService
func NewLayoutService(stores repository.StoreRepositoryInterface, catalog repository.CatalogRepositoryInterface, log logrus.FieldLogger) *LayoutService {
	return &LayoutService{stores: stores, catalog: catalog, log: log}
}

// Ensure LayoutService implements LayoutServiceInterface
var _ LayoutServiceInterface = (*LayoutService)(nil)

// GetLayout returns the draft and published layouts of a store
func (s *LayoutService) GetLayout(ctx context.Context, storeID string) (*models.StoreLayoutData, error) {
	data, err := s.stores.GetLayoutData(ctx, storeID)
	if err != nil {
		return nil, storeError(err)
	}
	return data, nil
}

// SaveDraft stores a layout as the store's draft. Drafts are not validated.
func (s *LayoutService) SaveDraft(ctx context.Context, storeID string, layout models.StoreLayout) (models.StoreLayout, error) {
	if layout == nil {
		layout = models.StoreLayout{}
	}
	saved, err := s.stores.UpdateLayoutDraft(ctx, storeID, layout)
	if err != nil {
		return nil, storeError(err)
	}
	s.log.WithFields(logrus.Fields{"store_id": storeID, "sections": len(saved)}).Info("💾 Layout draft saved")
	return saved, nil
}

// Publish validates a layout and makes it the store's published layout.
// The validation errors are returned along with ErrInvalidLayout when it fails.
func (s *LayoutService) Publish(ctx context.Context, storeID string, layout models.StoreLayout) ([]models.ValidationError, error) {
	if len(layout) == 0 {
		return nil, ErrEmptyLayout
	}
	if errs := ValidateLayout(layout); len(errs) > 0 {
		s.log.WithFields(logrus.Fields{"store_id": storeID, "errors": len(errs)}).Warn("⚠️ Refusing to publish invalid layout")
		return errs, ErrInvalidLayout
	}
	if err := s.stores.PublishLayout(ctx, storeID, layout); err != nil {
		return nil, storeError(err)
	}
	s.log.WithFields(logrus.Fields{"store_id": storeID, "sections": len(layout)}).Info("🎉 Layout published")
	return nil, nil
}

// Validate runs the publish checks without saving anything
func (s *LayoutService) Validate(layout models.StoreLayout) []models.ValidationError {
	return ValidateLayout(layout)
}

// Categories lists the categories of a store for the editor selectors
func (s *LayoutService) Categories(ctx context.Context, storeID string) ([]models.CategoryInfo, error) {
	if _, err := s.stores.GetStore(ctx, storeID); err != nil {
		return nil, storeError(err)
	}
	return s.catalog.GetCategories(ctx, storeID)
}

// Tags lists the featured tags of a store for the editor selectors
func (s *LayoutService) Tags(ctx context.Context, storeID string) ([]models.TagInfo, error) {
	if _, err := s.stores.GetStore(ctx, storeID); err != nil {
		return nil, storeError(err)
	}
	return s.catalog.GetFeaturedTags(ctx, storeID)
}

func storeError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrStoreNotFound
	}
	return fmt.Errorf("failed to access store: %w", err)
}
