package controller

import (
	"context"
	"errors"

	"storefront-home/models"
	"storefront-home/service"
)

type fakeHome struct {
	lastRequest service.HomeRequest
	lastSearch  service.SearchQuery
	lastStoreID string
	resolveErr  error
}

func (f *fakeHome) Resolve(ctx context.Context, req service.HomeRequest) (*models.HomePage, error) {
	f.lastRequest = req
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return &models.HomePage{
		LocationID: req.LocationID,
		StoreName:  "Downtown",
		Theme:      service.DefaultTheme(),
		Sections:   []*models.RenderableSection{{SectionID: "s1", Status: models.SectionStatusReady}},
	}, nil
}

func (f *fakeHome) Theme(ctx context.Context, locationID string) (models.ThemeColors, error) {
	return service.DefaultTheme(), nil
}

func (f *fakeHome) ResolveSection(ctx context.Context, locationID, sectionID string) (*models.RenderableSection, error) {
	if sectionID != "s1" {
		return nil, service.ErrSectionNotFound
	}
	return &models.RenderableSection{SectionID: sectionID, Status: models.SectionStatusReady}, nil
}

func (f *fakeHome) Stores(ctx context.Context) ([]models.StoreInfo, error) {
	return nil, errors.New("connection refused")
}

func (f *fakeHome) Locations(ctx context.Context, storeID string) ([]models.LocationInfo, error) {
	if storeID != "b1" {
		return nil, service.ErrStoreNotFound
	}
	return []models.LocationInfo{{ID: "L1", Name: "Downtown", StoreID: "b1"}}, nil
}

func (f *fakeHome) Search(ctx context.Context, storeID string, q service.SearchQuery) ([]models.ProductInfo, error) {
	f.lastStoreID = storeID
	f.lastSearch = q
	return []models.ProductInfo{{ID: "p1", Name: "Mug"}}, nil
}

var _ service.HomeServiceInterface = (*fakeHome)(nil)

type fakeLayouts struct {
	saved     models.StoreLayout
	published models.StoreLayout
}

func (f *fakeLayouts) GetLayout(ctx context.Context, storeID string) (*models.StoreLayoutData, error) {
	if storeID != "b1" {
		return nil, service.ErrStoreNotFound
	}
	return &models.StoreLayoutData{LayoutDraft: models.StoreLayout{}}, nil
}

func (f *fakeLayouts) SaveDraft(ctx context.Context, storeID string, layout models.StoreLayout) (models.StoreLayout, error) {
	f.saved = layout
	return layout, nil
}

func (f *fakeLayouts) Publish(ctx context.Context, storeID string, layout models.StoreLayout) ([]models.ValidationError, error) {
	if len(layout) == 0 {
		return nil, service.ErrEmptyLayout
	}
	if errs := service.ValidateLayout(layout); len(errs) > 0 {
		return errs, service.ErrInvalidLayout
	}
	f.published = layout
	return nil, nil
}

func (f *fakeLayouts) Validate(layout models.StoreLayout) []models.ValidationError {
	return service.ValidateLayout(layout)
}

func (f *fakeLayouts) Categories(ctx context.Context, storeID string) ([]models.CategoryInfo, error) {
	return []models.CategoryInfo{{ID: "c1", Name: "Bakery"}}, nil
}

func (f *fakeLayouts) Tags(ctx context.Context, storeID string) ([]models.TagInfo, error) {
	return []models.TagInfo{{ID: "t1", Name: "Vegan"}}, nil
}

var _ service.LayoutServiceInterface = (*fakeLayouts)(nil)

type fakeImages struct {
	err error
}

func (f *fakeImages) Optimized(ctx context.Context, src, size string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte{0xFF, 0xD8, 0xFF}, nil
}

type fakePreview struct {
	screenshots int
}

func (f *fakePreview) RenderHTML(page *models.HomePage) (string, error) {
	return "<html><body>" + page.StoreName + "</body></html>", nil
}

func (f *fakePreview) Screenshot(ctx context.Context, html string) ([]byte, error) {
	f.screenshots++
	return []byte("\x89PNG"), nil
}
