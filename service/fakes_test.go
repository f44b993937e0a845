package service

import (
	"context"
	"encoding/json"
	"sync"

	"storefront-home/models"
	"storefront-home/repository"
)

// catalogCall records one call made to fakeCatalog
type catalogCall struct {
	Method string
	Entity repository.Entity
	IDs    []string
	Preds  []repository.Predicate
	Order  repository.Order
	Limit  int
}

// fakeCatalog is an in-memory CatalogQueryInterface. rows returns the rows for a call.
type fakeCatalog struct {
	mu    sync.Mutex
	calls []catalogCall
	rows  func(call catalogCall) ([]json.RawMessage, error)
}

func (f *fakeCatalog) record(call catalogCall) ([]json.RawMessage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	if f.rows == nil {
		return []json.RawMessage{}, nil
	}
	return f.rows(call)
}

func (f *fakeCatalog) FetchByID(ctx context.Context, entity repository.Entity, ids []string, preds ...repository.Predicate) ([]json.RawMessage, error) {
	return f.record(catalogCall{Method: "FetchByID", Entity: entity, IDs: ids, Preds: preds})
}

func (f *fakeCatalog) FetchFiltered(ctx context.Context, entity repository.Entity, preds []repository.Predicate, order repository.Order, limit int) ([]json.RawMessage, error) {
	return f.record(catalogCall{Method: "FetchFiltered", Entity: entity, Preds: preds, Order: order, Limit: limit})
}

func (f *fakeCatalog) FetchOne(ctx context.Context, entity repository.Entity, preds []repository.Predicate) (json.RawMessage, error) {
	rows, err := f.record(catalogCall{Method: "FetchOne", Entity: entity, Preds: preds, Limit: 1})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (f *fakeCatalog) Calls() []catalogCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalogCall(nil), f.calls...)
}

func staticRows(rows ...string) func(catalogCall) ([]json.RawMessage, error) {
	return func(catalogCall) ([]json.RawMessage, error) {
		out := make([]json.RawMessage, len(rows))
		for i, r := range rows {
			out[i] = json.RawMessage(r)
		}
		return out, nil
	}
}

var _ repository.CatalogQueryInterface = (*fakeCatalog)(nil)

// fakeContent is a ContentResolverInterface driven by a function
type fakeContent struct {
	mu      sync.Mutex
	calls   int
	resolve func(ctx context.Context, source models.ContentSource, rc ResolveContext) (models.Content, error)
	search  func(brandID string, q SearchQuery) ([]models.ProductInfo, error)
}

func (f *fakeContent) Resolve(ctx context.Context, source models.ContentSource, rc ResolveContext) (models.Content, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.resolve == nil {
		return models.Content{}, nil
	}
	return f.resolve(ctx, source, rc)
}

func (f *fakeContent) SearchProducts(ctx context.Context, brandID string, q SearchQuery) ([]models.ProductInfo, error) {
	if f.search == nil {
		return []models.ProductInfo{}, nil
	}
	return f.search(brandID, q)
}

func (f *fakeContent) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var _ ContentResolverInterface = (*fakeContent)(nil)

// fakeStores is an in-memory StoreRepositoryInterface
type fakeStores struct {
	mu          sync.Mutex
	stores      map[string]models.StoreInfo
	locations   map[string]models.LocationInfo
	drafts      map[string]models.StoreLayout
	published   map[string]models.StoreLayout
	settings    map[string]*models.StoreSettings
	app         *models.AppSettings
	settingsErr error
	layoutErr   error
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		stores:    map[string]models.StoreInfo{},
		locations: map[string]models.LocationInfo{},
		drafts:    map[string]models.StoreLayout{},
		published: map[string]models.StoreLayout{},
		settings:  map[string]*models.StoreSettings{},
	}
}

func (f *fakeStores) GetStores(ctx context.Context) ([]models.StoreInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.StoreInfo{}
	for _, s := range f.stores {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStores) GetStore(ctx context.Context, storeID string) (*models.StoreInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stores[storeID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeStores) GetLocation(ctx context.Context, locationID string) (*models.LocationInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.locations[locationID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (f *fakeStores) GetLocationsForStore(ctx context.Context, storeID string) ([]models.LocationInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.LocationInfo{}
	for _, l := range f.locations {
		if l.StoreID == storeID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStores) GetLayoutData(ctx context.Context, storeID string) (*models.StoreLayoutData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stores[storeID]; !ok {
		return nil, repository.ErrNotFound
	}
	draft := f.drafts[storeID]
	if draft == nil {
		draft = models.StoreLayout{}
	}
	return &models.StoreLayoutData{LayoutDraft: draft, LayoutPublished: f.published[storeID]}, nil
}

func (f *fakeStores) GetPublishedLayout(ctx context.Context, storeID string) (models.StoreLayout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.layoutErr != nil {
		return nil, f.layoutErr
	}
	if _, ok := f.stores[storeID]; !ok {
		return nil, repository.ErrNotFound
	}
	if f.published[storeID] == nil {
		return models.StoreLayout{}, nil
	}
	return f.published[storeID], nil
}

func (f *fakeStores) UpdateLayoutDraft(ctx context.Context, storeID string, layout models.StoreLayout) (models.StoreLayout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stores[storeID]; !ok {
		return nil, repository.ErrNotFound
	}
	f.drafts[storeID] = layout
	return layout, nil
}

func (f *fakeStores) PublishLayout(ctx context.Context, storeID string, layout models.StoreLayout) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stores[storeID]; !ok {
		return repository.ErrNotFound
	}
	f.published[storeID] = layout
	return nil
}

func (f *fakeStores) GetStoreSettings(ctx context.Context, storeID string) (*models.StoreSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settingsErr != nil {
		return nil, f.settingsErr
	}
	return f.settings[storeID], nil
}

func (f *fakeStores) GetAppSettings(ctx context.Context) (*models.AppSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.app, nil
}

var _ repository.StoreRepositoryInterface = (*fakeStores)(nil)

// fakeCatalogRepo serves fixed selector lists
type fakeCatalogRepo struct {
	categories []models.CategoryInfo
	tags       []models.TagInfo
}

func (f *fakeCatalogRepo) GetCategories(ctx context.Context, storeID string) ([]models.CategoryInfo, error) {
	return f.categories, nil
}

func (f *fakeCatalogRepo) GetFeaturedTags(ctx context.Context, storeID string) ([]models.TagInfo, error) {
	return f.tags, nil
}

var _ repository.CatalogRepositoryInterface = (*fakeCatalogRepo)(nil)
