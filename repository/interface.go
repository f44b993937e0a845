package repository

import (
	"context"
	"encoding/json"
	"errors"

	"storefront-home/models"
)

// ErrNotFound is returned when a requested row doesn't exist
var ErrNotFound = errors.New("not found")

// Entity is a queryable catalog entity
type Entity string

const (
	EntityProducts     Entity = "products"
	EntityCategories   Entity = "categories"
	EntityFeaturedTags Entity = "featured_tags"
	EntityLocations    Entity = "locations"
)

// Op is a predicate operator
type Op string

const (
	OpEq         Op = "eq"
	OpIn         Op = "in"
	OpGte        Op = "gte"
	OpNotNull    Op = "not_null"
	OpContains   Op = "contains"
	OpTextSearch Op = "text_search"
)

// Predicate is a single filter on a column
type Predicate struct {
	Column string
	Op     Op
	Value  interface{}
}

// Eq builds a column = value predicate
func Eq(column string, value interface{}) Predicate {
	return Predicate{Column: column, Op: OpEq, Value: value}
}

// In builds a column IN (values) predicate
func In(column string, values []string) Predicate {
	return Predicate{Column: column, Op: OpIn, Value: values}
}

// Gte builds a column >= value predicate
func Gte(column string, value interface{}) Predicate {
	return Predicate{Column: column, Op: OpGte, Value: value}
}

// NotNull builds a column IS NOT NULL predicate
func NotNull(column string) Predicate {
	return Predicate{Column: column, Op: OpNotNull}
}

// Contains builds an array containment predicate (column @> values)
func Contains(column string, values []string) Predicate {
	return Predicate{Column: column, Op: OpContains, Value: values}
}

// TextSearch builds a full text match predicate on column
func TextSearch(column, term string) Predicate {
	return Predicate{Column: column, Op: OpTextSearch, Value: term}
}

// Order is a result ordering. The zero value means unordered.
type Order struct {
	Column     string
	Descending bool
}

// CatalogQueryInterface is the generic read capability over catalog entities.
// Rows come back as JSON objects keyed by column name.
type CatalogQueryInterface interface {
	FetchByID(ctx context.Context, entity Entity, ids []string, preds ...Predicate) ([]json.RawMessage, error)
	FetchFiltered(ctx context.Context, entity Entity, preds []Predicate, order Order, limit int) ([]json.RawMessage, error)
	FetchOne(ctx context.Context, entity Entity, preds []Predicate) (json.RawMessage, error)
}

// StoreRepositoryInterface defines the contract for store, location, layout and settings operations
type StoreRepositoryInterface interface {
	GetStores(ctx context.Context) ([]models.StoreInfo, error)
	GetStore(ctx context.Context, storeID string) (*models.StoreInfo, error)
	GetLocation(ctx context.Context, locationID string) (*models.LocationInfo, error)
	GetLocationsForStore(ctx context.Context, storeID string) ([]models.LocationInfo, error)
	GetLayoutData(ctx context.Context, storeID string) (*models.StoreLayoutData, error)
	GetPublishedLayout(ctx context.Context, storeID string) (models.StoreLayout, error)
	UpdateLayoutDraft(ctx context.Context, storeID string, layout models.StoreLayout) (models.StoreLayout, error)
	PublishLayout(ctx context.Context, storeID string, layout models.StoreLayout) error
	GetStoreSettings(ctx context.Context, storeID string) (*models.StoreSettings, error)
	GetAppSettings(ctx context.Context) (*models.AppSettings, error)
}

// CatalogRepositoryInterface defines the contract for the admin catalog selectors
type CatalogRepositoryInterface interface {
	GetCategories(ctx context.Context, storeID string) ([]models.CategoryInfo, error)
	GetFeaturedTags(ctx context.Context, storeID string) ([]models.TagInfo, error)
}
