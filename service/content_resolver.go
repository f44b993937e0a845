package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"storefront-home/models"
	"storefront-home/repository"
)

const (
	defaultCollectionLimit  = 10
	defaultNewArrivalsDays  = 7
	searchResultLimit       = 50
	bestSellersStandInNotes = "BEST_SELLERS has no sales signal; showing most recently created products"
	trendingStandInNotes    = "TRENDING_NOW has no view signal; showing most recently created products"
)

// ResolveContext is the explicit scope of a content resolution
type ResolveContext struct {
	BrandID    string
	LocationID *string
}

// SearchQuery is a product search. IDs takes precedence over Term.
type SearchQuery struct {
	Term        string
	IDs         []string
	LocationID  *string
	Deduplicate bool
}

// ContentResolver turns content sources into catalog items
type ContentResolver struct {
	catalog repository.CatalogQueryInterface
	now     func() time.Time
	log     logrus.FieldLogger
}

// NewContentResolver creates a new ContentResolver
func NewContentResolver(catalog repository.CatalogQueryInterface, log logrus.FieldLogger) *ContentResolver {
	return &ContentResolver{
		catalog: catalog,
		now:     time.Now,
		log:     log,
	}
}

// WithClock replaces the time source
func (r *ContentResolver) WithClock(now func() time.Time) *ContentResolver {
	r.now = now
	return r
}

// Ensure ContentResolver implements ContentResolverInterface
var _ ContentResolverInterface = (*ContentResolver)(nil)

// Resolve fetches the items a content source describes. Unrecognized or incomplete sources
// resolve to empty content with a diagnostic; an error is returned only when a fetch fails.
func (r *ContentResolver) Resolve(ctx context.Context, source models.ContentSource, rc ResolveContext) (models.Content, error) {
	switch s := source.(type) {
	case models.CategorySource:
		return r.resolveCategories(ctx, s.IDs)
	case models.TagGroupSource:
		return r.resolveTags(ctx, s.IDs)
	case models.ProductCollectionSource:
		return r.resolveProductCollection(ctx, s, rc)
	case models.UnknownSource:
		return emptyContent(models.ContentKindNone, fmt.Sprintf("unknown content source type %q", s.Type)), nil
	case nil:
		return emptyContent(models.ContentKindNone, "section has no content source"), nil
	default:
		return emptyContent(models.ContentKindNone, fmt.Sprintf("unhandled content source %T", source)), nil
	}
}

func (r *ContentResolver) resolveCategories(ctx context.Context, ids []string) (models.Content, error) {
	content := models.Content{Kind: models.ContentKindCategories, Categories: []models.CategoryInfo{}}
	if len(ids) == 0 {
		return content, nil
	}

	rows, err := r.catalog.FetchByID(ctx, repository.EntityCategories, ids)
	if err != nil {
		return models.Content{}, fmt.Errorf("failed to fetch categories: %w", err)
	}

	byID := make(map[string]models.CategoryInfo, len(rows))
	for _, row := range rows {
		if c, ok := categoryFromRow(row); ok {
			byID[c.ID] = c
		}
	}
	for _, id := range uniqueIDs(ids) {
		if c, ok := byID[id]; ok {
			content.Categories = append(content.Categories, c)
		}
	}
	return content, nil
}

func (r *ContentResolver) resolveTags(ctx context.Context, ids []string) (models.Content, error) {
	content := models.Content{Kind: models.ContentKindTags, Tags: []models.TagInfo{}}
	if len(ids) == 0 {
		return content, nil
	}

	rows, err := r.catalog.FetchByID(ctx, repository.EntityFeaturedTags, ids)
	if err != nil {
		return models.Content{}, fmt.Errorf("failed to fetch featured tags: %w", err)
	}

	byID := make(map[string]models.TagInfo, len(rows))
	for _, row := range rows {
		if t, ok := tagFromRow(row); ok {
			byID[t.ID] = t
		}
	}
	for _, id := range uniqueIDs(ids) {
		if t, ok := byID[id]; ok {
			content.Tags = append(content.Tags, t)
		}
	}
	return content, nil
}

func (r *ContentResolver) resolveProductCollection(ctx context.Context, s models.ProductCollectionSource, rc ResolveContext) (models.Content, error) {
	limit := s.CriteriaLimit
	if limit <= 0 {
		limit = defaultCollectionLimit
	}

	switch s.CollectionMode {
	case models.CollectionModeManualSelection:
		return r.resolveManualSelection(ctx, s, rc, limit)
	case models.CollectionModeByCriteria:
		return r.resolveByCriteria(ctx, s, rc, limit)
	case models.CollectionModeFromCategory:
		if s.SourceCategoryID == "" {
			return emptyContent(models.ContentKindProducts, "FROM_CATEGORY collection has no source_category_id"), nil
		}
		return r.fetchProducts(ctx, rc, []repository.Predicate{repository.Eq("referenced_category_id", s.SourceCategoryID)}, repository.Order{}, limit, "")
	case models.CollectionModeFromTag:
		if s.SourceTagID == "" {
			return emptyContent(models.ContentKindProducts, "FROM_TAG collection has no source_tag_id"), nil
		}
		return r.fetchProducts(ctx, rc, []repository.Predicate{repository.Contains("featured_tag_ids", []string{s.SourceTagID})}, repository.Order{}, limit, "")
	default:
		return emptyContent(models.ContentKindProducts, fmt.Sprintf("unknown collection_mode %q", s.CollectionMode)), nil
	}
}

// manualSelectionIDs applies location precedence: the per-location list when non-empty,
// then product_ids, then the legacy ids field.
func manualSelectionIDs(s models.ProductCollectionSource, locationID *string) []string {
	if locationID != nil {
		if ids := s.ManualSelectionsByLocation[*locationID]; len(ids) > 0 {
			return ids
		}
	}
	if len(s.ProductIDs) > 0 {
		return s.ProductIDs
	}
	return s.LegacyIDs
}

func (r *ContentResolver) resolveManualSelection(ctx context.Context, s models.ProductCollectionSource, rc ResolveContext, limit int) (models.Content, error) {
	ids := manualSelectionIDs(s, rc.LocationID)
	if len(ids) == 0 {
		return emptyContent(models.ContentKindProducts, "MANUAL_SELECTION collection has no product ids"), nil
	}

	rows, err := r.catalog.FetchByID(ctx, repository.EntityProducts, ids, repository.Eq("store_id", rc.BrandID))
	if err != nil {
		return models.Content{}, fmt.Errorf("failed to fetch selected products: %w", err)
	}

	byID := make(map[string]models.ProductInfo, len(rows))
	for _, row := range rows {
		if p, ok := productFromRow(row); ok {
			byID[p.ID] = p
		}
	}

	content := models.Content{Kind: models.ContentKindProducts, Products: []models.ProductInfo{}}
	for _, id := range uniqueIDs(ids) {
		p, ok := byID[id]
		if !ok || !visibleAt(p, rc.LocationID) {
			continue
		}
		content.Products = append(content.Products, p)
		if len(content.Products) == limit {
			break
		}
	}
	return content, nil
}

// visibleAt reports whether a product shows at a location: location-agnostic products show everywhere
func visibleAt(p models.ProductInfo, locationID *string) bool {
	if p.LocationID == nil {
		return true
	}
	return locationID != nil && *p.LocationID == *locationID
}

func (r *ContentResolver) resolveByCriteria(ctx context.Context, s models.ProductCollectionSource, rc ResolveContext, limit int) (models.Content, error) {
	recent := repository.Order{Column: "created_at", Descending: true}

	switch s.CriteriaType {
	case "":
		return emptyContent(models.ContentKindProducts, "BY_CRITERIA collection has no criteria_type"), nil
	case models.CriteriaNewArrivals:
		days := s.CriteriaTimeframeDays
		if days <= 0 {
			days = defaultNewArrivalsDays
		}
		since := r.now().AddDate(0, 0, -days)
		return r.fetchProducts(ctx, rc, []repository.Predicate{repository.Gte("created_at", since)}, recent, limit, "")
	case models.CriteriaDiscounted:
		content, err := r.fetchProducts(ctx, rc, []repository.Predicate{repository.NotNull("offer_price")}, recent, limit, "")
		if err != nil {
			return models.Content{}, err
		}
		discounted := make([]models.ProductInfo, 0, len(content.Products))
		for _, p := range content.Products {
			if p.IsDiscounted() {
				discounted = append(discounted, p)
			}
		}
		content.Products = discounted
		return content, nil
	case models.CriteriaBestSellers:
		return r.fetchProducts(ctx, rc, nil, recent, limit, bestSellersStandInNotes)
	case models.CriteriaTrendingNow:
		return r.fetchProducts(ctx, rc, nil, recent, limit, trendingStandInNotes)
	default:
		return emptyContent(models.ContentKindProducts, fmt.Sprintf("unknown criteria_type %q", s.CriteriaType)), nil
	}
}

// fetchProducts runs a brand scoped, optionally location scoped product query
func (r *ContentResolver) fetchProducts(ctx context.Context, rc ResolveContext, preds []repository.Predicate, order repository.Order, limit int, diagnostic string) (models.Content, error) {
	all := []repository.Predicate{repository.Eq("store_id", rc.BrandID)}
	all = append(all, preds...)
	if rc.LocationID != nil {
		all = append(all, repository.Eq("location_id", *rc.LocationID))
	}

	rows, err := r.catalog.FetchFiltered(ctx, repository.EntityProducts, all, order, limit)
	if err != nil {
		return models.Content{}, fmt.Errorf("failed to fetch products: %w", err)
	}

	content := models.Content{Kind: models.ContentKindProducts, Products: productsFromRows(rows), Diagnostic: diagnostic}
	return content, nil
}

// SearchProducts searches a brand's products by id list or free text, at most 50 results.
// Without a location filter and with Deduplicate set, case-insensitive name collisions
// collapse to their first occurrence.
func (r *ContentResolver) SearchProducts(ctx context.Context, brandID string, q SearchQuery) ([]models.ProductInfo, error) {
	preds := []repository.Predicate{repository.Eq("store_id", brandID)}

	term := strings.TrimSpace(q.Term)
	switch {
	case len(q.IDs) > 0:
		preds = append(preds, repository.In("id", q.IDs))
	case term != "":
		preds = append(preds, repository.TextSearch("name", term))
	default:
		return []models.ProductInfo{}, nil
	}

	if q.LocationID != nil {
		preds = append(preds, repository.Eq("location_id", *q.LocationID))
	}

	r.log.WithFields(logrus.Fields{"store_id": brandID, "term": term, "ids": len(q.IDs)}).Debug("🔍 Searching products")

	rows, err := r.catalog.FetchFiltered(ctx, repository.EntityProducts, preds, repository.Order{}, searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	products := productsFromRows(rows)
	if q.LocationID == nil && q.Deduplicate {
		products = DeduplicateByName(products)
	}
	return products, nil
}

// DeduplicateByName keeps the first product of each case-insensitive name, preserving order
func DeduplicateByName(products []models.ProductInfo) []models.ProductInfo {
	seen := make(map[string]bool, len(products))
	out := make([]models.ProductInfo, 0, len(products))
	for _, p := range products {
		key := strings.ToLower(p.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

func emptyContent(kind models.ContentKind, diagnostic string) models.Content {
	c := models.Content{Kind: kind, Diagnostic: diagnostic}
	switch kind {
	case models.ContentKindProducts:
		c.Products = []models.ProductInfo{}
	case models.ContentKindCategories:
		c.Categories = []models.CategoryInfo{}
	case models.ContentKindTags:
		c.Tags = []models.TagInfo{}
	}
	return c
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func productsFromRows(rows []json.RawMessage) []models.ProductInfo {
	products := make([]models.ProductInfo, 0, len(rows))
	for _, row := range rows {
		if p, ok := productFromRow(row); ok {
			products = append(products, p)
		}
	}
	return products
}

// productFromRow maps a products row. Prices that are not JSON numbers are dropped.
func productFromRow(row json.RawMessage) (models.ProductInfo, bool) {
	r := gjson.ParseBytes(row)
	id := r.Get("id").String()
	if id == "" {
		return models.ProductInfo{}, false
	}
	return models.ProductInfo{
		ID:         id,
		Name:       r.Get("name").String(),
		ImageURL:   SelectImageURL(r.Get("image_data")),
		LocationID: optionalString(r.Get("location_id")),
		Price:      optionalNumber(r.Get("price")),
		OfferPrice: optionalNumber(r.Get("offer_price")),
		CreatedAt:  r.Get("created_at").String(),
	}, true
}

func categoryFromRow(row json.RawMessage) (models.CategoryInfo, bool) {
	r := gjson.ParseBytes(row)
	id := r.Get("id").String()
	if id == "" {
		return models.CategoryInfo{}, false
	}
	return models.CategoryInfo{
		ID:              id,
		Name:            r.Get("name").String(),
		IconURL:         r.Get("icon_url").String(),
		BackgroundColor: r.Get("background_color").String(),
		TextColor:       r.Get("text_color").String(),
	}, true
}

func tagFromRow(row json.RawMessage) (models.TagInfo, bool) {
	r := gjson.ParseBytes(row)
	id := r.Get("id").String()
	if id == "" {
		return models.TagInfo{}, false
	}
	return models.TagInfo{
		ID:              id,
		Name:            r.Get("name").String(),
		IconURL:         r.Get("icon_url").String(),
		BackgroundColor: r.Get("background_color").String(),
		TextColor:       r.Get("text_color").String(),
	}, true
}

// SelectImageURL picks the display image of a product: the entry flagged is_primary,
// else the first entry, else none. A plain string is used as the URL.
func SelectImageURL(images gjson.Result) string {
	switch {
	case images.IsArray():
		entries := images.Array()
		if len(entries) == 0 {
			return ""
		}
		for _, e := range entries {
			if e.Get("is_primary").Bool() {
				return imageEntryURL(e)
			}
		}
		return imageEntryURL(entries[0])
	case images.Type == gjson.String:
		s := strings.TrimSpace(images.Str)
		if strings.HasPrefix(s, "[") && gjson.Valid(s) {
			return SelectImageURL(gjson.Parse(s))
		}
		return s
	}
	return ""
}

func imageEntryURL(e gjson.Result) string {
	if e.Type == gjson.String {
		return e.Str
	}
	return e.Get("url").String()
}

func optionalString(v gjson.Result) *string {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	s := v.String()
	if s == "" {
		return nil
	}
	return &s
}

func optionalNumber(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}
