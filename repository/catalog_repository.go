package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront-home/models"
)

// CatalogRepository handles the category and featured tag listings used by the layout editor
type CatalogRepository struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(database *sql.DB, log logrus.FieldLogger) *CatalogRepository {
	return &CatalogRepository{db: database, log: log}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// GetCategories retrieves the categories of a store ordered by name
func (r *CatalogRepository) GetCategories(ctx context.Context, storeID string) ([]models.CategoryInfo, error) {
	r.log.WithField("store_id", storeID).Debug("🔍 GetCategories")

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(icon_url, ''), COALESCE(background_color, ''), COALESCE(text_color, '')
		FROM categories
		WHERE store_id = $1
		ORDER BY name
	`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.CategoryInfo{}
	for rows.Next() {
		var c models.CategoryInfo
		if err := rows.Scan(&c.ID, &c.Name, &c.IconURL, &c.BackgroundColor, &c.TextColor); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// GetFeaturedTags retrieves the featured tags of a store ordered by name
func (r *CatalogRepository) GetFeaturedTags(ctx context.Context, storeID string) ([]models.TagInfo, error) {
	r.log.WithField("store_id", storeID).Debug("🔍 GetFeaturedTags")

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(icon_url, ''), COALESCE(background_color, ''), COALESCE(text_color, '')
		FROM featured_tags
		WHERE store_id = $1
		ORDER BY name
	`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query featured tags: %w", err)
	}
	defer rows.Close()

	tags := []models.TagInfo{}
	for rows.Next() {
		var t models.TagInfo
		if err := rows.Scan(&t.ID, &t.Name, &t.IconURL, &t.BackgroundColor, &t.TextColor); err != nil {
			return nil, fmt.Errorf("failed to scan featured tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating featured tags: %w", err)
	}
	return tags, nil
}
