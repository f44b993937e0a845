package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront-home/models"
)

// StoreRepository handles database operations for stores, locations, layouts and settings
type StoreRepository struct {
	db      *sql.DB
	catalog *CatalogQuery
	log     logrus.FieldLogger
}

// NewStoreRepository creates a new StoreRepository
func NewStoreRepository(database *sql.DB, log logrus.FieldLogger) *StoreRepository {
	return &StoreRepository{db: database, catalog: NewCatalogQuery(database, log), log: log}
}

// Ensure StoreRepository implements StoreRepositoryInterface
var _ StoreRepositoryInterface = (*StoreRepository)(nil)

// GetStores retrieves every store ordered by name
func (r *StoreRepository) GetStores(ctx context.Context) ([]models.StoreInfo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM stores ORDER BY name`)
	if err != nil {
		r.log.WithError(err).Error("❌ GetStores: Error querying stores")
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	stores := []models.StoreInfo{}
	for rows.Next() {
		var s models.StoreInfo
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}
	return stores, nil
}

// GetStore retrieves a single store
func (r *StoreRepository) GetStore(ctx context.Context, storeID string) (*models.StoreInfo, error) {
	var s models.StoreInfo
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM stores WHERE id = $1`, storeID).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("store %s: %w", storeID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch store: %w", err)
	}
	return &s, nil
}

// GetLocation retrieves a location with its owning store id
func (r *StoreRepository) GetLocation(ctx context.Context, locationID string) (*models.LocationInfo, error) {
	row, err := r.catalog.FetchOne(ctx, EntityLocations, []Predicate{Eq("id", locationID)})
	if err != nil {
		r.log.WithError(err).WithField("location_id", locationID).Error("❌ GetLocation: Error fetching location")
		return nil, fmt.Errorf("failed to fetch location: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("location %s: %w", locationID, ErrNotFound)
	}

	// store_id may be null; it decodes as ""
	var l models.LocationInfo
	if err := json.Unmarshal(row, &l); err != nil {
		return nil, fmt.Errorf("failed to decode location %s: %w", locationID, err)
	}
	return &l, nil
}

// GetLocationsForStore retrieves the locations of a store ordered by name
func (r *StoreRepository) GetLocationsForStore(ctx context.Context, storeID string) ([]models.LocationInfo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, store_id FROM locations WHERE store_id = $1 ORDER BY name`, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations := []models.LocationInfo{}
	for rows.Next() {
		var l models.LocationInfo
		if err := rows.Scan(&l.ID, &l.Name, &l.StoreID); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}
	return locations, nil
}

// GetLayoutData retrieves the draft and published layouts of a store.
// A NULL draft reads as an empty layout, a NULL published layout stays nil.
func (r *StoreRepository) GetLayoutData(ctx context.Context, storeID string) (*models.StoreLayoutData, error) {
	var draftRaw, publishedRaw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT home_layout_draft, home_layout_published FROM stores WHERE id = $1`, storeID).
		Scan(&draftRaw, &publishedRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("store %s: %w", storeID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch layout data: %w", err)
	}

	data := &models.StoreLayoutData{LayoutDraft: models.StoreLayout{}}
	if draftRaw != nil {
		data.LayoutDraft = r.decodeLayout(storeID, "draft", draftRaw)
	}
	if publishedRaw != nil {
		data.LayoutPublished = r.decodeLayout(storeID, "published", publishedRaw)
	}
	return data, nil
}

// GetPublishedLayout retrieves the published layout of a store. A store that never
// published, or whose published document is not an array, has an empty layout.
func (r *StoreRepository) GetPublishedLayout(ctx context.Context, storeID string) (models.StoreLayout, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT home_layout_published FROM stores WHERE id = $1`, storeID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("store %s: %w", storeID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch published layout: %w", err)
	}
	if raw == nil {
		return models.StoreLayout{}, nil
	}
	return r.decodeLayout(storeID, "published", raw), nil
}

// UpdateLayoutDraft stores a new draft layout and returns the stored draft
func (r *StoreRepository) UpdateLayoutDraft(ctx context.Context, storeID string, layout models.StoreLayout) (models.StoreLayout, error) {
	payload, err := encodeLayout(layout)
	if err != nil {
		return nil, err
	}

	var stored []byte
	err = r.db.QueryRowContext(ctx, `
		UPDATE stores
		SET home_layout_draft = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING home_layout_draft
	`, payload, storeID).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("store %s: %w", storeID, ErrNotFound)
		}
		r.log.WithError(err).WithField("store_id", storeID).Error("❌ UpdateLayoutDraft: Error updating draft")
		return nil, fmt.Errorf("failed to update layout draft: %w", err)
	}

	r.log.WithFields(logrus.Fields{"store_id": storeID, "sections": len(layout)}).Info("💾 Layout draft saved")
	return r.decodeLayout(storeID, "draft", stored), nil
}

// PublishLayout replaces the published layout of a store
func (r *StoreRepository) PublishLayout(ctx context.Context, storeID string, layout models.StoreLayout) error {
	payload, err := encodeLayout(layout)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE stores
		SET home_layout_published = $1, updated_at = NOW()
		WHERE id = $2
	`, payload, storeID)
	if err != nil {
		r.log.WithError(err).WithField("store_id", storeID).Error("❌ PublishLayout: Error publishing layout")
		return fmt.Errorf("failed to publish layout: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("store %s: %w", storeID, ErrNotFound)
	}

	r.log.WithFields(logrus.Fields{"store_id": storeID, "sections": len(layout)}).Info("🎉 Layout published")
	return nil
}

// GetStoreSettings retrieves the settings of a store, or nil when the store has none
func (r *StoreRepository) GetStoreSettings(ctx context.Context, storeID string) (*models.StoreSettings, error) {
	var s models.StoreSettings
	var logo sql.NullString
	var theme []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT store_id, logo_url, theme_store FROM store_settings WHERE store_id = $1`, storeID).
		Scan(&s.StoreID, &logo, &theme)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch store settings: %w", err)
	}
	if logo.Valid {
		s.LogoURL = logo.String
	}
	if theme != nil {
		s.ThemeStore = json.RawMessage(theme)
	}
	return &s, nil
}

// GetAppSettings retrieves the application wide settings, or nil when none exist
func (r *StoreRepository) GetAppSettings(ctx context.Context) (*models.AppSettings, error) {
	var theme []byte
	err := r.db.QueryRowContext(ctx, `SELECT theme FROM app_settings LIMIT 1`).Scan(&theme)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch app settings: %w", err)
	}
	s := &models.AppSettings{}
	if theme != nil {
		s.Theme = json.RawMessage(theme)
	}
	return s, nil
}

// decodeLayout decodes a stored layout, dropping sections that fail to decode
func (r *StoreRepository) decodeLayout(storeID, which string, raw []byte) models.StoreLayout {
	layout, errs := models.DecodeLayout(raw)
	for _, err := range errs {
		r.log.WithError(err).WithFields(logrus.Fields{"store_id": storeID, "layout": which}).
			Warn("⚠️ Dropping undecodable layout section")
	}
	return layout
}

func encodeLayout(layout models.StoreLayout) (string, error) {
	if layout == nil {
		layout = models.StoreLayout{}
	}
	payload, err := json.Marshal(layout)
	if err != nil {
		return "", fmt.Errorf("failed to encode layout: %w", err)
	}
	return string(payload), nil
}
