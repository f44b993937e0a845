package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"storefront-home/models"
	"storefront-home/repository"
)

const (
	noLocationStoreName = "Choose a Location"
	unnamedLocationName = "Location Home"
)

// HomeRequest is a storefront home resolution request
type HomeRequest struct {
	LocationID string
	// SessionKey identifies the client session; a newer request of the same session
	// for another location supersedes this one. Empty disables tracking.
	SessionKey string
}

// HomeService resolves the storefront home page of a location
type HomeService struct {
	stores     repository.StoreRepositoryInterface
	content    ContentResolverInterface
	dispatcher SectionDispatcherInterface
	passes     *PassTracker
	log        logrus.FieldLogger
}

// NewHomeService creates a new HomeService
func NewHomeService(
	stores repository.StoreRepositoryInterface,
	content ContentResolverInterface,
	dispatcher SectionDispatcherInterface,
	passes *PassTracker,
	log logrus.FieldLogger,
) *HomeService {
	return &HomeService{
		stores:     stores,
		content:    content,
		dispatcher: dispatcher,
		passes:     passes,
		log:        log,
	}
}

// Ensure HomeService implements HomeServiceInterface
var _ HomeServiceInterface = (*HomeService)(nil)

// passData is what a resolution pass loads before hydration
type passData struct {
	location *models.LocationInfo
	layout   models.StoreLayout
	settings *models.StoreSettings
	app      *models.AppSettings
}

// Resolve runs a resolution pass: location, published layout and theme are loaded,
// the layout is resolved for the location and every section is hydrated.
func (s *HomeService) Resolve(ctx context.Context, req HomeRequest) (*models.HomePage, error) {
	locationID := strings.TrimSpace(req.LocationID)
	if locationID == "" {
		return &models.HomePage{
			StoreName:     noLocationStoreName,
			NeedsLocation: true,
			Theme:         DefaultTheme(),
			Sections:      []*models.RenderableSection{},
		}, nil
	}

	pass, passCtx := s.passes.Begin(ctx, req.SessionKey, locationID)
	defer pass.Finish()

	log := s.log.WithFields(logrus.Fields{"pass_id": pass.ID, "location_id": locationID})
	log.Debug("🔍 Resolving home")

	data, err := s.load(passCtx, locationID, true)
	if err != nil {
		if !pass.Current() {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	brandID := data.location.StoreID
	theme := ResolveTheme(storeTheme(data.settings), appTheme(data.app))
	sections := ResolveLayout(data.layout, &locationID)
	rendered := s.dispatcher.Dispatch(passCtx, sections, brandID, &locationID, theme)

	if !pass.Current() {
		log.Info("⚠️ Discarding superseded resolution pass")
		return nil, ErrSuperseded
	}

	page := &models.HomePage{
		LocationID: locationID,
		StoreID:    brandID,
		StoreName:  data.location.Name,
		Theme:      theme,
		Sections:   models.CompactSections(rendered),
	}
	if page.StoreName == "" {
		page.StoreName = unnamedLocationName
	}
	if data.settings != nil {
		page.LogoURL = data.settings.LogoURL
	}

	log.WithField("sections", len(page.Sections)).Info("✓ Home resolved")
	return page, nil
}

// Theme resolves the palette of a location's store. An empty location gets the defaults.
func (s *HomeService) Theme(ctx context.Context, locationID string) (models.ThemeColors, error) {
	locationID = strings.TrimSpace(locationID)
	if locationID == "" {
		return DefaultTheme(), nil
	}
	data, err := s.load(ctx, locationID, false)
	if err != nil {
		return models.ThemeColors{}, err
	}
	return ResolveTheme(storeTheme(data.settings), appTheme(data.app)), nil
}

// ResolveSection re-resolves a single section of a location's home
func (s *HomeService) ResolveSection(ctx context.Context, locationID, sectionID string) (*models.RenderableSection, error) {
	locationID = strings.TrimSpace(locationID)
	if locationID == "" {
		return nil, ErrLocationNotFound
	}

	data, err := s.load(ctx, locationID, true)
	if err != nil {
		return nil, err
	}

	for _, section := range ResolveLayout(data.layout, &locationID) {
		if section.SectionID != sectionID {
			continue
		}
		theme := ResolveTheme(storeTheme(data.settings), appTheme(data.app))
		rendered := s.dispatcher.DispatchOne(ctx, section, data.location.StoreID, &locationID, theme)
		if rendered == nil {
			break
		}
		return rendered, nil
	}
	return nil, fmt.Errorf("section %s: %w", sectionID, ErrSectionNotFound)
}

// Stores lists every store
func (s *HomeService) Stores(ctx context.Context) ([]models.StoreInfo, error) {
	return s.stores.GetStores(ctx)
}

// Locations lists the locations of a store
func (s *HomeService) Locations(ctx context.Context, storeID string) ([]models.LocationInfo, error) {
	if _, err := s.stores.GetStore(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return s.stores.GetLocationsForStore(ctx, storeID)
}

// Search searches the products of a store
func (s *HomeService) Search(ctx context.Context, storeID string, q SearchQuery) ([]models.ProductInfo, error) {
	if strings.TrimSpace(storeID) == "" {
		return []models.ProductInfo{}, nil
	}
	return s.content.SearchProducts(ctx, storeID, q)
}

// load fetches the location, then its store's settings and (optionally) published layout concurrently.
// Settings failures degrade to no settings; a missing store reads as an empty layout.
func (s *HomeService) load(ctx context.Context, locationID string, withLayout bool) (*passData, error) {
	location, err := s.stores.GetLocation(ctx, locationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to load location: %w", err)
	}

	data := &passData{location: location, layout: models.StoreLayout{}}
	brandID := location.StoreID
	log := s.log.WithFields(logrus.Fields{"location_id": locationID, "store_id": brandID})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app, err := s.stores.GetAppSettings(gctx)
		if err != nil {
			log.WithError(err).Warn("⚠️ App settings unavailable, using default theme")
			return nil
		}
		data.app = app
		return nil
	})
	if brandID != "" {
		g.Go(func() error {
			settings, err := s.stores.GetStoreSettings(gctx, brandID)
			if err != nil {
				log.WithError(err).Warn("⚠️ Store settings unavailable, falling back to app theme")
				return nil
			}
			data.settings = settings
			return nil
		})
		if withLayout {
			g.Go(func() error {
				layout, err := s.stores.GetPublishedLayout(gctx, brandID)
				if err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						log.Warn("⚠️ Location points to a missing store, showing empty home")
						return nil
					}
					return fmt.Errorf("failed to load published layout: %w", err)
				}
				data.layout = layout
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func storeTheme(settings *models.StoreSettings) json.RawMessage {
	if settings == nil {
		return nil
	}
	return settings.ThemeStore
}

func appTheme(app *models.AppSettings) json.RawMessage {
	if app == nil {
		return nil
	}
	return app.Theme
}
