package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"storefront-home/app/controller"
	"storefront-home/app/router"
	"storefront-home/config"
	"storefront-home/db"
	"storefront-home/repository"
	"storefront-home/service"
)

// Initialize wires the database, repositories, services and controllers and returns the HTTP handler
func Initialize(ctx context.Context, cfg *config.Config, log *logrus.Logger) (http.Handler, error) {
	if err := db.InitDB(ctx, cfg.DatabaseURL, log); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Repositories
	catalogQuery := repository.NewCatalogQuery(db.DB, log.WithField("component", "catalog_query"))
	storeRepo := repository.NewStoreRepository(db.DB, log.WithField("component", "store_repository"))
	catalogRepo := repository.NewCatalogRepository(db.DB, log.WithField("component", "catalog_repository"))

	// Drive is optional; without it Drive-hosted images are rejected
	var drive service.DriveServiceInterface
	if cfg.DriveEnabled() {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath, cfg.GoogleCredentialsJSON)
		if err != nil {
			return nil, err
		}
		drive = driveService
		log.Info("✓ Google Drive image source enabled")
	} else {
		log.Warn("⚠️ Google Drive credentials not set, Drive image sources disabled")
	}

	imageCache := service.NewImageCache(cfg.ImageCacheDir, log.WithField("component", "image_cache"))
	if err := imageCache.EnsureDir(); err != nil {
		return nil, err
	}

	// Services
	contentResolver := service.NewContentResolver(catalogQuery, log.WithField("component", "content_resolver"))
	dispatcher := service.NewDispatcher(contentResolver, cfg.SectionFetchConcurrency, cfg.SectionFetchTimeout, log.WithField("component", "dispatcher"))
	homeService := service.NewHomeService(storeRepo, contentResolver, dispatcher, service.NewPassTracker(), log.WithField("component", "home"))
	layoutService := service.NewLayoutService(storeRepo, catalogRepo, log.WithField("component", "layout"))
	previewService := service.NewPreviewService(cfg.ChromePath, log.WithField("component", "preview"))
	imageService := service.NewImageService(imageCache, drive, nil, cfg.ImageAllowedHosts, log.WithField("component", "images"))

	controllers := &router.Controllers{
		Home:    controller.NewHomeController(homeService, log),
		Layout:  controller.NewLayoutController(layoutService, log),
		Image:   controller.NewImageController(imageService, log),
		Preview: controller.NewPreviewController(homeService, previewService, cfg.PreviewRatePerMinute, log),
	}

	return router.SetupRoutes(controllers), nil
}
