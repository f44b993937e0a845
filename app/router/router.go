package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"storefront-home/app/controller"
	"storefront-home/metrics"
)

// Controllers groups the HTTP controllers served by the router
type Controllers struct {
	Home    *controller.HomeController
	Layout  *controller.LayoutController
	Image   *controller.ImageController
	Preview *controller.PreviewController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the HTTP router
func SetupRoutes(controllers *Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Get("/ping", pingHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/storefront", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/stores", controllers.Home.ListStores)
		r.Get("/stores/{storeID}/locations", controllers.Home.ListLocations)
		r.Get("/locations/{locationID}/home", controllers.Home.GetHome)
		r.Get("/locations/{locationID}/theme", controllers.Home.GetTheme)
		r.Get("/locations/{locationID}/sections/{sectionID}", controllers.Home.GetSection)
		r.Get("/search", controllers.Home.Search)
		r.Get("/images", controllers.Image.GetImage)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/stores/{storeID}/layout", controllers.Layout.GetLayout)
		r.Put("/stores/{storeID}/layout/draft", controllers.Layout.SaveDraft)
		r.Post("/stores/{storeID}/layout/publish", controllers.Layout.Publish)
		r.Post("/stores/{storeID}/layout/validate", controllers.Layout.Validate)
		r.Get("/stores/{storeID}/categories", controllers.Layout.ListCategories)
		r.Get("/stores/{storeID}/tags", controllers.Layout.ListTags)
		r.Get("/locations/{locationID}/preview", controllers.Preview.GetHTML)
		r.Get("/locations/{locationID}/preview.png", controllers.Preview.GetPNG)
	})

	return r
}
