package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"storefront-home/service"
)

// SessionHeader identifies the client session of a home request
const SessionHeader = "X-Session-ID"

// HomeController handles the storefront HTTP requests
type HomeController struct {
	home service.HomeServiceInterface
	log  logrus.FieldLogger
}

// NewHomeController creates a new HomeController
func NewHomeController(home service.HomeServiceInterface, log logrus.FieldLogger) *HomeController {
	return &HomeController{home: home, log: log}
}

// GetHome handles GET /storefront/locations/{locationID}/home
func (c *HomeController) GetHome(w http.ResponseWriter, r *http.Request) {
	page, err := c.home.Resolve(r.Context(), service.HomeRequest{
		LocationID: chi.URLParam(r, "locationID"),
		SessionKey: r.Header.Get(SessionHeader),
	})
	if err != nil {
		writeError(w, c.log, "GetHome", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetTheme handles GET /storefront/locations/{locationID}/theme
func (c *HomeController) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := c.home.Theme(r.Context(), chi.URLParam(r, "locationID"))
	if err != nil {
		writeError(w, c.log, "GetTheme", err)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

// GetSection handles GET /storefront/locations/{locationID}/sections/{sectionID}
// Used to retry a single section that failed.
func (c *HomeController) GetSection(w http.ResponseWriter, r *http.Request) {
	section, err := c.home.ResolveSection(r.Context(), chi.URLParam(r, "locationID"), chi.URLParam(r, "sectionID"))
	if err != nil {
		writeError(w, c.log, "GetSection", err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

// ListStores handles GET /storefront/stores
func (c *HomeController) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := c.home.Stores(r.Context())
	if err != nil {
		writeError(w, c.log, "ListStores", err)
		return
	}
	writeJSON(w, http.StatusOK, stores)
}

// ListLocations handles GET /storefront/stores/{storeID}/locations
func (c *HomeController) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := c.home.Locations(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		writeError(w, c.log, "ListLocations", err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

// Search handles GET /storefront/search?storeId=&q=&ids=&locationId=&dedupe=
// Global searches collapse duplicate names unless dedupe=false.
func (c *HomeController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := service.SearchQuery{Term: query.Get("q"), Deduplicate: true}
	if ids := strings.TrimSpace(query.Get("ids")); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				q.IDs = append(q.IDs, id)
			}
		}
	}
	if locationID := strings.TrimSpace(query.Get("locationId")); locationID != "" {
		q.LocationID = &locationID
	}
	if dedupe := query.Get("dedupe"); dedupe != "" {
		v, err := strconv.ParseBool(dedupe)
		if err != nil {
			http.Error(w, "dedupe must be true or false", http.StatusBadRequest)
			return
		}
		q.Deduplicate = v
	}

	products, err := c.home.Search(r.Context(), query.Get("storeId"), q)
	if err != nil {
		writeError(w, c.log, "Search", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
