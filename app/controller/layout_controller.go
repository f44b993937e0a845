package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"storefront-home/models"
	"storefront-home/service"
)

const maxLayoutBodyBytes = 2 << 20

// LayoutController handles the layout editor HTTP requests
type LayoutController struct {
	layouts service.LayoutServiceInterface
	log     logrus.FieldLogger
}

// NewLayoutController creates a new LayoutController
func NewLayoutController(layouts service.LayoutServiceInterface, log logrus.FieldLogger) *LayoutController {
	return &LayoutController{layouts: layouts, log: log}
}

// validationResponse is the body returned by validate and by a rejected publish
type validationResponse struct {
	Valid  bool                     `json:"valid"`
	Errors []models.ValidationError `json:"errors"`
}

// GetLayout handles GET /admin/stores/{storeID}/layout
func (c *LayoutController) GetLayout(w http.ResponseWriter, r *http.Request) {
	data, err := c.layouts.GetLayout(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		writeError(w, c.log, "GetLayout", err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// SaveDraft handles PUT /admin/stores/{storeID}/layout/draft
func (c *LayoutController) SaveDraft(w http.ResponseWriter, r *http.Request) {
	layout, ok := c.decodeLayout(w, r)
	if !ok {
		return
	}
	saved, err := c.layouts.SaveDraft(r.Context(), chi.URLParam(r, "storeID"), layout)
	if err != nil {
		writeError(w, c.log, "SaveDraft", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// Publish handles POST /admin/stores/{storeID}/layout/publish
func (c *LayoutController) Publish(w http.ResponseWriter, r *http.Request) {
	layout, ok := c.decodeLayout(w, r)
	if !ok {
		return
	}
	storeID := chi.URLParam(r, "storeID")

	validationErrs, err := c.layouts.Publish(r.Context(), storeID, layout)
	if errors.Is(err, service.ErrInvalidLayout) {
		writeJSON(w, http.StatusBadRequest, validationResponse{Valid: false, Errors: validationErrs})
		return
	}
	if err != nil {
		writeError(w, c.log, "Publish", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"message":  "Layout published successfully",
		"storeId":  storeID,
		"sections": len(layout),
	})
}

// Validate handles POST /admin/stores/{storeID}/layout/validate
func (c *LayoutController) Validate(w http.ResponseWriter, r *http.Request) {
	layout, ok := c.decodeLayout(w, r)
	if !ok {
		return
	}
	errs := c.layouts.Validate(layout)
	writeJSON(w, http.StatusOK, validationResponse{Valid: len(errs) == 0, Errors: errs})
}

// ListCategories handles GET /admin/stores/{storeID}/categories
func (c *LayoutController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.layouts.Categories(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		writeError(w, c.log, "ListCategories", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// ListTags handles GET /admin/stores/{storeID}/tags
func (c *LayoutController) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := c.layouts.Tags(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		writeError(w, c.log, "ListTags", err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// decodeLayout reads a layout document (a JSON array of sections) from the request body
func (c *LayoutController) decodeLayout(w http.ResponseWriter, r *http.Request) (models.StoreLayout, bool) {
	var layout models.StoreLayout
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLayoutBodyBytes)).Decode(&layout); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return nil, false
	}
	if layout == nil {
		layout = models.StoreLayout{}
	}
	return layout, true
}
