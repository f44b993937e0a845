package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"storefront-home/metrics"
	"storefront-home/service"
)

// PreviewController renders location home previews for the layout editor
type PreviewController struct {
	home    service.HomeServiceInterface
	preview service.PreviewServiceInterface
	limiter *rate.Limiter
	log     logrus.FieldLogger
}

// NewPreviewController creates a new PreviewController.
// PNG renders are limited to perMinute per minute.
func NewPreviewController(home service.HomeServiceInterface, preview service.PreviewServiceInterface, perMinute int, log logrus.FieldLogger) *PreviewController {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &PreviewController{
		home:    home,
		preview: preview,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60), perMinute),
		log:     log,
	}
}

// GetHTML handles GET /admin/locations/{locationID}/preview
func (c *PreviewController) GetHTML(w http.ResponseWriter, r *http.Request) {
	html, ok := c.render(w, r, "html")
	if !ok {
		return
	}
	metrics.RecordPreview("html", true)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// GetPNG handles GET /admin/locations/{locationID}/preview.png
func (c *PreviewController) GetPNG(w http.ResponseWriter, r *http.Request) {
	if !c.limiter.Allow() {
		http.Error(w, "Too many preview requests", http.StatusTooManyRequests)
		return
	}

	html, ok := c.render(w, r, "png")
	if !ok {
		return
	}
	png, err := c.preview.Screenshot(r.Context(), html)
	if err != nil {
		metrics.RecordPreview("png", false)
		writeError(w, c.log, "GetPNG", err)
		return
	}

	metrics.RecordPreview("png", true)
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (c *PreviewController) render(w http.ResponseWriter, r *http.Request, format string) (string, bool) {
	page, err := c.home.Resolve(r.Context(), service.HomeRequest{LocationID: chi.URLParam(r, "locationID")})
	if err != nil {
		metrics.RecordPreview(format, false)
		writeError(w, c.log, "Preview", err)
		return "", false
	}
	html, err := c.preview.RenderHTML(page)
	if err != nil {
		metrics.RecordPreview(format, false)
		writeError(w, c.log, "Preview", err)
		return "", false
	}
	return html, true
}
