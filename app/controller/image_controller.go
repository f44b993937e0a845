package controller

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"storefront-home/service"
)

// ImageController serves optimized banner and product images
type ImageController struct {
	images service.ImageServiceInterface
	log    logrus.FieldLogger
}

// NewImageController creates a new ImageController
func NewImageController(images service.ImageServiceInterface, log logrus.FieldLogger) *ImageController {
	return &ImageController{images: images, log: log}
}

// GetImage handles GET /storefront/images?src=&size=thumb|medium
func (c *ImageController) GetImage(w http.ResponseWriter, r *http.Request) {
	src := strings.TrimSpace(r.URL.Query().Get("src"))
	if src == "" {
		http.Error(w, "src parameter is required", http.StatusBadRequest)
		return
	}

	data, err := c.images.Optimized(r.Context(), src, r.URL.Query().Get("size"))
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			c.log.WithError(err).WithField("src", src).Warn("⚠️ Image unavailable")
			http.Error(w, "Image unavailable", http.StatusBadGateway)
			return
		}
		writeError(w, c.log, "GetImage", err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
