package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

// Image sizes served by the image endpoint
const (
	ImageSizeThumb  = "thumb"
	ImageSizeMedium = "medium"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// NormalizeImageSize maps a requested size to a served size, medium by default
func NormalizeImageSize(size string) string {
	if size == ImageSizeThumb {
		return ImageSizeThumb
	}
	return ImageSizeMedium
}

// ImageCache stores optimized images on disk, keyed by source and size
type ImageCache struct {
	dir string
	log logrus.FieldLogger
}

// NewImageCache creates an ImageCache rooted at dir
func NewImageCache(dir string, log logrus.FieldLogger) *ImageCache {
	return &ImageCache{dir: dir, log: log}
}

// EnsureDir ensures the cache directory exists, creates it if it doesn't
func (c *ImageCache) EnsureDir() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Path returns the cache file path for a source and size
func (c *ImageCache) Path(src, size string) string {
	sum := sha256.Sum256([]byte(src + "|" + size))
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s.jpg", hex.EncodeToString(sum[:16]), size))
}

// Read reads an image from the cache. ok is false when it is not cached.
func (c *ImageCache) Read(cachePath string) ([]byte, bool) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Save saves an image to the cache
func (c *ImageCache) Save(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	c.log.WithField("path", cachePath).Debug("✓ Image cached")
	return nil
}

// OptimizeImage converts an image to JPEG and shrinks it to the max dimension of size.
// Images already within bounds are only re-encoded.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	if NormalizeImageSize(size) == ImageSizeThumb {
		maxDim, quality = maxSizeThumb, qualityThumb
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		// imaging.Fit keeps the aspect ratio
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
