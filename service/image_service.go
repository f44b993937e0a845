package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-home/metrics"
)

const (
	maxSourceImageBytes = 20 << 20
	imageFetchTimeout   = 15 * time.Second
)

// ImageService fetches banner and product images, shrinks them and caches the result
type ImageService struct {
	cache        *ImageCache
	drive        DriveServiceInterface
	client       *http.Client
	allowedHosts map[string]bool
	log          logrus.FieldLogger
}

// NewImageService creates a new ImageService. drive may be nil when Drive is not configured.
// Only URLs on allowedHosts are fetched; a host starting with "." also admits its subdomains.
func NewImageService(cache *ImageCache, drive DriveServiceInterface, client *http.Client, allowedHosts []string, log logrus.FieldLogger) *ImageService {
	s := &ImageService{cache: cache, drive: drive, allowedHosts: make(map[string]bool), log: log}
	for _, h := range allowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			s.allowedHosts[h] = true
		}
	}

	if client == nil {
		client = &http.Client{Timeout: imageFetchTimeout}
	}
	c := *client
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return fmt.Errorf("stopped after %d redirects", len(via))
		}
		if !s.hostAllowed(req.URL) {
			return fmt.Errorf("%w: redirect to %q", ErrInvalidImageSource, req.URL.Hostname())
		}
		return nil
	}
	s.client = &c
	return s
}

// Ensure ImageService implements ImageServiceInterface
var _ ImageServiceInterface = (*ImageService)(nil)

// Optimized returns the JPEG of src resized for size, from the cache when possible
func (s *ImageService) Optimized(ctx context.Context, src, size string) ([]byte, error) {
	size = NormalizeImageSize(size)
	log := s.log.WithFields(logrus.Fields{"src": src, "size": size})

	cachePath := s.cache.Path(src, size)
	if data, ok := s.cache.Read(cachePath); ok {
		metrics.RecordImage(size, true)
		return data, nil
	}

	raw, err := s.fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		log.WithError(err).Warn("⚠️ Could not optimize image")
		return nil, err
	}
	metrics.RecordImage(size, false)

	if err := s.cache.Save(cachePath, optimized); err != nil {
		log.WithError(err).Warn("⚠️ Could not cache optimized image")
	}
	log.WithField("bytes", len(optimized)).Info("✓ Image optimized")
	return optimized, nil
}

func (s *ImageService) fetch(ctx context.Context, src string) ([]byte, error) {
	if fileID, ok := DriveFileID(src); ok {
		if s.drive == nil {
			return nil, fmt.Errorf("%w: drive is not configured", ErrInvalidImageSource)
		}
		return s.drive.DownloadFile(ctx, fileID)
	}

	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidImageSource, src)
	}
	if !s.hostAllowed(u) {
		s.log.WithField("host", u.Hostname()).Warn("⚠️ Image host is not allowed")
		return nil, fmt.Errorf("%w: host %q is not allowed", ErrInvalidImageSource, u.Hostname())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image source returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

func (s *ImageService) hostAllowed(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	if s.allowedHosts[host] {
		return true
	}
	for h := host; ; {
		i := strings.IndexByte(h, '.')
		if i < 0 {
			return false
		}
		if s.allowedHosts[h[i:]] {
			return true
		}
		h = h[i+1:]
	}
}
