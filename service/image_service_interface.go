package service

import "context"

// ImageServiceInterface defines the contract for serving optimized images
type ImageServiceInterface interface {
	Optimized(ctx context.Context, src, size string) ([]byte, error)
}
