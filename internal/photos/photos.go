// Package photos finds stock photography for article hero and inline images.
// Providers sit behind a common interface so the pipeline can run against
// Unsplash, Pexels, or a mock without caring which.
package photos

import (
	"context"
	"errors"

	"gamepress/internal/core"
)

// Provider is a stock-photo search backend.
type Provider interface {
	// SearchPhotos returns photos matching query. An empty result is not an
	// error; callers decide how to fall back.
	SearchPhotos(ctx context.Context, query string, config Config) ([]core.Photo, error)

	// GetName returns the name of this provider.
	GetName() string
}

// Config holds per-request search parameters.
type Config struct {
	Page        int
	PerPage     int
	Orientation string
}

// ProviderType identifies a photo provider implementation.
type ProviderType string

const (
	ProviderTypeUnsplash ProviderType = "unsplash"
	ProviderTypePexels   ProviderType = "pexels"
	ProviderTypeMock     ProviderType = "mock"
)

var (
	ErrMissingAPIKey       = errors.New("photos: missing API key")
	ErrUnsupportedProvider = errors.New("photos: unsupported provider type")
)

// ProviderFactory creates photo providers based on type and configuration.
type ProviderFactory struct{}

func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// CreateProvider creates a photo provider of the specified type.
func (f *ProviderFactory) CreateProvider(providerType ProviderType, config map[string]string) (Provider, error) {
	switch providerType {
	case ProviderTypeUnsplash:
		key, exists := config["access_key"]
		if !exists || key == "" {
			return nil, ErrMissingAPIKey
		}
		return NewUnsplashProvider(key), nil
	case ProviderTypePexels:
		key, exists := config["api_key"]
		if !exists || key == "" {
			return nil, ErrMissingAPIKey
		}
		return NewPexelsProvider(key), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
