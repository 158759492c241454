package photos

import (
	"context"

	"gamepress/internal/core"
)

// MockProvider is a test double. Photos and Err script the responses;
// Queries records every search.
type MockProvider struct {
	Photos  []core.Photo
	Err     error
	Queries []string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) GetName() string {
	return "Mock"
}

func (m *MockProvider) SearchPhotos(ctx context.Context, query string, config Config) ([]core.Photo, error) {
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Photos, nil
}
