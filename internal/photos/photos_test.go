package photos

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamepress/internal/core"
)

func TestFactoryCreatesProviders(t *testing.T) {
	f := NewProviderFactory()

	p, err := f.CreateProvider(ProviderTypeUnsplash, map[string]string{"access_key": "k"})
	require.NoError(t, err)
	assert.Equal(t, "Unsplash", p.GetName())

	p, err = f.CreateProvider(ProviderTypePexels, map[string]string{"api_key": "k"})
	require.NoError(t, err)
	assert.Equal(t, "Pexels", p.GetName())

	p, err = f.CreateProvider(ProviderTypeMock, nil)
	require.NoError(t, err)
	assert.Equal(t, "Mock", p.GetName())
}

func TestFactoryErrors(t *testing.T) {
	f := NewProviderFactory()

	_, err := f.CreateProvider(ProviderTypeUnsplash, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = f.CreateProvider(ProviderType("flickr"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestQueryStrategies(t *testing.T) {
	withGenre := queryStrategies("Mejores juegos RPG")
	assert.Equal(t, "people playing rpg mobile game", withGenre[0])
	assert.Equal(t, "rpg mobile game", withGenre[1])
	assert.Len(t, withGenre, 8)

	generic := queryStrategies("Monetización")
	assert.Equal(t, "people playing mobile games", generic[0])
	assert.Len(t, generic, 6)
}

func TestArticleImagePicksFromFirstNonEmptyStrategy(t *testing.T) {
	mock := NewMockProvider()
	mock.Photos = []core.Photo{{ID: "p1", Regular: "https://img/reg", Small: "https://img/small"}}

	f := NewSeededFinder(mock, 30, "landscape", 1)

	url := f.ArticleImage(context.Background(), "Estrategia", SizeHero, 1)
	assert.Equal(t, "https://img/reg", url)
	require.NotEmpty(t, mock.Queries)

	url = f.ArticleImage(context.Background(), "Estrategia", SizeInline, 1)
	assert.Equal(t, "https://img/small", url)
}

func TestArticleImageFallsBackToCurated(t *testing.T) {
	mock := NewMockProvider()
	mock.Err = errors.New("rate limited")

	f := NewSeededFinder(mock, 30, "landscape", 1)

	url := f.ArticleImage(context.Background(), "Puzzle", SizeHero, 0)
	assert.Contains(t, curatedImages, url)
	// Every strategy was attempted before falling back.
	assert.Len(t, mock.Queries, 8)
}

func TestUnsplashProviderParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "mobile gaming", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"results":[{"id":"abc","urls":{"regular":"https://u/reg","small":"https://u/small"},"user":{"name":"Ana"}}]}`))
	}))
	defer srv.Close()

	p := NewUnsplashProvider("test-key")
	p.baseURL = srv.URL

	photos, err := p.SearchPhotos(context.Background(), "mobile gaming", Config{Page: 1, PerPage: 30})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "abc", photos[0].ID)
	assert.Equal(t, "https://u/reg", photos[0].Regular)
	assert.Equal(t, "Ana", photos[0].Credit)
	assert.Equal(t, "unsplash", photos[0].ProviderID)
}

func TestPexelsProviderParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"photos":[{"id":7,"src":{"large2x":"https://p/l2x","large":"https://p/l","medium":"https://p/m"},"photographer":"Luis"}]}`))
	}))
	defer srv.Close()

	p := NewPexelsProvider("test-key")
	p.baseURL = srv.URL

	photos, err := p.SearchPhotos(context.Background(), "gaming", Config{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "7", photos[0].ID)
	assert.Equal(t, "https://p/l2x", photos[0].Regular)
	assert.Equal(t, "https://p/m", photos[0].Small)
	assert.Equal(t, "pexels", photos[0].ProviderID)
}
