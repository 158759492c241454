package photos

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"gamepress/internal/logger"
)

// Size selects which resolution variant of a found photo is returned.
type Size string

const (
	SizeHero   Size = "hero"
	SizeInline Size = "inline"
)

// genres recognized inside search terms; a matching genre produces more
// specific query strategies.
var genres = []string{"rpg", "strategy", "action", "puzzle", "racing", "shooter", "moba", "fps"}

// curatedImages is the last-resort pool: mobile-gaming photography that is
// known to exist and look good at article width.
var curatedImages = []string{
	"https://images.unsplash.com/photo-1556438064-2d7646166914?w=1200",
	"https://images.unsplash.com/photo-1612287230202-1ff1d85d1bdf?w=1200",
	"https://images.unsplash.com/photo-1593305841991-05c297ba4575?w=1200",
	"https://images.unsplash.com/photo-1556056504-5c7696c4c28d?w=1200",
	"https://images.unsplash.com/photo-1625805866449-3589fe3f71a3?w=1200",
	"https://images.unsplash.com/photo-1580234931426-e0c97857b519?w=1200",
	"https://images.unsplash.com/photo-1616499452689-1920f7c45df6?w=1200",
	"https://images.unsplash.com/photo-1587825140708-dfaf72ae4b04?w=1200",
}

// FallbackImage is returned when even the curated pool cannot be used.
const FallbackImage = "https://images.unsplash.com/photo-1556438064-2d7646166914?w=1200"

// Finder turns a search term into a usable image URL by walking a list of
// query strategies against a Provider and falling back to curated images.
type Finder struct {
	provider    Provider
	perPage     int
	orientation string
	rng         *rand.Rand
}

func NewFinder(provider Provider, perPage int, orientation string) *Finder {
	if perPage <= 0 {
		perPage = 30
	}
	if orientation == "" {
		orientation = "landscape"
	}
	return &Finder{
		provider:    provider,
		perPage:     perPage,
		orientation: orientation,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededFinder is NewFinder with a deterministic random source.
func NewSeededFinder(provider Provider, perPage int, orientation string, seed int64) *Finder {
	f := NewFinder(provider, perPage, orientation)
	f.rng = rand.New(rand.NewSource(seed))
	return f
}

// queryStrategies builds the ordered search queries for a term: genre-aware
// queries first when the term names a known genre, then generic gaming
// queries.
func queryStrategies(searchTerm string) []string {
	term := strings.ToLower(searchTerm)

	var foundGenre string
	for _, genre := range genres {
		if strings.Contains(term, genre) {
			foundGenre = genre
			break
		}
	}

	var strategies []string
	if foundGenre != "" {
		strategies = append(strategies,
			"people playing "+foundGenre+" mobile game",
			foundGenre+" mobile game",
		)
	}
	return append(strategies,
		"people playing mobile games",
		"smartphone gaming lifestyle",
		"mobile gaming",
		"video game controller",
		"gaming phone",
		"mobile gamer",
	)
}

// ErrNoPhotos indicates every query strategy came back empty or failing.
var ErrNoPhotos = errors.New("photos: no results for any query strategy")

// Search returns an image URL for searchTerm by trying each query strategy
// in order and picking a random photo from the first non-empty result.
// pageOverride > 0 pins the result page, otherwise a random page 1-3 is
// used. Returns ErrNoPhotos when every strategy fails.
func (f *Finder) Search(ctx context.Context, searchTerm string, size Size, pageOverride int) (string, error) {
	page := pageOverride
	if page <= 0 {
		page = f.rng.Intn(3) + 1
	}

	for _, strategy := range queryStrategies(searchTerm) {
		photos, err := f.provider.SearchPhotos(ctx, strategy, Config{
			Page:        page,
			PerPage:     f.perPage,
			Orientation: f.orientation,
		})
		if err != nil {
			logger.Debug("photo search failed, trying next strategy", "query", strategy, "error", err)
			continue
		}
		if len(photos) == 0 {
			continue
		}

		photo := photos[f.rng.Intn(len(photos))]
		logger.Info("found stock photo", "query", strategy, "photo_id", photo.ID, "provider", f.provider.GetName())
		if size == SizeHero {
			return photo.Regular, nil
		}
		return photo.Small, nil
	}

	return "", ErrNoPhotos
}

// Curated returns a random image from the curated pool. It never fails.
func (f *Finder) Curated() string {
	return curatedImages[f.rng.Intn(len(curatedImages))]
}

// ArticleImage is Search with the curated pool as a built-in fallback, for
// callers that must always get a URL (hero images).
func (f *Finder) ArticleImage(ctx context.Context, searchTerm string, size Size, pageOverride int) string {
	url, err := f.Search(ctx, searchTerm, size, pageOverride)
	if err != nil {
		logger.Warn("all photo strategies failed, using curated image", "search_term", searchTerm)
		return f.Curated()
	}
	return url
}
