package images

import (
	"context"
	"math/rand"
	"time"

	"gamepress/internal/photos"
)

// StockPhotoStrategy resolves placeholders with a stock photo <img> tag. The
// result page shifts with the placeholder position so consecutive images in
// one article differ.
type StockPhotoStrategy struct {
	finder *photos.Finder
	rng    *rand.Rand
}

func NewStockPhotoStrategy(finder *photos.Finder) *StockPhotoStrategy {
	return &StockPhotoStrategy{
		finder: finder,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededStockPhotoStrategy is NewStockPhotoStrategy with a fixed random
// source.
func NewSeededStockPhotoStrategy(finder *photos.Finder, seed int64) *StockPhotoStrategy {
	return &StockPhotoStrategy{finder: finder, rng: rand.New(rand.NewSource(seed))}
}

func (s *StockPhotoStrategy) Name() string { return "stock-photo" }

func (s *StockPhotoStrategy) Resolve(ctx context.Context, p Placeholder, position int) (string, error) {
	term := GameName(p.Description)
	if term == "" {
		term = p.Description
	}

	page := position + 1 + s.rng.Intn(3)
	url, err := s.finder.Search(ctx, term, photos.SizeInline, page)
	if err != nil {
		return "", err
	}
	return inlineImageHTML(url, p.Description), nil
}

// CuratedStrategy resolves every placeholder with a curated image. It sits
// last in the chain and never fails.
type CuratedStrategy struct {
	finder *photos.Finder
}

func NewCuratedStrategy(finder *photos.Finder) *CuratedStrategy {
	return &CuratedStrategy{finder: finder}
}

func (c *CuratedStrategy) Name() string { return "curated" }

func (c *CuratedStrategy) Resolve(_ context.Context, p Placeholder, _ int) (string, error) {
	return inlineImageHTML(c.finder.Curated(), p.Description), nil
}
