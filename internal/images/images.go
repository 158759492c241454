// Package images replaces the [IMG_PLACEHOLDER_N: ...] markers the content
// generator emits with real HTML. Each marker walks an ordered chain of
// resolver strategies; the first one to succeed wins, and the chain is
// arranged so the last tier cannot fail. Image resolution therefore never
// aborts article generation.
package images

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gamepress/internal/logger"
)

var placeholderPattern = regexp.MustCompile(`\[IMG_PLACEHOLDER_(\d+):\s*([^\]]+)\]`)

// descriptionSuffix strips the trailing qualifiers models append to game
// names ("Clash of Clans strategy gameplay" keeps only "Clash of Clans").
var descriptionSuffix = regexp.MustCompile(`(?i)\s+(mobile\s+game|gameplay|screenshot|strategy|graphics|showing|showcasing|in-game).*$`)

// Placeholder is one image marker found in generated content.
type Placeholder struct {
	Raw         string
	Index       string
	Description string
}

// FindPlaceholders returns all image markers in content, in document order.
func FindPlaceholders(content string) []Placeholder {
	matches := placeholderPattern.FindAllStringSubmatch(content, -1)
	placeholders := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		placeholders = append(placeholders, Placeholder{
			Raw:         m[0],
			Index:       m[1],
			Description: strings.TrimSpace(m[2]),
		})
	}
	return placeholders
}

// GameName extracts the probable game name from a placeholder description.
func GameName(description string) string {
	return strings.TrimSpace(descriptionSuffix.ReplaceAllString(strings.TrimSpace(description), ""))
}

// Strategy resolves one placeholder into an HTML fragment. position is the
// zero-based placeholder index within the article, which strategies may use
// to vary their results.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, p Placeholder, position int) (string, error)
}

// Resolver applies the strategy chain to every placeholder in a document.
type Resolver struct {
	strategies []Strategy
	delay      time.Duration
}

// NewResolver builds a Resolver. delay spaces out placeholder resolutions to
// stay under external rate limits; pass 0 in tests.
func NewResolver(delay time.Duration, strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies, delay: delay}
}

// Resolve replaces every image marker in content. Markers are processed
// sequentially in document order. After Resolve returns, no unresolved
// markers remain: if every strategy fails for a marker (which the curated
// tier prevents in practice) a plain fallback image is used.
func (r *Resolver) Resolve(ctx context.Context, content string) string {
	placeholders := FindPlaceholders(content)
	if len(placeholders) == 0 {
		return content
	}
	logger.Info("resolving article images", "placeholders", len(placeholders))

	for i, p := range placeholders {
		html := r.resolveOne(ctx, p, i)
		content = strings.Replace(content, p.Raw, html, 1)

		if r.delay > 0 && i < len(placeholders)-1 {
			time.Sleep(r.delay)
		}
	}
	return content
}

func (r *Resolver) resolveOne(ctx context.Context, p Placeholder, position int) string {
	for _, s := range r.strategies {
		html, err := s.Resolve(ctx, p, position)
		if err != nil {
			logger.Debug("image strategy failed, trying next",
				"strategy", s.Name(), "placeholder", p.Index, "error", err)
			continue
		}
		logger.Info("placeholder resolved",
			"strategy", s.Name(), "placeholder", p.Index, "description", p.Description)
		return html
	}

	logger.Warn("no image strategy succeeded, using fallback image", "placeholder", p.Index)
	return inlineImageHTML(fallbackImageURL, p.Description)
}

const fallbackImageURL = "https://images.unsplash.com/photo-1556438064-2d7646166914?w=1200"

func inlineImageHTML(url, alt string) string {
	return fmt.Sprintf("\n\n<img src=%q alt=%q class=\"article-image\" />\n\n", url, alt)
}
