package images

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamepress/internal/core"
	"gamepress/internal/photos"
)

func TestFindPlaceholders(t *testing.T) {
	content := `Intro.

[IMG_PLACEHOLDER_1: Clash of Clans]

Más texto.

[IMG_PLACEHOLDER_2: PUBG Mobile gameplay]
`
	found := FindPlaceholders(content)
	require.Len(t, found, 2)
	assert.Equal(t, "1", found[0].Index)
	assert.Equal(t, "Clash of Clans", found[0].Description)
	assert.Equal(t, "PUBG Mobile gameplay", found[1].Description)
}

func TestGameNameStripsSuffixes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Clash of Clans strategy gameplay", "Clash of Clans"},
		{"Clash of Clans gameplay", "Clash of Clans"},
		{"PUBG Mobile mobile game screenshot", "PUBG Mobile"},
		{"Genshin Impact showing open world", "Genshin Impact"},
		{"Candy Crush in-game graphics", "Candy Crush"},
		{"Brawl Stars", "Brawl Stars"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GameName(tt.in), "input %q", tt.in)
	}
}

func TestGameNameSuffixIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "Clash of Clans", GameName("Clash of Clans Gameplay intenso"))
}

// scriptedStrategy fails n times before succeeding.
type scriptedStrategy struct {
	name  string
	fails int
	calls int
	html  string
}

func (s *scriptedStrategy) Name() string { return s.name }

func (s *scriptedStrategy) Resolve(_ context.Context, p Placeholder, _ int) (string, error) {
	s.calls++
	if s.calls <= s.fails {
		return "", errors.New("scripted failure")
	}
	return s.html, nil
}

func TestResolveFirstSuccessWins(t *testing.T) {
	first := &scriptedStrategy{name: "first", html: "<div>card</div>"}
	second := &scriptedStrategy{name: "second", html: "<img/>"}
	r := NewResolver(0, first, second)

	out := r.Resolve(context.Background(), "a [IMG_PLACEHOLDER_1: Juego] b")
	assert.Equal(t, "a <div>card</div> b", out)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later strategies must not run after a success")
}

func TestResolveFallsThroughChain(t *testing.T) {
	first := &scriptedStrategy{name: "first", fails: 10}
	second := &scriptedStrategy{name: "second", html: "<img/>"}
	r := NewResolver(0, first, second)

	out := r.Resolve(context.Background(), "[IMG_PLACEHOLDER_1: Juego]")
	assert.Equal(t, "<img/>", out)
}

func TestResolveLeavesNoMarkers(t *testing.T) {
	// Every strategy fails; the resolver's own fallback must still clear
	// all markers.
	failing := &scriptedStrategy{name: "failing", fails: 1000}
	r := NewResolver(0, failing)

	var sb strings.Builder
	sb.WriteString("# Artículo\n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&sb, "\nSección %d\n[IMG_PLACEHOLDER_%d: Juego %d]\n", i, i, i)
	}

	out := r.Resolve(context.Background(), sb.String())
	assert.Empty(t, FindPlaceholders(out))
	assert.NotContains(t, out, "IMG_PLACEHOLDER")
	assert.Contains(t, out, fallbackImageURL)
}

func TestResolveNoPlaceholdersIsNoop(t *testing.T) {
	r := NewResolver(0)
	content := "sin imágenes"
	assert.Equal(t, content, r.Resolve(context.Background(), content))
}

func TestGameCardRender(t *testing.T) {
	g := NewSeededGameCardStrategy(nil, 1)

	info := &core.GameInfo{
		Title:       "Clash Royale",
		Developer:   "Supercell",
		Genre:       "Strategy",
		Score:       4.32,
		Screenshots: []string{"https://play-lh.example/s1.png"},
		MinInstalls: 500_000_000,
		Free:        true,
		URL:         "https://play.google.com/store/apps/details?id=com.supercell.clashroyale",
	}

	html, err := g.render(info, "Clash Royale")
	require.NoError(t, err)
	assert.Contains(t, html, "https://play-lh.example/s1.png")
	assert.Contains(t, html, "Clash Royale")
	assert.Contains(t, html, "Supercell")
	assert.Contains(t, html, "⭐ 4.3/5")
	assert.Contains(t, html, "Descargas: 500M+")
	assert.Contains(t, html, "Gratis")
	assert.Contains(t, html, "Lanzamiento: N/A")
	assert.Contains(t, html, "google-play-button")
}

func TestCuratedStrategyNeverFails(t *testing.T) {
	finder := photos.NewSeededFinder(photos.NewMockProvider(), 30, "landscape", 1)
	c := NewCuratedStrategy(finder)

	html, err := c.Resolve(context.Background(), Placeholder{Description: "Juego"}, 0)
	require.NoError(t, err)
	assert.Contains(t, html, "<img src=")
	assert.Contains(t, html, `alt="Juego"`)
}

func TestStockPhotoStrategyUsesInlineSize(t *testing.T) {
	mock := photos.NewMockProvider()
	mock.Photos = []core.Photo{{ID: "p", Regular: "https://img/reg", Small: "https://img/small"}}
	finder := photos.NewSeededFinder(mock, 30, "landscape", 1)

	s := NewSeededStockPhotoStrategy(finder, 1)
	html, err := s.Resolve(context.Background(), Placeholder{Description: "Puzzle game gameplay"}, 0)
	require.NoError(t, err)
	assert.Contains(t, html, "https://img/small")
}
