package images

import (
	"context"
	"fmt"
	"html/template"
	"math/rand"
	"strings"
	"time"

	"gamepress/internal/core"
	"gamepress/internal/playstore"
	"gamepress/internal/topics"
)

// gameCardTemplate renders the inline Play Store card: screenshot, metadata
// caption, release dates and a store button.
var gameCardTemplate = template.Must(template.New("gamecard").Parse(`

<div class="game-card-pro" style="border: 3px solid #374151; border-radius: 16px; padding: 24px; margin: 40px 0; background: #1f2937; box-shadow: 0 4px 12px rgba(0, 0, 0, 0.08);">

  <div class="game-visual-section" style="margin-bottom: 16px;">
    <div class="game-screenshot-frame" style="width: 100%; border-radius: 12px; overflow: hidden; border: 3px solid #374151; box-shadow: 0 4px 12px rgba(0, 0, 0, 0.1); padding: 12px; background: #111827;">
      <img src="{{.Screenshot}}" alt="{{.Alt}}" style="max-height: 280px !important; width: 100% !important; height: auto !important; object-fit: contain !important; display: block; border-radius: 8px;" />
    </div>
  </div>

  <div class="game-caption" style="font-size: 13px; color: #9ca3af; font-style: italic; line-height: 1.6; margin-bottom: 8px; padding: 0 4px;">
    <strong style="color: #f3f4f6; font-size: 14px;">{{.Title}}</strong> · {{.Developer}} · {{.Genre}} · ⭐ {{.Score}}/5 · Descargas: {{.Installs}} · {{.Price}}
  </div>

  <div class="game-dates" style="font-size: 12px; color: #6b7280; margin-bottom: 12px; padding: 0 4px;">
    Lanzamiento: {{.Released}} · Última actualización: {{.Updated}}
  </div>

  <a href="{{.URL}}" target="_blank" rel="noopener" class="google-play-button" style="display: inline-block; margin-bottom: 0; transition: all 0.3s;">
    <img src="/assets/images/googlesc.png" alt="Get it on Google Play" class="play-badge" style="height: 35px !important; width: auto !important; max-width: 130px !important; display: block;" />
  </a>
</div>

`))

type gameCardData struct {
	Screenshot string
	Alt        string
	Title      string
	Developer  string
	Genre      string
	Score      string
	Installs   string
	Price      string
	Released   string
	Updated    string
	URL        string
}

// GameCardStrategy resolves placeholders whose description names a real Play
// Store game by rendering a full game card with one of its screenshots.
type GameCardStrategy struct {
	store *playstore.Client
	rng   *rand.Rand
}

func NewGameCardStrategy(store *playstore.Client) *GameCardStrategy {
	return &GameCardStrategy{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededGameCardStrategy is NewGameCardStrategy with a fixed random source.
func NewSeededGameCardStrategy(store *playstore.Client, seed int64) *GameCardStrategy {
	return &GameCardStrategy{store: store, rng: rand.New(rand.NewSource(seed))}
}

func (g *GameCardStrategy) Name() string { return "playstore-card" }

func (g *GameCardStrategy) Resolve(ctx context.Context, p Placeholder, _ int) (string, error) {
	name := GameName(p.Description)
	if name == "" {
		return "", fmt.Errorf("no game name in description %q", p.Description)
	}

	info, err := g.store.Lookup(ctx, name)
	if err != nil {
		return "", err
	}
	if len(info.Screenshots) == 0 {
		return "", fmt.Errorf("game %q has no screenshots", info.Title)
	}

	return g.render(info, p.Description)
}

func (g *GameCardStrategy) render(info *core.GameInfo, alt string) (string, error) {
	// Pick from the first screenshots; later ones are often promo art.
	n := min(len(info.Screenshots), 5)
	screenshot := info.Screenshots[g.rng.Intn(n)]

	score := "N/A"
	if info.Score > 0 {
		score = fmt.Sprintf("%.1f", info.Score)
	}
	genre := info.Genre
	if genre == "" {
		genre = "Juego móvil"
	}
	price := info.Price
	if info.Free {
		price = "Gratis"
	}

	var sb strings.Builder
	err := gameCardTemplate.Execute(&sb, gameCardData{
		Screenshot: screenshot,
		Alt:        alt,
		Title:      info.Title,
		Developer:  info.Developer,
		Genre:      genre,
		Score:      score,
		Installs:   playstore.FormatInstalls(info.MinInstalls),
		Price:      price,
		Released:   cardDate(info.Released),
		Updated:    cardDate(info.Updated),
		URL:        info.URL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render game card: %w", err)
	}
	return sb.String(), nil
}

func cardDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), topics.SpanishMonth(t), t.Year())
}
