// Package topics selects what the next article is about: a fixed catalog of
// article formats with Spanish title templates, optionally steered by a
// trending topic discovered at run time.
package topics

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gamepress/internal/core"
	"gamepress/internal/logger"
)

// Format describes one article format and the raw material for its titles.
type Format struct {
	Type        core.ArticleType
	Template    string
	Templates   []string
	Categories  []string
	Platforms   []string
	Topics      []string
	Comparisons [][2]string
}

// Catalog is the fixed set of generatable article formats. Breaking news has
// its own pipeline and is intentionally absent.
var Catalog = []Format{
	{
		Type:       core.TypeTop5,
		Template:   "TOP 5 Mejores Juegos {category} para {platform} {month} {year}",
		Categories: []string{"RPG", "Estrategia", "Acción", "Puzzle", "Deportes", "Simulación"},
		Platforms:  []string{"Android", "iOS", "Mobile"},
	},
	{
		Type:     core.TypeAnalysis,
		Template: "Análisis: {topic} en Gaming Móvil {year}",
		Topics:   []string{"Nuevas Tendencias", "Monetización", "Gráficos 3D", "Realidad Aumentada", "Multijugador", "Cloud Gaming"},
	},
	{
		Type:     core.TypeComparison,
		Template: "Comparativa: {topic1} vs {topic2} en Juegos Móviles",
		Comparisons: [][2]string{
			{"Android", "iOS"},
			{"Juegos Gratis", "Juegos Premium"},
			{"Gaming Casual", "Gaming Hardcore"},
			{"Controles Touch", "Controles con Gamepad"},
		},
	},
	{
		Type: core.TypeGuide,
		Templates: []string{
			"{topic} para Gamers Móviles: Todo lo que Necesitas Saber",
			"Domina {topic} en Juegos Móviles",
			"{topic}: La Guía Definitiva para Móviles",
			"Cómo Mejorar en {topic} - Guía Práctica",
			"{topic} en Gaming Móvil: Consejos y Trucos",
		},
		Topics: []string{"Optimizar Batería", "Mejores Accesorios", "Configuración Gráfica", "Trucos y Consejos"},
	},
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// SpanishMonth returns the lowercase Spanish name for t's month.
func SpanishMonth(t time.Time) string {
	return spanishMonths[t.Month()-1]
}

// Selection is the outcome of topic selection: the format that was picked,
// the finished title, and the search term used downstream for research and
// image lookups.
type Selection struct {
	Type       core.ArticleType
	Title      string
	SearchTerm string
	Trending   bool
}

// Selector picks formats and builds titles. A seeded Selector is
// deterministic, which the tests rely on.
type Selector struct {
	rng *rand.Rand
	now func() time.Time
}

func NewSelector() *Selector {
	return &Selector{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewSeededSelector returns a Selector with a fixed random source and clock.
func NewSeededSelector(seed int64, now func() time.Time) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed)), now: now}
}

// PickFormat returns the format for forced, or a random catalog entry when
// forced is empty or names an unknown type.
func (s *Selector) PickFormat(forced string) Format {
	if forced != "" {
		for _, f := range Catalog {
			if string(f.Type) == forced {
				return f
			}
		}
		logger.Warn("unknown forced article type, picking random", "forced", forced)
	}
	return Catalog[s.rng.Intn(len(Catalog))]
}

// Select builds the title and search term for format. trendingTopic steers
// non-top5 formats when non-empty; top5 always uses its fixed categories.
func (s *Selector) Select(format Format, trendingTopic string) Selection {
	now := s.now()
	month := SpanishMonth(now)
	year := fmt.Sprintf("%d", now.Year())

	sel := Selection{Type: format.Type}

	switch format.Type {
	case core.TypeTop5:
		category := format.Categories[s.rng.Intn(len(format.Categories))]
		platform := format.Platforms[s.rng.Intn(len(format.Platforms))]
		r := strings.NewReplacer(
			"{category}", category,
			"{platform}", platform,
			"{month}", month,
			"{year}", year,
		)
		sel.Title = r.Replace(format.Template)
		sel.SearchTerm = category

	case core.TypeAnalysis:
		topic := trendingTopic
		if topic == "" {
			topic = format.Topics[s.rng.Intn(len(format.Topics))]
		} else {
			sel.Trending = true
		}
		sel.Title = strings.NewReplacer("{topic}", topic, "{year}", year).Replace(format.Template)
		sel.SearchTerm = topic

	case core.TypeComparison:
		pair := format.Comparisons[s.rng.Intn(len(format.Comparisons))]
		if trendingTopic != "" {
			sel.Trending = true
			sel.Title = fmt.Sprintf("Comparativa: %s en %s vs %s", trendingTopic, pair[0], pair[1])
			sel.SearchTerm = trendingTopic
		} else {
			sel.Title = strings.NewReplacer("{topic1}", pair[0], "{topic2}", pair[1]).Replace(format.Template)
			sel.SearchTerm = pair[0]
		}

	case core.TypeGuide:
		topic := trendingTopic
		if topic == "" {
			topic = format.Topics[s.rng.Intn(len(format.Topics))]
		} else {
			sel.Trending = true
		}
		template := format.Templates[s.rng.Intn(len(format.Templates))]
		sel.Title = strings.ReplaceAll(template, "{topic}", topic)
		sel.SearchTerm = topic
	}

	return sel
}
