// Package research gathers current facts for the content generator by
// prompting a web-search-enabled model. Research is best effort: any failure
// degrades to an empty context and generation proceeds without it.
package research

import (
	"context"
	"fmt"
	"strings"

	"gamepress/internal/llm"
	"gamepress/internal/logger"
)

// Researcher runs search-grounded prompts against a text generator.
type Researcher struct {
	gen llm.TextGenerator
}

func New(gen llm.TextGenerator) *Researcher {
	return &Researcher{gen: gen}
}

const trendDiscoveryPrompt = `Analiza las tendencias actuales en gaming móvil y proporciona:

1. Los 3 temas MÁS TRENDING en juegos móviles en este momento (basado en búsquedas, discusiones, lanzamientos recientes)
2. Los 3 juegos móviles más populares/discutidos del momento
3. Controversias o debates actuales en la comunidad de gaming móvil
4. Novedades tecnológicas o mecánicas de juego que están ganando popularidad

Formato de respuesta:
TRENDING_TOPICS: [tema1, tema2, tema3]
HOT_GAMES: [juego1, juego2, juego3]
DEBATES: [debate1, debate2]
TECH: [novedad1, novedad2]

Sé específico y actual. Solo menciona cosas que estén realmente siendo tendencia AHORA.`

// DiscoverTrends asks for the labelled trending lists that
// topics.ExtractTrendingTopic parses. Returns "" on any error.
func (r *Researcher) DiscoverTrends(ctx context.Context) string {
	out, err := r.gen.Generate(ctx, trendDiscoveryPrompt, llm.Options{WebSearch: true})
	if err != nil {
		logger.Warn("trend discovery failed, continuing without trending data", "error", err)
		return ""
	}
	return out
}

// GamingTrends searches for verifiable, current information about topic.
// Returns "" on any error so the pipeline can generate without grounding.
func (r *Researcher) GamingTrends(ctx context.Context, topic string) string {
	prompt := fmt.Sprintf(`Busca información actualizada sobre "%s" en juegos móviles.
Necesito:
- Juegos móviles reales y populares relacionados con %s
- Tendencias actuales en gaming móvil sobre este tema
- Datos y estadísticas recientes
- Periféricos o accesorios relevantes si aplica

Proporciona información verificable y actual.`, topic, topic)

	logger.Info("searching web for topic context", "topic", topic)
	out, err := r.gen.Generate(ctx, prompt, llm.Options{WebSearch: true})
	if err != nil {
		logger.Warn("topic research failed, continuing without context", "topic", topic, "error", err)
		return ""
	}
	return strings.TrimSpace(out)
}

const breakingSearchPrompt = `Busca las últimas noticias de última hora sobre juegos móviles en las últimas 12 horas.
Necesito:
- Noticias recientes y relevantes (lanzamientos, actualizaciones, eventos, torneos)
- Información verificable y actual
- Juegos reales y populares
- Noticias de la industria del gaming móvil

Dame las 3 noticias más importantes y recientes.`

// BreakingNews searches for the latest mobile-gaming headlines. Returns ""
// on any error; the breaking-news generator still produces a ticker item.
func (r *Researcher) BreakingNews(ctx context.Context) string {
	out, err := r.gen.Generate(ctx, breakingSearchPrompt, llm.Options{WebSearch: true})
	if err != nil {
		logger.Warn("breaking news search failed, generating without search context", "error", err)
		return ""
	}
	return out
}
