package generate

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamepress/internal/assemble"
	"gamepress/internal/core"
	"gamepress/internal/images"
	"gamepress/internal/llm"
	"gamepress/internal/photos"
	"gamepress/internal/research"
	"gamepress/internal/store"
	"gamepress/internal/topics"
)

func TestTop5PromptStructure(t *testing.T) {
	prompt := articlePrompt("TOP 5 Mejores Juegos RPG para Android marzo 2025", true, "contexto", 1800, 2200)

	assert.Equal(t, 5, strings.Count(prompt, "[IMG_PLACEHOLDER_1:")+
		strings.Count(prompt, "[IMG_PLACEHOLDER_2:")+
		strings.Count(prompt, "[IMG_PLACEHOLDER_3:")+
		strings.Count(prompt, "[IMG_PLACEHOLDER_4:")+
		strings.Count(prompt, "[IMG_PLACEHOLDER_5:"))
	// Intro + five numbered game sections + conclusion.
	assert.Equal(t, 7, strings.Count(prompt, "\n## "))
	assert.Contains(t, prompt, "## 1. [Nombre del Juego 1]")
	assert.Contains(t, prompt, "## 5. [Nombre del Juego 5]")
	assert.Contains(t, prompt, "Longitud: 1800-2200 palabras")
	assert.Contains(t, prompt, "contexto")
}

func TestEssayPromptStructure(t *testing.T) {
	prompt := articlePrompt("Análisis: Monetización en Gaming Móvil 2025", false, "", 1800, 2200)

	assert.Contains(t, prompt, "[IMG_PLACEHOLDER_3: nombre de un juego mencionado como ejemplo]")
	assert.NotContains(t, prompt, "IMG_PLACEHOLDER_4")
	assert.Contains(t, prompt, "El FOCO está en desarrollar el TEMA")
}

func TestParseBreaking(t *testing.T) {
	raw := `TÍTULO: Genshin Impact anuncia su mayor actualización
---
El estudio confirmó hoy la versión 5.0 con un nuevo continente.

Los jugadores podrán acceder desde el próximo martes.`

	title, content := ParseBreaking(raw)
	assert.Equal(t, "Genshin Impact anuncia su mayor actualización", title)
	assert.Contains(t, content, "versión 5.0")
	assert.Contains(t, content, "próximo martes")
	assert.False(t, strings.HasSuffix(content, "\n"))
}

func TestParseBreakingFallbackTitle(t *testing.T) {
	title, content := ParseBreaking("---\nSolo contenido, sin título.")
	assert.Equal(t, FallbackBreakingTitle, title)
	assert.Equal(t, "Solo contenido, sin título.", content)

	title, content = ParseBreaking("")
	assert.Equal(t, FallbackBreakingTitle, title)
	assert.Empty(t, content)
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC)
}

func newTestPipeline(gen *llm.MockGenerator, st store.Store) *Pipeline {
	photoMock := photos.NewMockProvider()
	photoMock.Photos = []core.Photo{{ID: "p", Regular: "https://img/hero", Small: "https://img/small"}}
	finder := photos.NewSeededFinder(photoMock, 30, "landscape", 1)

	resolver := images.NewResolver(0, images.NewCuratedStrategy(finder))

	return NewPipeline(
		topics.NewSeededSelector(1, fixedNow),
		research.New(gen),
		NewGenerator(gen, 1800, 2200),
		resolver,
		finder,
		assemble.NewSeeded(1, fixedNow),
		st,
	)
}

const generatedTop5 = `## Introducción
Un repaso a lo mejor del género.

## 1. Clash Royale
[IMG_PLACEHOLDER_1: Clash Royale]

Análisis del juego.

## 2. PUBG Mobile
[IMG_PLACEHOLDER_2: PUBG Mobile]

Más análisis.

## Conclusión
Cierre del artículo.`

func TestPipelineRunPublishesArticle(t *testing.T) {
	gen := &llm.MockGenerator{Responses: []string{
		"contexto de tendencias", // topic research
		generatedTop5,            // article content
	}}
	mem := store.NewMemory()
	p := newTestPipeline(gen, mem)

	article, err := p.Run(context.Background(), PipelineOptions{ForceType: "top5"})
	require.NoError(t, err)

	assert.Equal(t, "top5", article.Type)
	assert.Equal(t, core.StatusPublished, article.Status)
	assert.NotEmpty(t, article.ID)
	assert.NotEmpty(t, article.Slug)
	assert.Contains(t, article.Title, "TOP 5 Mejores Juegos")
	assert.Equal(t, "https://img/hero", article.Image)
	assert.Contains(t, assemble.Authors, article.Author)
	assert.GreaterOrEqual(t, article.Rating, 4.0)
	assert.LessOrEqual(t, article.Rating, 5.0)
	assert.GreaterOrEqual(t, article.ReadTime, 1)
	assert.True(t, strings.HasSuffix(article.Excerpt, "..."))

	// All image markers were resolved before saving.
	assert.Empty(t, images.FindPlaceholders(article.Content))

	saved, err := mem.GetArticle(context.Background(), article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.Slug, saved.Slug)
}

func TestPipelineCategoryOverride(t *testing.T) {
	gen := &llm.MockGenerator{Responses: []string{"contexto", generatedTop5}}
	p := newTestPipeline(gen, store.NewMemory())

	article, err := p.Run(context.Background(), PipelineOptions{ForceType: "top5", Category: "Roguelikes"})
	require.NoError(t, err)
	assert.Equal(t, "Roguelikes", article.Category)
}

func TestPipelineGenerationFailureAborts(t *testing.T) {
	gen := &llm.MockGenerator{Err: assert.AnError}
	mem := store.NewMemory()
	p := newTestPipeline(gen, mem)

	_, err := p.Run(context.Background(), PipelineOptions{ForceType: "top5"})
	require.Error(t, err)

	published, err := mem.ListPublishedArticles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, published)
}

func TestRunBreakingLeavesExactlyOneActive(t *testing.T) {
	mem := store.NewMemory()

	for i := 0; i < 3; i++ {
		gen := &llm.MockGenerator{Responses: []string{
			"noticias encontradas",
			"TÍTULO: Noticia " + strings.Repeat("!", i+1) + "\n---\nContenido de la noticia.",
		}}
		p := newTestPipeline(gen, mem)

		news, err := p.RunBreaking(context.Background())
		require.NoError(t, err)
		assert.True(t, news.Active)
		assert.False(t, news.Read)
		assert.Equal(t, "breaking", news.Type)
	}

	all, err := mem.ListBreakingNews(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)

	active := 0
	for _, n := range all {
		if n.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)

	current, err := mem.ActiveBreakingNews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Noticia !!!", current.Title)
}
