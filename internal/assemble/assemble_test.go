package assemble

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedNow() time.Time {
	return time.Date(2025, time.March, 2, 9, 5, 0, 0, time.UTC)
}

func TestSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"TOP 5 Mejores Juegos RPG para Android marzo 2025", "top-5-mejores-juegos-rpg-para-android-marzo-2025"},
		{"Análisis: Monetización en Gaming Móvil 2025", "analisis-monetizacion-en-gaming-movil-2025"},
		{"Comparativa: Android vs iOS", "comparativa-android-vs-ios"},
		{"  ¿Qué pasa?  ", "que-pasa"},
		{"Ñoño --- épico", "nono-epico"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.title), "title %q", tt.title)
	}
}

func TestSlugCharset(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	titles := []string{
		"Domina la Configuración Gráfica",
		"Última Hora: ¡Grandes Ofertas!",
		"Guía 100% completa (edición 2025)",
	}
	for _, title := range titles {
		slug := Slug(title)
		assert.True(t, valid.MatchString(slug), "slug %q from %q", slug, title)
	}
}

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("palabra ", 60)
	e := Excerpt(long)
	assert.True(t, strings.HasSuffix(e, "..."))
	assert.LessOrEqual(t, len([]rune(e)), 203)

	withTags := `## Título

<img src="https://example/x.png" alt="x" /> El **mejor** juego del año.`
	e = Excerpt(withTags)
	assert.NotContains(t, e, "<img")
	assert.NotContains(t, e, "##")
	assert.NotContains(t, e, "**")
	assert.True(t, strings.HasPrefix(e, "Título El mejor juego"))
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 0, ReadTime(""))
	assert.Equal(t, 1, ReadTime("una frase corta"))
	assert.Equal(t, 1, ReadTime(strings.Repeat("palabra ", 200)))
	assert.Equal(t, 2, ReadTime(strings.Repeat("palabra ", 201)))
	assert.Equal(t, 10, ReadTime(strings.Repeat("palabra ", 2000)))
}

func TestRatingBoundsAndPrecision(t *testing.T) {
	a := NewSeeded(1, fixedNow)
	for i := 0; i < 200; i++ {
		r := a.Rating()
		assert.GreaterOrEqual(t, r, 4.0)
		assert.LessOrEqual(t, r, 5.0)
		// One decimal place.
		assert.InDelta(t, r, float64(int(r*10+0.5))/10, 1e-9)
	}
}

func TestAuthorFromPool(t *testing.T) {
	a := NewSeeded(2, fixedNow)
	for i := 0; i < 50; i++ {
		assert.Contains(t, Authors, a.Author())
	}
}

func TestFeaturedIsMinority(t *testing.T) {
	a := NewSeeded(3, fixedNow)
	featured := 0
	for i := 0; i < 1000; i++ {
		if a.Featured() {
			featured++
		}
	}
	assert.Greater(t, featured, 200)
	assert.Less(t, featured, 400)
}

func TestPublishDate(t *testing.T) {
	a := NewSeeded(4, fixedNow)
	assert.Equal(t, "2 de marzo de 2025", a.PublishDate())
	assert.Equal(t, "2 de marzo de 2025, 09:05", a.PublishDateTime())
}
