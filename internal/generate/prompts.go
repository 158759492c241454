package generate

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an expert gaming journalist specializing in mobile games. Write detailed, accurate, and engaging articles in Spanish."

// top5Structure forces five numbered game sections, each carrying its own
// image marker, between an intro and a conclusion.
const top5Structure = `
ESTRUCTURA OBLIGATORIA (TOP 5 - Análisis detallado de cada juego):

## Introducción
Introducción atractiva y contextualizada (200-250 palabras)

## 1. [Nombre del Juego 1]
[IMG_PLACEHOLDER_1: nombre exacto del juego]

Análisis completo del juego (300-400 palabras):
- Descripción detallada y características principales
- Mecánicas de juego y jugabilidad
- Puntos fuertes y débiles
- Por qué destaca en su categoría
- Valoración y recomendación

## 2. [Nombre del Juego 2]
[IMG_PLACEHOLDER_2: nombre exacto del juego]

Análisis completo del juego (300-400 palabras):
- Descripción detallada y características principales
- Mecánicas de juego y jugabilidad
- Puntos fuertes y débiles
- Por qué destaca en su categoría
- Valoración y recomendación

## 3. [Nombre del Juego 3]
[IMG_PLACEHOLDER_3: nombre exacto del juego]

Análisis completo del juego (300-400 palabras):
- Descripción detallada y características principales
- Mecánicas de juego y jugabilidad
- Puntos fuertes y débiles
- Por qué destaca en su categoría
- Valoración y recomendación

## 4. [Nombre del Juego 4]
[IMG_PLACEHOLDER_4: nombre exacto del juego]

Análisis completo del juego (300-400 palabras)

## 5. [Nombre del Juego 5]
[IMG_PLACEHOLDER_5: nombre exacto del juego]

Análisis completo del juego (300-400 palabras)

## Conclusión
Conclusión con comparativa final y recomendaciones (200-250 palabras)
`

// essayStructure is shared by analysis, comparison and guide articles: the
// topic carries the article, games appear only as brief examples.
const essayStructure = `
ESTRUCTURA OBLIGATORIA (Artículo de opinión/análisis - El tema es lo importante):

## Introducción
Introducción atractiva sobre el tema principal (250-300 palabras)

## [Primer aspecto del tema]
Desarrollo del primer punto del tema (400-500 palabras)
Menciona 2-3 juegos como EJEMPLOS ilustrativos del punto
[IMG_PLACEHOLDER_1: nombre de un juego mencionado como ejemplo]

## [Segundo aspecto del tema]
Desarrollo del segundo punto del tema (400-500 palabras)
Menciona 2-3 juegos como EJEMPLOS ilustrativos del punto
[IMG_PLACEHOLDER_2: nombre de un juego mencionado como ejemplo]

## [Tercer aspecto del tema]
Desarrollo del tercer punto del tema (400-500 palabras)
Menciona 2-3 juegos como EJEMPLOS ilustrativos del punto
[IMG_PLACEHOLDER_3: nombre de un juego mencionado como ejemplo]

## Conclusión
Reflexión final sobre el tema y tendencias futuras (250-300 palabras)

IMPORTANTE:
- El FOCO está en desarrollar el TEMA, no en analizar juegos
- Los juegos son EJEMPLOS BREVES para ilustrar los puntos
- NO hagas análisis extensos de cada juego
- Menciona cada juego en 2-3 líneas máximo
- La ficha del juego ya proporciona la información detallada
`

// articlePrompt builds the full generation prompt: context from web
// research, the mandatory structure for the article type, and the image
// marker rules.
func articlePrompt(title string, isTop5 bool, trendsInfo string, wordMin, wordMax int) string {
	structure := essayStructure
	if isTop5 {
		structure = top5Structure
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `
Escribe un artículo profesional COMPLETO sobre juegos móviles con el título: "%s"

INFORMACIÓN DE CONTEXTO (extraída de búsquedas web actuales):
%s

REQUISITOS OBLIGATORIOS:
- Escribe en español de España
- Estilo periodístico profesional y detallado
- IMPORTANTE: El artículo debe estar COMPLETO, sin cortes ni texto incompleto
- Longitud: %d-%d palabras
- SOLO menciona juegos REALES que existan en las tiendas (App Store / Google Play)
- PROHIBIDO inventar juegos, desarrolladoras o datos falsos
- Usa SOLO información verificable de la búsqueda web proporcionada
- Incluye datos específicos y tendencias actuales
- Tono experto pero accesible

%s

CRÍTICO:
- Completa TODAS las secciones hasta el final
- La conclusión debe estar COMPLETA con párrafo final
- NO cortes el texto a mitad de oración
- Asegúrate de cerrar todas las ideas presentadas

IMÁGENES - MUY IMPORTANTE:
- Cada [IMG_PLACEHOLDER_X] debe tener el nombre EXACTO del juego mencionado
- Ejemplos CORRECTOS:
  * [IMG_PLACEHOLDER_1: Clash of Clans]
  * [IMG_PLACEHOLDER_2: PUBG Mobile]
  * [IMG_PLACEHOLDER_3: Genshin Impact]
- NO uses descripciones genéricas
- Cada imagen debe ser de un juego DIFERENTE
`, title, trendsInfo, wordMin, wordMax, structure)

	return sb.String()
}

// breakingPrompt asks for a single short ticker item in the TÍTULO/---
// format ParseBreaking understands.
func breakingPrompt(trendsInfo string) string {
	return fmt.Sprintf(`
Escribe UNA noticia de última hora sobre gaming móvil basándote en esta información de búsquedas web:

INFORMACIÓN ACTUAL:
%s

REQUISITOS:
- Formato de teletipo/noticia breve
- Máximo 200-250 palabras
- Título impactante y llamativo (máximo 80 caracteres)
- Contenido conciso y directo al punto
- Menciona SOLO juegos o eventos REALES y verificables
- Incluye datos específicos si están disponibles
- Estilo periodístico profesional pero dinámico

ESTRUCTURA:
1. Un título corto y potente
2. Un párrafo principal con la noticia (100-150 palabras)
3. Un párrafo adicional con contexto o detalles (50-100 palabras)

Responde en formato:
TÍTULO: [título aquí]
---
[contenido de la noticia]
`, trendsInfo)
}
