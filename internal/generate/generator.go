package generate

import (
	"context"
	"fmt"
	"strings"

	"gamepress/internal/core"
	"gamepress/internal/llm"
)

// Generator produces article and ticker text from a TextGenerator.
type Generator struct {
	gen     llm.TextGenerator
	wordMin int
	wordMax int
}

func NewGenerator(gen llm.TextGenerator, wordMin, wordMax int) *Generator {
	if wordMin <= 0 {
		wordMin = 1800
	}
	if wordMax <= 0 {
		wordMax = 2200
	}
	return &Generator{gen: gen, wordMin: wordMin, wordMax: wordMax}
}

// Article generates the full body for an article. A generation failure is
// fatal for the run; there is nothing to publish without content.
func (g *Generator) Article(ctx context.Context, title string, articleType core.ArticleType, trendsInfo string) (string, error) {
	prompt := articlePrompt(title, articleType == core.TypeTop5, trendsInfo, g.wordMin, g.wordMax)

	content, err := g.gen.Generate(ctx, prompt, llm.Options{
		SystemPrompt: systemPrompt,
		Temperature:  0.7,
		TopP:         0.95,
		TopK:         64,
		MaxTokens:    8192,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate article content: %w", err)
	}
	return content, nil
}

// Breaking generates the short ticker text in the TÍTULO/--- format.
func (g *Generator) Breaking(ctx context.Context, trendsInfo string) (string, error) {
	content, err := g.gen.Generate(ctx, breakingPrompt(trendsInfo), llm.Options{
		Temperature: 0.7,
		TopP:        0.95,
		TopK:        40,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate breaking news: %w", err)
	}
	return content, nil
}

// FallbackBreakingTitle is used when the generated ticker text carries no
// TÍTULO line.
const FallbackBreakingTitle = "Última Hora en Gaming Móvil"

// ParseBreaking splits generated ticker text into title and body. The title
// comes from the TÍTULO: line; the body is everything after the ---
// separator. A missing title falls back to FallbackBreakingTitle.
func ParseBreaking(raw string) (title, content string) {
	var body strings.Builder
	foundSeparator := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "TÍTULO:"):
			title = strings.TrimSpace(strings.TrimPrefix(line, "TÍTULO:"))
		case line == "---":
			foundSeparator = true
		case foundSeparator && line != "":
			body.WriteString(line)
			body.WriteString("\n\n")
		}
	}

	if title == "" {
		title = FallbackBreakingTitle
	}
	return title, strings.TrimSpace(body.String())
}
