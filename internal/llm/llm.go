package llm

import (
	"context"

	"gamepress/internal/config"
)

// Options controls a single text-generation call. Zero values fall back to
// the provider's configured defaults.
type Options struct {
	Model        string
	SystemPrompt string
	Temperature  float32
	TopP         float32
	TopK         float32
	MaxTokens    int32
	WebSearch    bool // Ask the provider to ground the answer with web search, if supported.
}

// TextGenerator is the single capability the pipeline needs from an AI
// text service: prompt in, text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	Name() string
}

// NewFromConfig builds the generator selected by ai.provider.
func NewFromConfig(cfg config.AI) (TextGenerator, error) {
	if cfg.Provider == "huggingface" {
		return NewHuggingFaceClient(cfg.HuggingFace)
	}
	return NewGeminiClient(cfg.Gemini)
}
