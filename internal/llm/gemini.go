package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"gamepress/internal/config"
)

const (
	// DefaultGeminiModel is used when neither the options nor the config
	// name a model.
	DefaultGeminiModel = "gemini-2.0-flash-exp"
)

// GeminiClient generates text through the Gemini API.
type GeminiClient struct {
	client  *genai.Client
	cfg     config.GeminiConfig
	timeout time.Duration
}

// NewGeminiClient creates a Gemini-backed TextGenerator.
func NewGeminiClient(cfg config.GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY or ai.gemini.api_key in the config file")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	timeout := 60 * time.Second
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			timeout = d
		}
	}

	return &GeminiClient{client: client, cfg: cfg, timeout: timeout}, nil
}

// Name returns the provider identifier.
func (c *GeminiClient) Name() string { return "gemini" }

// Generate runs a single completion. When opts.WebSearch is set the Google
// Search tool is attached so the model can ground its answer; generation
// config and tools are mutually exclusive in the API, so sampling options
// are only sent on plain completions.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := opts.Model
	if model == "" {
		model = c.cfg.Model
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  genai.RoleUser,
	}}

	genCfg := &genai.GenerateContentConfig{}
	if opts.SystemPrompt != "" {
		genCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: opts.SystemPrompt}},
		}
	}
	if opts.WebSearch {
		genCfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else {
		temperature := opts.Temperature
		if temperature == 0 {
			temperature = c.cfg.Temperature
		}
		topP := opts.TopP
		if topP == 0 {
			topP = c.cfg.TopP
		}
		topK := opts.TopK
		if topK == 0 {
			topK = c.cfg.TopK
		}
		maxTokens := opts.MaxTokens
		if maxTokens == 0 {
			maxTokens = c.cfg.MaxTokens
		}
		genCfg.Temperature = genai.Ptr(temperature)
		genCfg.TopP = genai.Ptr(topP)
		genCfg.TopK = genai.Ptr(topK)
		genCfg.MaxOutputTokens = maxTokens
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", model)
	}
	return text, nil
}
