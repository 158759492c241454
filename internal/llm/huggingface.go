package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gamepress/internal/config"
)

// DefaultHuggingFaceModel is the quota-friendly fallback model.
const DefaultHuggingFaceModel = "Qwen/Qwen2.5-7B-Instruct"

// HuggingFaceClient generates text through the HuggingFace chat-completions
// inference API. It is used as a fallback when the Gemini quota is
// exhausted (USE_HUGGINGFACE=true).
type HuggingFaceClient struct {
	client  *http.Client
	baseURL string
	token   string
	cfg     config.HuggingFaceConfig
}

type hfChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type hfChatRequest struct {
	Model       string          `json:"model"`
	Messages    []hfChatMessage `json:"messages"`
	Temperature float32         `json:"temperature,omitempty"`
	MaxTokens   int32           `json:"max_tokens,omitempty"`
}

type hfChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewHuggingFaceClient creates a HuggingFace-backed TextGenerator.
func NewHuggingFaceClient(cfg config.HuggingFaceConfig) (*HuggingFaceClient, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("huggingface token is required. Set HUGGINGFACE_TOKEN")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultHuggingFaceModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co"
	}

	timeout := 120 * time.Second
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			timeout = d
		}
	}

	return &HuggingFaceClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		cfg:     cfg,
	}, nil
}

// Name returns the provider identifier.
func (c *HuggingFaceClient) Name() string { return "huggingface" }

// Generate runs a single chat completion. WebSearch is not supported by the
// inference API and is silently ignored; callers get an ungrounded answer.
func (c *HuggingFaceClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.cfg.Model
	}

	var messages []hfChatMessage
	if opts.SystemPrompt != "" {
		messages = append(messages, hfChatMessage{Role: "system", Content: opts.SystemPrompt})
	}
	messages = append(messages, hfChatMessage{Role: "user", Content: prompt})

	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}

	payload, err := json.Marshal(hfChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s/v1/chat/completions", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read huggingface response: %w", err)
	}

	var chatResp hfChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode huggingface response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if chatResp.Error.Message != "" {
			return "", fmt.Errorf("huggingface API error: %s", chatResp.Error.Message)
		}
		return "", fmt.Errorf("huggingface request failed with status %d", resp.StatusCode)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from model %s", model)
	}

	return chatResp.Choices[0].Message.Content, nil
}
