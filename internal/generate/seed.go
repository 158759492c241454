package generate

import "gamepress/internal/core"

// DefaultPromptConfigs returns the ai_config documents the admin panel edits,
// seeded with the built-in prompts so a fresh project starts with working
// values.
func DefaultPromptConfigs() []core.PromptConfig {
	return []core.PromptConfig{
		{
			ID:                 "article",
			Name:               "Artículos",
			Type:               "article",
			SystemPrompt:       systemPrompt,
			UserPromptTemplate: articlePrompt("{TITLE}", false, "{TRENDS}", 1800, 2200),
			Temperature:        0.7,
			MaxTokens:          8192,
			Enabled:            true,
		},
		{
			ID:                 "breaking",
			Name:               "Última hora",
			Type:               "breaking",
			SystemPrompt:       systemPrompt,
			UserPromptTemplate: breakingPrompt("{TRENDS}"),
			Temperature:        0.7,
			MaxTokens:          1024,
			Enabled:            true,
		},
	}
}
