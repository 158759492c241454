package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gamepress/internal/assemble"
	"gamepress/internal/config"
	"gamepress/internal/core"
	"gamepress/internal/generate"
	"gamepress/internal/newsletter"
)

// NewConfigInitCmd creates the config-init command that seeds the documents
// a fresh project needs.
func NewConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config-init",
		Short: "Seed default prompt configuration and subscriber groups",
		Long: `Write the default ai_config documents (article and breaking prompts plus
general generation settings) and the default subscriber groups. Existing
documents keep their values; only missing pieces are created.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd.Context())
		},
	}
}

func runConfigInit(ctx context.Context) error {
	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	for _, cfg := range generate.DefaultPromptConfigs() {
		if _, err := st.GetPromptConfig(ctx, cfg.ID); err == nil {
			continue
		}
		cfg := cfg
		if err := st.SetPromptConfig(ctx, &cfg); err != nil {
			return fmt.Errorf("failed to seed prompt config %q: %w", cfg.ID, err)
		}
		fmt.Printf("Seeded prompt config %q\n", cfg.ID)
	}

	if _, err := st.GetGeneralConfig(ctx); err != nil {
		aiCfg := config.GetAI()
		general := &core.GeneralConfig{
			PreferredModel:   aiCfg.Provider,
			GeminiModel:      aiCfg.Gemini.Model,
			HuggingFaceModel: aiCfg.HuggingFace.Model,
			UnsplashEnabled:  true,
			DefaultCategory:  "Análisis",
			DefaultAuthor:    assemble.Authors[0],
		}
		if err := st.SetGeneralConfig(ctx, general); err != nil {
			return fmt.Errorf("failed to seed general config: %w", err)
		}
		fmt.Println("Seeded general config")
	}

	if err := newsletter.New(st, nil).InitializeDefaultGroups(ctx); err != nil {
		return fmt.Errorf("failed to seed default groups: %w", err)
	}
	fmt.Println("Default subscriber groups ready")
	return nil
}
