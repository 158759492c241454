package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gamepress/internal/config"
	"gamepress/internal/generate"
)

// NewGenerateCmd creates the generate command that produces one article.
func NewGenerateCmd() *cobra.Command {
	var (
		articleType string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and publish one article",
		Long: `Generate one full article and publish it: pick a topic (optionally
steered by current trends), research it on the web, generate the content,
resolve Play Store game cards and stock photos into it, and save the
finished document.

Examples:
  # Random article type
  gamepress generate

  # Force a weekly TOP 5
  gamepress generate --type top5

  # Force the research/image category
  gamepress generate --type analysis --category "Cloud Gaming"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), articleType, category)
		},
	}

	cmd.Flags().StringVar(&articleType, "type", "", "article type: top5, analysis, comparison or guide (default random)")
	cmd.Flags().StringVar(&category, "category", "", "override the derived search category")

	return cmd
}

func runGenerate(ctx context.Context, articleType, category string) error {
	// The FORCE_ARTICLE_TYPE environment variable backs the --type flag so
	// schedulers can pin the type without CLI arguments.
	if articleType == "" {
		articleType = config.GetPipeline().ForceType
	}

	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	pipeline, err := newPipeline(st)
	if err != nil {
		return err
	}

	article, err := pipeline.Run(ctx, generate.PipelineOptions{
		ForceType: articleType,
		Category:  category,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Published %q (%s) as /%s\n", article.Title, article.Type, article.Slug)
	return nil
}
