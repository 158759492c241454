package handlers

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"gamepress/internal/core"
)

// essayTypes are the opinion formats the daily cadence rotates through.
var essayTypes = []core.ArticleType{core.TypeAnalysis, core.TypeComparison, core.TypeGuide}

// NewDailyOpinionCmd creates the daily-opinion command: one essay-style
// article of a random non-top5 type.
func NewDailyOpinionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily-opinion",
		Short: "Generate the daily opinion article (analysis, comparison or guide)",
		RunE: func(cmd *cobra.Command, args []string) error {
			articleType := essayTypes[rand.Intn(len(essayTypes))]
			return runGenerate(cmd.Context(), string(articleType), "")
		},
	}
}

// NewWeeklyTop5Cmd creates the weekly-top5 command.
func NewWeeklyTop5Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly-top5",
		Short: "Generate the weekly TOP 5 ranking article",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), string(core.TypeTop5), "")
		},
	}
}

// NewBreakingNewsCmd creates the breaking-news command that refreshes the
// ticker.
func NewBreakingNewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breaking-news",
		Short: "Generate a breaking news item and activate it",
		Long: `Search the web for the latest mobile gaming headlines, generate a short
ticker item from them and activate it, deactivating the previous one in the
same batched write.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBreakingNews(cmd.Context())
		},
	}
}

func runBreakingNews(ctx context.Context) error {
	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	pipeline, err := newPipeline(st)
	if err != nil {
		return err
	}

	news, err := pipeline.RunBreaking(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Breaking news active: %q\n", news.Title)
	return nil
}
