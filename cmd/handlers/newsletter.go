package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gamepress/internal/newsletter"
)

// NewNewsletterCmd creates the newsletter command group for subscriber
// administration from the terminal.
func NewNewsletterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newsletter",
		Short: "Manage newsletter subscribers",
	}

	cmd.AddCommand(newSubscribeCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newExportCmd())
	return cmd
}

func newSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <email> [name]",
		Short: "Subscribe an email address",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 1 {
				name = args[1]
			}
			return runSubscribe(cmd.Context(), args[0], name)
		},
	}
}

func runSubscribe(ctx context.Context, address, name string) error {
	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	res := newNewsletterService(st).Subscribe(ctx, address, name)
	fmt.Println(res.Message)
	if !res.Success {
		return fmt.Errorf("subscription rejected")
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show subscriber counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context())
		},
	}
}

func runStats(ctx context.Context) error {
	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	stats, err := newsletter.New(st, nil).Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Subscribers: %d total, %d active\n", stats.Total, stats.Active)
	return nil
}

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export subscribers as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write CSV to this file instead of stdout")
	return cmd
}

func runExport(ctx context.Context, out string) error {
	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	subs, err := st.ListSubscribers(ctx)
	if err != nil {
		return err
	}
	csv := newsletter.ExportCSV(subs)

	if out == "" {
		fmt.Print(csv)
		return nil
	}
	if err := os.WriteFile(out, []byte(csv), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Printf("Exported %d subscribers to %s\n", len(subs), out)
	return nil
}
