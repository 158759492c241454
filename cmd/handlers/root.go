package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gamepress/internal/config"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gamepress",
		Short: "gamepress generates and publishes mobile gaming content",
		Long: `gamepress is the content backend for a mobile gaming site: it generates
full articles with an LLM, resolves real Play Store game cards and stock
photography into them, maintains a breaking news ticker, manages newsletter
subscribers and serves the admin HTTP API.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gamepress.yaml)")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewDailyOpinionCmd())
	rootCmd.AddCommand(NewWeeklyTop5Cmd())
	rootCmd.AddCommand(NewBreakingNewsCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewScheduleCmd())
	rootCmd.AddCommand(NewNewsletterCmd())
	rootCmd.AddCommand(NewConfigInitCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}
