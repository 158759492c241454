package handlers

import (
	"context"
	"math/rand"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"gamepress/internal/logger"
)

// NewScheduleCmd creates the schedule command that runs the publication
// cadences in-process.
func NewScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the publication schedule (daily opinion, weekly TOP 5, breaking news)",
		Long: `Run all publication cadences on a cron schedule until interrupted:

  09:00 daily      one opinion article (analysis, comparison or guide)
  10:00 Tuesdays   the weekly TOP 5 ranking
  every 12 hours   a fresh breaking news item`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd.Context())
		},
	}
}

func runSchedule(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New()

	jobs := []struct {
		spec string
		name string
		run  func(context.Context) error
	}{
		{"0 9 * * *", "daily-opinion", func(ctx context.Context) error {
			articleType := essayTypes[rand.Intn(len(essayTypes))]
			return runGenerate(ctx, string(articleType), "")
		}},
		{"0 10 * * 2", "weekly-top5", func(ctx context.Context) error {
			return runGenerate(ctx, "top5", "")
		}},
		{"0 */12 * * *", "breaking-news", runBreakingNews},
	}

	for _, job := range jobs {
		job := job
		_, err := c.AddFunc(job.spec, func() {
			logger.Info("scheduled job starting", "job", job.name)
			if err := job.run(ctx); err != nil {
				logger.Error("scheduled job failed", err, "job", job.name)
				return
			}
			logger.Info("scheduled job finished", "job", job.name)
		})
		if err != nil {
			return err
		}
	}

	logger.Info("scheduler started", "jobs", len(jobs))
	c.Start()
	<-ctx.Done()

	// Let an in-flight job finish before exiting.
	<-c.Stop().Done()
	return nil
}
