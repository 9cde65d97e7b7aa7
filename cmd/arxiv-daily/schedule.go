// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/arxiv-daily/internal/enrich"
	"github.com/pdiddy/arxiv-daily/internal/feed"
	"github.com/pdiddy/arxiv-daily/internal/ingest"
	"github.com/pdiddy/arxiv-daily/internal/store"
	"github.com/pdiddy/arxiv-daily/pkg/types"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run ingestion and enrichment on a recurring schedule",
	Long: `Schedule starts a long-running process that executes an ingestion run
followed by an enrichment pass on a cron schedule (default: daily at 06:00).
Runs never overlap: each pass finishes before the next can start. The process
stops cleanly on SIGINT or SIGTERM.`,
	RunE: runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	if expr, _ := cmd.Flags().GetString("cron"); expr != "" {
		cfg.Schedule.Cron = expr
	}

	logger := newLogger()
	defer logger.Sync()

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.Schedule.Cron, func() {
		if err := scheduledPass(cfg, logger); err != nil {
			logger.Error("scheduled pass failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cfg.Schedule.Cron, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("scheduler started", zap.String("cron", cfg.Schedule.Cron))
	scheduler.Start()
	<-ctx.Done()

	<-scheduler.Stop().Done()
	logger.Info("scheduler stopped")
	return nil
}

// scheduledPass runs one ingestion run and one enrichment pass. The store is
// opened per pass so a failed day never poisons the next.
func scheduledPass(cfg types.PipelineConfig, logger *zap.Logger) error {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	client := feed.NewClient(cfg.Feed, logger.Named("feed"))
	pipe := ingest.New(client, st, cfg.Feed, logger.Named("ingest"))

	summary, err := pipe.Run(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	logger.Info("scheduled ingestion finished",
		zap.Int("new_papers", summary.NewPapers),
		zap.Int("total_papers", summary.TotalPapers))

	if _, err := enrich.Run(ctx, st, time.Now().UTC(), logger.Named("enrich")); err != nil {
		return err
	}
	return nil
}

func init() {
	scheduleCmd.Flags().String("cron", "", `cron expression for daily passes (default "0 6 * * *")`)

	rootCmd.AddCommand(scheduleCmd)
}
