// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-daily/internal/feed"
	"github.com/pdiddy/arxiv-daily/internal/ingest"
	"github.com/pdiddy/arxiv-daily/internal/store"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch today's new papers and merge them into the store",
	Long: `Ingest walks the feed in descending submission order, stopping at the
first entry published before today (UTC), normalizes the entries, and merges
them into the persisted tables with last-write-wins semantics. Re-running is
safe: merging the same entries again changes nothing. One audit row is
appended to the run ledger per run.`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	if query, _ := cmd.Flags().GetString("query"); query != "" {
		cfg.Feed.Query = query
	}
	if pageSize, _ := cmd.Flags().GetInt("page-size"); pageSize > 0 {
		cfg.Feed.PageSize = pageSize
	}
	if maxResults, _ := cmd.Flags().GetInt("max-results"); maxResults > 0 {
		cfg.Feed.MaxResults = maxResults
	}

	logger := newLogger()
	defer logger.Sync()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	client := feed.NewClient(cfg.Feed, logger.Named("feed"))
	pipe := ingest.New(client, st, cfg.Feed, logger.Named("ingest"))

	summary, err := pipe.Run(context.Background(), time.Now().UTC())
	if err != nil {
		return err
	}

	if summary.Fetched == 0 {
		fmt.Println("No new papers today (UTC).")
		return nil
	}
	fmt.Printf("Added %d papers; total now %d.\n", summary.NewPapers, summary.TotalPapers)
	return nil
}

func init() {
	ingestCmd.Flags().String("query", "", "feed search expression (default all:*)")
	ingestCmd.Flags().Int("page-size", 0, "entries per feed page (default 200)")
	ingestCmd.Flags().Int("max-results", 0, "total entry bound per run (default 2000)")

	rootCmd.AddCommand(ingestCmd)
}
