// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-daily/internal/enrich"
	"github.com/pdiddy/arxiv-daily/internal/store"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Derive topic tags for papers published today",
	Long: `Enrich reads the persisted papers published today (UTC), derives topic
tags and a has-code signal from each title and abstract, and upserts the rows
into the enrichment table. Re-running replaces the rows for the same papers;
nothing accumulates. An empty store or a day with no papers is a no-op.`,
	RunE: runEnrich,
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	logger := newLogger()
	defer logger.Sync()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := enrich.Run(context.Background(), st, time.Now().UTC(), logger.Named("enrich"))
	if err != nil {
		return err
	}

	switch {
	case summary.Papers == 0:
		fmt.Println("No papers yet.")
	case summary.Enriched == 0:
		fmt.Println("Nothing to enrich today.")
	default:
		fmt.Printf("Enriched %d items.\n", summary.Enriched)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}
