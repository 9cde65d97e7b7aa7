// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-daily/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the run ledger",
	Long: `Runs prints the append-only run ledger: one row per completed ingestion
run with its timestamp, the number of papers it added, and the papers-table
size afterwards.`,
	RunE: runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-25s  %-10s  %s\n", "Run (UTC)", "New", "Total")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 45))
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-25s  %-10d  %d\n",
			r.RunAt.Format(time.RFC3339), r.NewPapers, r.TotalPapers)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
