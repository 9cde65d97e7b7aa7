// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/arxiv-daily/internal/store"
	"github.com/pdiddy/arxiv-daily/pkg/types"
)

// Summary holds the outcome of one enrichment pass.
type Summary struct {
	// Papers is the persisted papers-table size at pass time.
	Papers int

	// Enriched is the number of rows computed (and upserted) by this pass.
	Enriched int
}

// Run reads the persisted papers published on day (UTC calendar date),
// computes tags and the code signal for each, and upserts the rows into the
// enrichment table with last-write-wins-by-key semantics. An empty papers
// table or a day with no papers is a no-op success, not an error.
func Run(ctx context.Context, st *store.Store, day time.Time, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	papers, err := st.LoadPapers(ctx)
	if err != nil {
		return Summary{}, err
	}
	if len(papers) == 0 {
		logger.Info("no papers persisted yet, skipping enrichment")
		return Summary{}, nil
	}

	target := dateOnly(day)
	var rows []types.Enrichment
	for _, p := range papers {
		if !dateOnly(p.Published).Equal(target) {
			continue
		}
		text := p.Title + "\n\n" + p.Summary
		rows = append(rows, types.Enrichment{
			PaperIDVersion: p.PaperIDVersion,
			Tags:           Tags(text),
			HasCode:        HasCode(text),
		})
	}
	if len(rows) == 0 {
		logger.Info("no papers published on target day", zap.Time("day", target))
		return Summary{Papers: len(papers)}, nil
	}

	existing, err := st.LoadEnrichments(ctx)
	if err != nil {
		return Summary{}, err
	}
	merged := store.MergeByKey(existing, rows, types.Enrichment.Key)
	if err := st.SaveEnrichments(ctx, merged); err != nil {
		return Summary{}, err
	}

	logger.Info("enrichment pass complete",
		zap.Time("day", target),
		zap.Int("enriched", len(rows)),
		zap.Int("table_size", len(merged)))
	return Summary{Papers: len(papers), Enriched: len(rows)}, nil
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
