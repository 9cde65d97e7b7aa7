// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest orchestrates one ingestion run: scan the feed to the
// boundary date, normalize entries, merge into the persisted tables, and
// record the outcome in the run ledger.
package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/arxiv-daily/internal/feed"
	"github.com/pdiddy/arxiv-daily/internal/store"
	"github.com/pdiddy/arxiv-daily/pkg/types"
)

// Pipeline wires the fetcher, scanner, and merge store for ingestion runs.
// Runs are strictly sequential; two overlapping runs against one data
// directory are not supported.
type Pipeline struct {
	client *feed.Client
	store  *store.Store
	cfg    types.FeedConfig
	logger *zap.Logger
}

// New returns a Pipeline over the given client and store.
func New(client *feed.Client, st *store.Store, cfg types.FeedConfig, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{client: client, store: st, cfg: cfg, logger: logger}
}

// Summary holds the counts from one ingestion run.
type Summary struct {
	// Fetched is the number of raw entries the scan yielded.
	Fetched int

	// NewPapers is the number of distinct paper versions among them.
	NewPapers int

	// TotalPapers is the papers-table size after the merge.
	TotalPapers int
}

// Run executes one ingestion run with the given boundary date. The scan,
// normalization, and in-memory merge all complete before anything is
// written, so a failed run leaves the persisted tables untouched. Every
// completed run appends one ledger row, including runs that found nothing.
func (p *Pipeline) Run(ctx context.Context, boundary time.Time) (Summary, error) {
	scanner := feed.NewScanner(p.client, p.cfg.PageSize, p.cfg.MaxResults)

	var (
		newPapers  []types.Paper
		newAuthors []types.AuthorLink
		newCats    []types.CategoryLink
		fetched    int
	)
	for e, err := range scanner.All(ctx, boundary) {
		if err != nil {
			return Summary{}, err
		}
		paper, authors, cats, err := feed.Normalize(e)
		if err != nil {
			return Summary{}, err
		}
		fetched++
		newPapers = append(newPapers, paper)
		newAuthors = append(newAuthors, authors...)
		newCats = append(newCats, cats...)
	}
	p.logger.Info("scan complete", zap.Time("boundary", boundary), zap.Int("entries", fetched))

	existingPapers, err := p.store.LoadPapers(ctx)
	if err != nil {
		return Summary{}, err
	}

	now := time.Now().UTC()
	if len(newPapers) == 0 {
		if err := p.store.AppendRun(ctx, types.RunRecord{RunAt: now, TotalPapers: len(existingPapers)}); err != nil {
			return Summary{}, err
		}
		return Summary{TotalPapers: len(existingPapers)}, nil
	}

	existingAuthors, err := p.store.LoadAuthors(ctx)
	if err != nil {
		return Summary{}, err
	}
	existingCats, err := p.store.LoadCategories(ctx)
	if err != nil {
		return Summary{}, err
	}

	newPapers = store.DedupeByKey(newPapers, types.Paper.Key)
	mergedPapers := store.MergeByKey(existingPapers, newPapers, types.Paper.Key)
	mergedAuthors := store.MergeByKey(existingAuthors, newAuthors, types.AuthorLink.Key)
	mergedCats := store.MergeByKey(existingCats, newCats, types.CategoryLink.Key)

	if err := p.store.SaveSnapshot(ctx, mergedPapers, mergedAuthors, mergedCats); err != nil {
		return Summary{}, err
	}

	run := types.RunRecord{RunAt: now, NewPapers: len(newPapers), TotalPapers: len(mergedPapers)}
	if err := p.store.AppendRun(ctx, run); err != nil {
		return Summary{}, err
	}

	p.logger.Info("ingestion run complete",
		zap.Int("new_papers", len(newPapers)),
		zap.Int("total_papers", len(mergedPapers)),
		zap.Int("author_links", len(mergedAuthors)),
		zap.Int("category_links", len(mergedCats)))

	return Summary{Fetched: fetched, NewPapers: len(newPapers), TotalPapers: len(mergedPapers)}, nil
}
