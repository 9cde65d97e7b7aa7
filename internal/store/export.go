// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"

	"github.com/pdiddy/arxiv-daily/pkg/types"
)

// Snapshot is a full copy of every persisted table, in stored order.
type Snapshot struct {
	Papers      []types.Paper        `json:"papers" yaml:"papers"`
	Authors     []types.AuthorLink   `json:"authors" yaml:"authors"`
	Categories  []types.CategoryLink `json:"categories" yaml:"categories"`
	Enrichments []types.Enrichment   `json:"enrichments" yaml:"enrichments"`
	Runs        []types.RunRecord    `json:"runs" yaml:"runs"`
}

// Export reads every table for serialization by the export command.
func (s *Store) Export(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Papers, err = s.LoadPapers(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Authors, err = s.LoadAuthors(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Categories, err = s.LoadCategories(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Enrichments, err = s.LoadEnrichments(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Runs, err = s.ListRuns(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
