// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"time"

	"github.com/pdiddy/arxiv-daily/pkg/types"
)

// AppendRun adds one audit row to the run ledger. The ledger is append-only
// and never deduplicated: every completed run adds exactly one row, even a
// run that found nothing.
func (s *Store) AppendRun(ctx context.Context, run types.RunRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_log (run_utc, new_papers, total_papers) VALUES (?, ?, ?)`,
		run.RunAt.UTC().Format(time.RFC3339), run.NewPapers, run.TotalPapers)
	if err != nil {
		return storageErr("appending run record", err)
	}
	return nil
}

// ListRuns returns the ledger in append order.
func (s *Store) ListRuns(ctx context.Context) ([]types.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_utc, new_papers, total_papers FROM run_log ORDER BY rowid`)
	if err != nil {
		return nil, storageErr("reading run ledger", err)
	}
	defer rows.Close()

	var runs []types.RunRecord
	for rows.Next() {
		var r types.RunRecord
		var runAt string
		if err := rows.Scan(&runAt, &r.NewPapers, &r.TotalPapers); err != nil {
			return nil, storageErr("scanning run row", err)
		}
		if r.RunAt, err = time.Parse(time.RFC3339, runAt); err != nil {
			return nil, storageErr("parsing stored run time", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("reading run ledger", err)
	}
	return runs, nil
}
