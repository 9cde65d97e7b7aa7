// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-daily/pkg/types"
)

func testStore(t *testing.T) (*Store, types.StoreConfig) {
	t.Helper()
	cfg := types.StoreConfig{DataDir: t.TempDir()}
	st, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st, cfg
}

func samplePaper(idVersion string) types.Paper {
	return types.Paper{
		PaperIDVersion:  idVersion,
		PaperID:         idVersion[:len(idVersion)-2],
		Version:         1,
		Title:           "A title",
		Summary:         "A summary.",
		Published:       time.Date(2026, 1, 15, 4, 0, 0, 0, time.UTC),
		Updated:         time.Date(2026, 1, 15, 4, 0, 0, 0, time.UTC),
		PrimaryCategory: "cs.LG",
		Categories:      []string{"cs.LG", "stat.ML"},
		PDFURL:          "http://arxiv.org/pdf/" + idVersion,
		AbsURL:          "http://arxiv.org/abs/" + idVersion,
	}
}

func TestStore_EmptyTablesLoadEmpty(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()

	papers, err := st.LoadPapers(ctx)
	require.NoError(t, err)
	assert.Empty(t, papers)

	authors, err := st.LoadAuthors(ctx)
	require.NoError(t, err)
	assert.Empty(t, authors)

	cats, err := st.LoadCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	enr, err := st.LoadEnrichments(ctx)
	require.NoError(t, err)
	assert.Empty(t, enr)

	runs, err := st.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()

	papers := []types.Paper{samplePaper("2501.00001v1"), samplePaper("2501.00002v1")}
	authors := []types.AuthorLink{
		{PaperIDVersion: "2501.00001v1", AuthorName: "Ada Lovelace", Affiliation: "Analytical Engines Ltd"},
		{PaperIDVersion: "2501.00002v1", AuthorName: "Charles Babbage"},
	}
	cats := []types.CategoryLink{
		{PaperIDVersion: "2501.00001v1", Category: "cs.LG"},
		{PaperIDVersion: "2501.00001v1", Category: "stat.ML"},
	}

	require.NoError(t, st.SaveSnapshot(ctx, papers, authors, cats))

	gotPapers, err := st.LoadPapers(ctx)
	require.NoError(t, err)
	assert.Equal(t, papers, gotPapers)

	gotAuthors, err := st.LoadAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, authors, gotAuthors)

	gotCats, err := st.LoadCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, cats, gotCats)
}

func TestStore_SnapshotIsFullRewrite(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()

	first := []types.Paper{samplePaper("2501.00001v1")}
	require.NoError(t, st.SaveSnapshot(ctx, first, nil, nil))

	second := []types.Paper{samplePaper("2501.00002v1"), samplePaper("2501.00003v1")}
	require.NoError(t, st.SaveSnapshot(ctx, second, nil, nil))

	got, err := st.LoadPapers(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	cfg := types.StoreConfig{DataDir: t.TempDir()}
	ctx := context.Background()

	st, err := Open(cfg)
	require.NoError(t, err)
	papers := []types.Paper{samplePaper("2501.00001v1")}
	require.NoError(t, st.SaveSnapshot(ctx, papers, nil, nil))
	require.NoError(t, st.Close())

	st, err = Open(cfg)
	require.NoError(t, err)
	defer st.Close()

	got, err := st.LoadPapers(ctx)
	require.NoError(t, err)
	assert.Equal(t, papers, got)
}

func TestLedger_AppendsWithoutDedup(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()

	run := types.RunRecord{
		RunAt:       time.Date(2026, 1, 15, 6, 0, 0, 0, time.UTC),
		NewPapers:   0,
		TotalPapers: 10,
	}
	require.NoError(t, st.AppendRun(ctx, run))
	require.NoError(t, st.AppendRun(ctx, run))

	runs, err := st.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2, "identical run rows must both persist")
	assert.Equal(t, run, runs[0])
	assert.Equal(t, run, runs[1])
}

func TestEnrichments_RoundTrip(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()

	rows := []types.Enrichment{
		{PaperIDVersion: "2501.00001v1", Tags: []string{"diffusion", "llm"}, HasCode: true},
		{PaperIDVersion: "2501.00002v1", Tags: nil, HasCode: false},
	}
	require.NoError(t, st.SaveEnrichments(ctx, rows))

	got, err := st.LoadEnrichments(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestStore_ExportCollectsAllTables(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()

	papers := []types.Paper{samplePaper("2501.00001v1")}
	authors := []types.AuthorLink{{PaperIDVersion: "2501.00001v1", AuthorName: "Ada Lovelace"}}
	cats := []types.CategoryLink{{PaperIDVersion: "2501.00001v1", Category: "cs.LG"}}
	require.NoError(t, st.SaveSnapshot(ctx, papers, authors, cats))
	require.NoError(t, st.SaveEnrichments(ctx, []types.Enrichment{{PaperIDVersion: "2501.00001v1", Tags: []string{"llm"}}}))
	require.NoError(t, st.AppendRun(ctx, types.RunRecord{RunAt: time.Date(2026, 1, 15, 6, 0, 0, 0, time.UTC), NewPapers: 1, TotalPapers: 1}))

	snap, err := st.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Papers, 1)
	assert.Len(t, snap.Authors, 1)
	assert.Len(t, snap.Categories, 1)
	assert.Len(t, snap.Enrichments, 1)
	assert.Len(t, snap.Runs, 1)
}
