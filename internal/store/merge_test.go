// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-daily/pkg/types"
)

type row struct {
	k, v string
}

func rowKey(r row) string { return r.k }

func TestDedupeByKey_KeepsLastOccurrence(t *testing.T) {
	rows := []row{{"a", "1"}, {"b", "2"}, {"a", "3"}, {"c", "4"}}
	got := DedupeByKey(rows, rowKey)
	assert.Equal(t, []row{{"b", "2"}, {"a", "3"}, {"c", "4"}}, got)
}

func TestMergeByKey_NewWinsTies(t *testing.T) {
	existing := []row{{"a", "old-a"}, {"b", "old-b"}, {"c", "old-c"}}
	incoming := []row{{"b", "new-b"}}

	got := MergeByKey(existing, incoming, rowKey)
	assert.Equal(t, []row{{"a", "old-a"}, {"c", "old-c"}, {"b", "new-b"}}, got)
}

func TestMergeByKey_StableOrderForNonConflicting(t *testing.T) {
	existing := []row{{"a", "1"}, {"b", "2"}, {"c", "3"}}
	incoming := []row{{"d", "4"}, {"e", "5"}}

	got := MergeByKey(existing, incoming, rowKey)
	assert.Equal(t, []row{{"a", "1"}, {"b", "2"}, {"c", "3"}, {"d", "4"}, {"e", "5"}}, got)
}

func TestMergeByKey_DedupesIncomingFirst(t *testing.T) {
	incoming := []row{{"a", "first"}, {"a", "second"}, {"a", "third"}}

	got := MergeByKey(nil, incoming, rowKey)
	assert.Equal(t, []row{{"a", "third"}}, got)
}

func TestMergeByKey_Idempotent(t *testing.T) {
	existing := []row{{"a", "1"}, {"b", "2"}}
	incoming := []row{{"b", "2b"}, {"c", "3"}}

	once := MergeByKey(existing, incoming, rowKey)
	twice := MergeByKey(once, incoming, rowKey)
	assert.Equal(t, once, twice)
}

func TestMergeByKey_NoDuplicateKeys(t *testing.T) {
	existing := []row{{"a", "1"}, {"b", "2"}, {"a", "shadow"}}
	incoming := []row{{"a", "3"}, {"c", "4"}, {"c", "5"}}

	got := MergeByKey(existing, incoming, rowKey)
	seen := map[string]int{}
	for _, r := range got {
		seen[r.k]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "key %q appears %d times", k, n)
	}
}

func TestMergeByKey_PaperLastWriteWins(t *testing.T) {
	existing := []types.Paper{
		{PaperIDVersion: "2501.01234v1", PaperID: "2501.01234", Version: 1, Title: "Old title"},
	}
	incoming := []types.Paper{
		{PaperIDVersion: "2501.01234v1", PaperID: "2501.01234", Version: 1, Title: "Corrected title"},
	}

	got := MergeByKey(existing, incoming, types.Paper.Key)
	require.Len(t, got, 1)
	assert.Equal(t, "Corrected title", got[0].Title)
}

func TestMergeByKey_LinkRowsAccumulateByFullKey(t *testing.T) {
	// A revised author list does not remove old links: rows differing in any
	// component of the composite key coexist, identical rows stay unique.
	existing := []types.AuthorLink{
		{PaperIDVersion: "2501.01234v1", AuthorName: "Ada Lovelace"},
	}
	incoming := []types.AuthorLink{
		{PaperIDVersion: "2501.01234v1", AuthorName: "Ada Lovelace"},
		{PaperIDVersion: "2501.01234v1", AuthorName: "Ada Lovelace", Affiliation: "Analytical Engines Ltd"},
	}

	got := MergeByKey(existing, incoming, types.AuthorLink.Key)
	assert.Len(t, got, 2)
}
