// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() Entry {
	return Entry{
		ID:              "http://arxiv.org/abs/2501.01234v2",
		Title:           "  Efficient Attention at Scale \n",
		Summary:         " We study attention. ",
		Published:       "2026-01-15T04:00:00Z",
		Updated:         "2026-01-16T09:00:00Z",
		DOI:             "10.1000/xyz123",
		JournalRef:      "J. Mach. Learn. Res. 1 (2026)",
		Comment:         "10 pages, 3 figures",
		PrimaryCategory: &Category{Term: "cs.LG"},
		Links: []Link{
			{Href: "http://arxiv.org/abs/2501.01234v2", Rel: "alternate", Type: "text/html"},
			{Href: "http://arxiv.org/pdf/2501.01234v2", Rel: "related", Type: "application/pdf"},
		},
		Categories: []Category{{Term: "cs.LG"}, {Term: "stat.ML"}},
		Authors: []Author{
			{Name: "Ada Lovelace", Affiliation: "Analytical Engines Ltd"},
			{Name: "Charles Babbage"},
		},
	}
}

func TestNormalize_ParsesVersionedID(t *testing.T) {
	paper, _, _, err := Normalize(sampleEntry())
	require.NoError(t, err)

	assert.Equal(t, "2501.01234v2", paper.PaperIDVersion)
	assert.Equal(t, "2501.01234", paper.PaperID)
	assert.Equal(t, 2, paper.Version)
}

func TestNormalize_Fields(t *testing.T) {
	paper, authors, cats, err := Normalize(sampleEntry())
	require.NoError(t, err)

	assert.Equal(t, "Efficient Attention at Scale", paper.Title)
	assert.Equal(t, "We study attention.", paper.Summary)
	assert.Equal(t, time.Date(2026, 1, 15, 4, 0, 0, 0, time.UTC), paper.Published)
	assert.Equal(t, time.Date(2026, 1, 16, 9, 0, 0, 0, time.UTC), paper.Updated)
	assert.Equal(t, "10.1000/xyz123", paper.DOI)
	assert.Equal(t, "cs.LG", paper.PrimaryCategory)
	assert.Equal(t, []string{"cs.LG", "stat.ML"}, paper.Categories)
	assert.Equal(t, "http://arxiv.org/pdf/2501.01234v2", paper.PDFURL)
	assert.Equal(t, "http://arxiv.org/abs/2501.01234v2", paper.AbsURL)

	require.Len(t, authors, 2)
	assert.Equal(t, "Ada Lovelace", authors[0].AuthorName)
	assert.Equal(t, "Analytical Engines Ltd", authors[0].Affiliation)
	assert.Equal(t, "", authors[1].Affiliation, "affiliation is independently optional per author")
	for _, a := range authors {
		assert.Equal(t, "2501.01234v2", a.PaperIDVersion)
	}

	require.Len(t, cats, 2)
	assert.Equal(t, "cs.LG", cats[0].Category)
	assert.Equal(t, "stat.ML", cats[1].Category)
}

func TestNormalize_PrimaryCategoryFallsBackToFirst(t *testing.T) {
	e := sampleEntry()
	e.PrimaryCategory = nil
	paper, _, _, err := Normalize(e)
	require.NoError(t, err)
	assert.Equal(t, "cs.LG", paper.PrimaryCategory)

	e.Categories = nil
	paper, _, _, err = Normalize(e)
	require.NoError(t, err)
	assert.Equal(t, "", paper.PrimaryCategory)
}

func TestNormalize_MissingLinksLeaveURLsEmpty(t *testing.T) {
	e := sampleEntry()
	e.Links = nil
	paper, _, _, err := Normalize(e)
	require.NoError(t, err)
	assert.Equal(t, "", paper.PDFURL)
	assert.Equal(t, "", paper.AbsURL)
}

func TestNormalize_UpdatedDefaultsToPublished(t *testing.T) {
	e := sampleEntry()
	e.Updated = ""
	paper, _, _, err := Normalize(e)
	require.NoError(t, err)
	assert.True(t, paper.Updated.Equal(paper.Published))
}

func TestNormalize_MalformedIDs(t *testing.T) {
	cases := []struct {
		name string
		id   string
	}{
		{"no version suffix", "http://arxiv.org/abs/2501.01234"},
		{"non-numeric version", "http://arxiv.org/abs/2501.01234vx"},
		{"zero version", "http://arxiv.org/abs/2501.01234v0"},
		{"empty id", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := sampleEntry()
			e.ID = tc.id
			_, _, _, err := Normalize(e)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "id", parseErr.Field)
		})
	}
}

func TestNormalize_MalformedPublished(t *testing.T) {
	e := sampleEntry()
	e.Published = "yesterday"
	_, _, _, err := Normalize(e)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "published", parseErr.Field)
}
