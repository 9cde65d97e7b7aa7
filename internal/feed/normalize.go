// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-daily/pkg/types"
)

// pdfMediaType marks the entry link pointing at the PDF rendition.
const pdfMediaType = "application/pdf"

// ParseError reports an entry whose identifier or required timestamp cannot
// be interpreted. It aborts the whole run: silently dropping the entry would
// let later runs double-count or corrupt the merge keys.
type ParseError struct {
	EntryID string
	Field   string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entry %q: malformed %s: %v", e.EntryID, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Normalize maps one raw entry into a Paper row plus its author and category
// link rows. It is pure; the only failure path is a *ParseError.
func Normalize(e Entry) (types.Paper, []types.AuthorLink, []types.CategoryLink, error) {
	idVersion := e.ID[strings.LastIndex(e.ID, "/")+1:]

	paperID, version, err := splitVersionedID(idVersion)
	if err != nil {
		return types.Paper{}, nil, nil, &ParseError{EntryID: e.ID, Field: "id", Err: err}
	}

	published, err := time.Parse(time.RFC3339, e.Published)
	if err != nil {
		return types.Paper{}, nil, nil, &ParseError{EntryID: e.ID, Field: "published", Err: err}
	}

	// Updated defaults to the published time when the feed omits it.
	updated := published
	if e.Updated != "" {
		updated, err = time.Parse(time.RFC3339, e.Updated)
		if err != nil {
			return types.Paper{}, nil, nil, &ParseError{EntryID: e.ID, Field: "updated", Err: err}
		}
	}

	cats := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		cats = append(cats, c.Term)
	}

	primary := ""
	if e.PrimaryCategory != nil && e.PrimaryCategory.Term != "" {
		primary = e.PrimaryCategory.Term
	} else if len(cats) > 0 {
		primary = cats[0]
	}

	var pdfURL, absURL string
	for _, l := range e.Links {
		switch {
		case pdfURL == "" && l.Type == pdfMediaType:
			pdfURL = l.Href
		case absURL == "" && l.Rel == "alternate":
			absURL = l.Href
		}
	}

	paper := types.Paper{
		PaperIDVersion:  idVersion,
		PaperID:         paperID,
		Version:         version,
		Title:           strings.TrimSpace(e.Title),
		Summary:         strings.TrimSpace(e.Summary),
		Published:       published,
		Updated:         updated,
		DOI:             e.DOI,
		JournalRef:      e.JournalRef,
		Comment:         strings.TrimSpace(e.Comment),
		PrimaryCategory: primary,
		Categories:      cats,
		PDFURL:          pdfURL,
		AbsURL:          absURL,
	}

	authors := make([]types.AuthorLink, 0, len(e.Authors))
	for _, a := range e.Authors {
		authors = append(authors, types.AuthorLink{
			PaperIDVersion: idVersion,
			AuthorName:     strings.TrimSpace(a.Name),
			Affiliation:    strings.TrimSpace(a.Affiliation),
		})
	}

	catLinks := make([]types.CategoryLink, 0, len(cats))
	for _, c := range cats {
		catLinks = append(catLinks, types.CategoryLink{PaperIDVersion: idVersion, Category: c})
	}

	return paper, authors, catLinks, nil
}

// splitVersionedID splits "2501.01234v2" into ("2501.01234", 2). The version
// suffix is the digits after the last "v"; it must parse and be >= 1.
func splitVersionedID(idVersion string) (string, int, error) {
	vIdx := strings.LastIndex(idVersion, "v")
	if vIdx <= 0 {
		return "", 0, fmt.Errorf("no version suffix in %q", idVersion)
	}
	version, err := strconv.Atoi(idVersion[vIdx+1:])
	if err != nil {
		return "", 0, fmt.Errorf("version suffix in %q is not numeric", idVersion)
	}
	if version < 1 {
		return "", 0, fmt.Errorf("version %d in %q out of range", version, idVersion)
	}
	return idVersion[:vIdx], version, nil
}
