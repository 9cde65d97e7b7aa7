// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the record and configuration types shared across the
// ingestion pipeline stages.
package types

import (
	"fmt"
	"time"
)

// Paper is one arXiv paper version. Rows are keyed by PaperIDVersion and
// replaced wholesale on re-ingestion; fields are never merged individually.
type Paper struct {
	// PaperIDVersion is the versioned identifier, e.g. "2501.01234v2".
	PaperIDVersion string `json:"paper_id_version" yaml:"paper_id_version"`

	// PaperID is the identifier stable across versions, e.g. "2501.01234".
	PaperID string `json:"paper_id" yaml:"paper_id"`

	// Version is the integer suffix parsed from the id. Always >= 1.
	Version int `json:"version" yaml:"version"`

	// Title is the paper title with surrounding whitespace trimmed.
	Title string `json:"title" yaml:"title"`

	// Summary is the abstract text.
	Summary string `json:"summary" yaml:"summary"`

	// Published is the first-version submission time.
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the last revision time. Equals Published when the feed
	// omits it.
	Updated time.Time `json:"updated" yaml:"updated"`

	// DOI, JournalRef, and Comment are optional submitter-supplied fields;
	// empty means absent.
	DOI        string `json:"doi,omitempty" yaml:"doi,omitempty"`
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`
	Comment    string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// PrimaryCategory is the explicit primary category if the feed declared
	// one, else the first listed category, else empty.
	PrimaryCategory string `json:"primary_category,omitempty" yaml:"primary_category,omitempty"`

	// Categories lists all category terms in feed order.
	Categories []string `json:"all_categories" yaml:"all_categories"`

	// PDFURL and AbsURL are optional links resolved from the entry's link
	// list; empty means the feed offered none.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
	AbsURL string `json:"abs_url,omitempty" yaml:"abs_url,omitempty"`
}

// Key returns the merge key for the papers table.
func (p Paper) Key() string { return p.PaperIDVersion }

// AuthorLink relates one author to one paper version. The reference to the
// papers table is weak; only merge discipline keeps it consistent.
type AuthorLink struct {
	PaperIDVersion string `json:"paper_id_version" yaml:"paper_id_version"`
	AuthorName     string `json:"author_name" yaml:"author_name"`

	// Affiliation is optional and independently absent per author.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// Key returns the full composite merge key, so identical links are idempotent
// and links differing in any field accumulate across runs.
func (l AuthorLink) Key() string {
	return l.PaperIDVersion + "\x1f" + l.AuthorName + "\x1f" + l.Affiliation
}

// CategoryLink relates one category term to one paper version.
type CategoryLink struct {
	PaperIDVersion string `json:"paper_id_version" yaml:"paper_id_version"`
	Category       string `json:"category" yaml:"category"`
}

// Key returns the full composite merge key.
func (l CategoryLink) Key() string {
	return l.PaperIDVersion + "\x1f" + l.Category
}

// Enrichment holds derived tags for one paper version. Re-enrichment replaces
// the row wholesale.
type Enrichment struct {
	PaperIDVersion string `json:"paper_id_version" yaml:"paper_id_version"`

	// Tags is an order-insignificant set of derived labels.
	Tags []string `json:"tags" yaml:"tags"`

	// HasCode reports whether the text suggests an available implementation.
	HasCode bool `json:"has_code" yaml:"has_code"`
}

// Key returns the merge key for the enrichments table.
func (e Enrichment) Key() string { return e.PaperIDVersion }

// RunRecord is one audit row in the append-only run ledger.
type RunRecord struct {
	// RunAt is the run timestamp (UTC).
	RunAt time.Time `json:"run_utc" yaml:"run_utc"`

	// NewPapers is the number of distinct papers the run fetched.
	NewPapers int `json:"new_papers" yaml:"new_papers"`

	// TotalPapers is the papers-table size after the run's merge.
	TotalPapers int `json:"total_papers" yaml:"total_papers"`
}

// String formats the record for the runs listing.
func (r RunRecord) String() string {
	return fmt.Sprintf("%s  new=%d total=%d", r.RunAt.Format(time.RFC3339), r.NewPapers, r.TotalPapers)
}
