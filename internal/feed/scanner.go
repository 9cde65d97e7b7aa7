// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"context"
	"iter"
	"time"
)

// Scanner drives the Client across successive pages and yields raw entries
// until the traversal is complete.
type Scanner struct {
	client *Client
	cfg    scannerConfig
}

type scannerConfig struct {
	pageSize   int
	maxResults int
}

// NewScanner returns a Scanner paginating with the given page size and total
// result bound. Non-positive arguments fall back to the fetch defaults.
func NewScanner(client *Client, pageSize, maxResults int) *Scanner {
	if pageSize <= 0 {
		pageSize = 200
	}
	if maxResults <= 0 {
		maxResults = 2000
	}
	return &Scanner{client: client, cfg: scannerConfig{pageSize: pageSize, maxResults: maxResults}}
}

// All returns a single-use sequence of entries in descending submission
// order. Pagination starts at offset zero and the sequence ends when:
//
//   - a page comes back empty (the feed is exhausted),
//   - an entry's published date falls strictly before the boundary date;
//     that entry and everything after it is withheld, since the feed is
//     sorted by descending submission date, or
//   - the cumulative count reaches the result bound, after finishing the
//     current page.
//
// A fetch or timestamp-parse failure is yielded as the final element's error
// and terminates the sequence.
func (s *Scanner) All(ctx context.Context, boundary time.Time) iter.Seq2[Entry, error] {
	cutoff := dateOnly(boundary)
	return func(yield func(Entry, error) bool) {
		fetched, start := 0, 0
		for fetched < s.cfg.maxResults {
			entries, err := s.client.FetchPage(ctx, start)
			if err != nil {
				yield(Entry{}, err)
				return
			}
			if len(entries) == 0 {
				return
			}
			for _, e := range entries {
				pub, err := time.Parse(time.RFC3339, e.Published)
				if err != nil {
					yield(e, &ParseError{EntryID: e.ID, Field: "published", Err: err})
					return
				}
				if dateOnly(pub).Before(cutoff) {
					return
				}
				if !yield(e, nil) {
					return
				}
			}
			fetched += len(entries)
			start += s.cfg.pageSize
		}
	}
}

// dateOnly truncates t to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
