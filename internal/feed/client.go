// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed fetches, paginates, and normalizes entries from the arXiv
// query API.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	neturl "net/url"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/arxiv-daily/pkg/types"
)

// APIBase is the arXiv query endpoint. Declared as a var so tests can
// substitute an httptest server.
var APIBase = "https://export.arxiv.org/api/query"

// FetchError reports a page request that failed after exhausting its retry
// budget. It is fatal: the run aborts with nothing persisted.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: giving up after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client issues one feed request per call, pacing requests at least
// MinInterval apart and retrying transient failures with a fixed wait.
// The feed's terms of use forbid concurrent connections; Client is not
// safe for concurrent use and the pipeline never shares one.
type Client struct {
	http   *http.Client
	cfg    types.FeedConfig
	logger *zap.Logger

	// lastRequest is when the previous request went out; the pacing delay
	// is measured against it.
	lastRequest time.Time
}

// NewClient returns a Client configured from cfg. A nil logger disables
// retry/pacing log output.
func NewClient(cfg types.FeedConfig, logger *zap.Logger) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 200
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// FetchPage requests one page of entries at the given zero-based offset,
// sorted by descending submission date. Transport errors, non-200 responses,
// and malformed feed XML are all retried with the fixed RetryWait; after
// RetryAttempts total attempts the call fails with *FetchError.
func (c *Client) FetchPage(ctx context.Context, start int) ([]Entry, error) {
	url := fmt.Sprintf("%s?search_query=%s&start=%d&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		APIBase, neturl.QueryEscape(c.cfg.Query), start, c.cfg.PageSize)

	var lastErr error
	for attempt := 1; attempt <= c.cfg.RetryAttempts; attempt++ {
		if attempt > 1 {
			c.logger.Warn("page fetch failed, retrying",
				zap.Int("start", start),
				zap.Int("attempt", attempt),
				zap.Duration("wait", c.cfg.RetryWait),
				zap.Error(lastErr))
			if err := sleepCtx(ctx, c.cfg.RetryWait); err != nil {
				return nil, err
			}
		}
		if err := c.pace(ctx); err != nil {
			return nil, err
		}

		entries, err := c.fetchOnce(ctx, url)
		if err == nil {
			c.logger.Debug("page fetched", zap.Int("start", start), zap.Int("entries", len(entries)))
			return entries, nil
		}
		lastErr = err
	}

	return nil, &FetchError{URL: url, Attempts: c.cfg.RetryAttempts, Err: lastErr}
}

// pace blocks until at least MinInterval has passed since the previous
// request. This is a hard courtesy constraint toward the feed operator.
func (c *Client) pace(ctx context.Context) error {
	if c.cfg.MinInterval > 0 && !c.lastRequest.IsZero() {
		if elapsed := time.Since(c.lastRequest); elapsed < c.cfg.MinInterval {
			if err := sleepCtx(ctx, c.cfg.MinInterval-elapsed); err != nil {
				return err
			}
		}
	}
	c.lastRequest = time.Now()
	return nil
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned HTTP %d", resp.StatusCode)
	}

	var doc feedDoc
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing feed response: %w", err)
	}
	return doc.Entries, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Atom feed XML structures, including the arXiv namespace extensions.
// encoding/xml matches elements by local name, so arxiv:doi and friends
// bind without explicit namespace handling.
type feedDoc struct {
	Entries []Entry `xml:"entry"`
}

// Entry is one raw feed record for one paper version. Optional fields decode
// to their zero value when the feed omits them.
type Entry struct {
	ID              string     `xml:"id"`
	Title           string     `xml:"title"`
	Summary         string     `xml:"summary"`
	Published       string     `xml:"published"`
	Updated         string     `xml:"updated"`
	DOI             string     `xml:"doi"`
	JournalRef      string     `xml:"journal_ref"`
	Comment         string     `xml:"comment"`
	PrimaryCategory *Category  `xml:"primary_category"`
	Links           []Link     `xml:"link"`
	Categories      []Category `xml:"category"`
	Authors         []Author   `xml:"author"`
}

// Link is one entry link; the PDF and abstract-page links are told apart by
// media type and relation.
type Link struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// Category is one category term.
type Category struct {
	Term string `xml:"term,attr"`
}

// Author is one entry author with an optional affiliation.
type Author struct {
	Name        string `xml:"name"`
	Affiliation string `xml:"affiliation"`
}
