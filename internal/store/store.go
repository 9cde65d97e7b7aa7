// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the ingestion tables and the run ledger, and
// implements the last-write-wins merge discipline the pipeline relies on.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-daily/pkg/types"
)

const dbFile = "arxiv.db"

// StorageError reports an unreadable or unwritable table. It is fatal; the
// run aborts and previously persisted state stays as it was.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Store manages the SQLite database holding the paper, link, enrichment, and
// run-ledger tables. Tables are append-growing: the pipeline loads them
// whole, merges in memory, and rewrites them whole in one transaction.
type Store struct {
	db      *sql.DB
	dataDir string
}

// Open opens or creates the database at dataDir/arxiv.db, creating the
// directory and schema as needed.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, storageErr("creating data directory", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, storageErr("opening database", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			paper_id_version TEXT PRIMARY KEY,
			paper_id TEXT NOT NULL,
			version INTEGER NOT NULL,
			title TEXT,
			summary TEXT,
			published TEXT NOT NULL,
			updated TEXT NOT NULL,
			doi TEXT,
			journal_ref TEXT,
			comment TEXT,
			primary_category TEXT,
			all_categories TEXT,
			pdf_url TEXT,
			abs_url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			paper_id_version TEXT NOT NULL,
			author_name TEXT NOT NULL,
			affiliation TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (paper_id_version, author_name, affiliation)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			paper_id_version TEXT NOT NULL,
			category TEXT NOT NULL,
			PRIMARY KEY (paper_id_version, category)
		)`,
		`CREATE TABLE IF NOT EXISTS enrichments (
			paper_id_version TEXT PRIMARY KEY,
			tags TEXT,
			has_code INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS run_log (
			run_utc TEXT NOT NULL,
			new_papers INTEGER NOT NULL,
			total_papers INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_published ON papers(published)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return storageErr("creating schema", err)
		}
	}
	return nil
}

// LoadPapers returns the papers table in stored (insertion) order. A missing
// or empty table loads as an empty slice, not an error.
func (s *Store) LoadPapers(ctx context.Context) ([]types.Paper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT paper_id_version, paper_id, version, title, summary, published, updated,
		        doi, journal_ref, comment, primary_category, all_categories, pdf_url, abs_url
		 FROM papers ORDER BY rowid`)
	if err != nil {
		return nil, storageErr("reading papers", err)
	}
	defer rows.Close()

	var papers []types.Paper
	for rows.Next() {
		var p types.Paper
		var published, updated, catsJSON string
		if err := rows.Scan(&p.PaperIDVersion, &p.PaperID, &p.Version, &p.Title, &p.Summary,
			&published, &updated, &p.DOI, &p.JournalRef, &p.Comment,
			&p.PrimaryCategory, &catsJSON, &p.PDFURL, &p.AbsURL); err != nil {
			return nil, storageErr("scanning paper row", err)
		}
		if p.Published, err = time.Parse(time.RFC3339, published); err != nil {
			return nil, storageErr("parsing stored published time", err)
		}
		if p.Updated, err = time.Parse(time.RFC3339, updated); err != nil {
			return nil, storageErr("parsing stored updated time", err)
		}
		if catsJSON != "" {
			if err := json.Unmarshal([]byte(catsJSON), &p.Categories); err != nil {
				return nil, storageErr("parsing stored categories", err)
			}
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("reading papers", err)
	}
	return papers, nil
}

// LoadAuthors returns the author-link table in stored order.
func (s *Store) LoadAuthors(ctx context.Context) ([]types.AuthorLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT paper_id_version, author_name, affiliation FROM authors ORDER BY rowid`)
	if err != nil {
		return nil, storageErr("reading authors", err)
	}
	defer rows.Close()

	var links []types.AuthorLink
	for rows.Next() {
		var l types.AuthorLink
		if err := rows.Scan(&l.PaperIDVersion, &l.AuthorName, &l.Affiliation); err != nil {
			return nil, storageErr("scanning author row", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("reading authors", err)
	}
	return links, nil
}

// LoadCategories returns the category-link table in stored order.
func (s *Store) LoadCategories(ctx context.Context) ([]types.CategoryLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT paper_id_version, category FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, storageErr("reading categories", err)
	}
	defer rows.Close()

	var links []types.CategoryLink
	for rows.Next() {
		var l types.CategoryLink
		if err := rows.Scan(&l.PaperIDVersion, &l.Category); err != nil {
			return nil, storageErr("scanning category row", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("reading categories", err)
	}
	return links, nil
}

// SaveSnapshot rewrites the three ingestion tables with the given merged
// contents in one transaction. The caller merges first; a failure anywhere
// leaves the previously persisted tables untouched.
func (s *Store) SaveSnapshot(ctx context.Context, papers []types.Paper, authors []types.AuthorLink, cats []types.CategoryLink) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning snapshot transaction", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"papers", "authors", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return storageErr("clearing "+table, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (paper_id_version, paper_id, version, title, summary, published, updated,
		                     doi, journal_ref, comment, primary_category, all_categories, pdf_url, abs_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return storageErr("preparing paper insert", err)
	}
	defer stmt.Close()

	for _, p := range papers {
		catsJSON, _ := json.Marshal(p.Categories)
		_, err := stmt.ExecContext(ctx,
			p.PaperIDVersion, p.PaperID, p.Version, p.Title, p.Summary,
			p.Published.UTC().Format(time.RFC3339), p.Updated.UTC().Format(time.RFC3339),
			p.DOI, p.JournalRef, p.Comment, p.PrimaryCategory, string(catsJSON), p.PDFURL, p.AbsURL)
		if err != nil {
			return storageErr("inserting paper "+p.PaperIDVersion, err)
		}
	}

	for _, l := range authors {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO authors (paper_id_version, author_name, affiliation) VALUES (?, ?, ?)`,
			l.PaperIDVersion, l.AuthorName, l.Affiliation)
		if err != nil {
			return storageErr("inserting author link", err)
		}
	}

	for _, l := range cats {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO categories (paper_id_version, category) VALUES (?, ?)`,
			l.PaperIDVersion, l.Category)
		if err != nil {
			return storageErr("inserting category link", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing snapshot", err)
	}
	return nil
}

// LoadEnrichments returns the enrichment table in stored order.
func (s *Store) LoadEnrichments(ctx context.Context) ([]types.Enrichment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT paper_id_version, tags, has_code FROM enrichments ORDER BY rowid`)
	if err != nil {
		return nil, storageErr("reading enrichments", err)
	}
	defer rows.Close()

	var out []types.Enrichment
	for rows.Next() {
		var e types.Enrichment
		var tagsJSON string
		var hasCode int
		if err := rows.Scan(&e.PaperIDVersion, &tagsJSON, &hasCode); err != nil {
			return nil, storageErr("scanning enrichment row", err)
		}
		if tagsJSON != "" {
			if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
				return nil, storageErr("parsing stored tags", err)
			}
		}
		e.HasCode = hasCode != 0
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("reading enrichments", err)
	}
	return out, nil
}

// SaveEnrichments rewrites the enrichment table with the given merged rows.
func (s *Store) SaveEnrichments(ctx context.Context, rows []types.Enrichment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning enrichment transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM enrichments`); err != nil {
		return storageErr("clearing enrichments", err)
	}

	for _, e := range rows {
		tagsJSON, _ := json.Marshal(e.Tags)
		hasCode := 0
		if e.HasCode {
			hasCode = 1
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO enrichments (paper_id_version, tags, has_code) VALUES (?, ?, ?)`,
			e.PaperIDVersion, string(tagsJSON), hasCode)
		if err != nil {
			return storageErr("inserting enrichment "+e.PaperIDVersion, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing enrichments", err)
	}
	return nil
}
