// Package sqlite persists annotated corpora so runs can be reloaded,
// queried and re-exported later without re-matching.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/annot/pkg/annot/corpus"
)

// Store wraps a SQLite database holding documents, spans, entities and
// run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite database with WAL mode
// enabled and the schema initialized.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS spans (
	doc_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	start_pos INTEGER NOT NULL,
	end_pos INTEGER NOT NULL,
	label TEXT NOT NULL,
	UNIQUE(doc_id, seq),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS entities (
	name TEXT NOT NULL,
	label TEXT NOT NULL,
	UNIQUE(name, label)
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	documents INTEGER NOT NULL,
	spans INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_spans_label ON spans(label);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveCorpus writes the whole store under the given run ID. Documents
// are upserted by ID with their spans replaced, entities inserted if
// absent, and a run row recorded with the corpus totals.
func (s *Store) SaveCorpus(ctx context.Context, runID string, c *corpus.Store) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	totalSpans := 0
	for _, d := range c.Documents() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO docs (id, text) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET text=excluded.text`,
			d.ID, d.Text); err != nil {
			return fmt.Errorf("save doc %s: %w", d.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM spans WHERE doc_id = ?`, d.ID); err != nil {
			return err
		}
		for seq, sp := range d.Spans {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO spans (doc_id, seq, start_pos, end_pos, label) VALUES (?, ?, ?, ?, ?)`,
				d.ID, seq, sp.Start, sp.End, sp.Label); err != nil {
				return fmt.Errorf("save span %d of doc %s: %w", seq, d.ID, err)
			}
			totalSpans++
		}
	}

	for _, e := range c.Entities() {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO entities (name, label) VALUES (?, ?)`,
			e.Name, e.Label); err != nil {
			return fmt.Errorf("save entity %s/%s: %w", e.Name, e.Label, err)
		}
	}

	if runID != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO runs (id, created_at, documents, spans) VALUES (?, ?, ?, ?)`,
			runID, time.Now().UTC().Format(time.RFC3339), c.Len(), totalSpans); err != nil {
			return fmt.Errorf("save run %s: %w", runID, err)
		}
	}

	return tx.Commit()
}

// LoadCorpus reads every document, span and entity back into an
// in-memory store, preserving insertion order.
func (s *Store) LoadCorpus(ctx context.Context) (*corpus.Store, error) {
	c := corpus.NewStore()

	rows, err := s.db.QueryContext(ctx, `SELECT id, text FROM docs ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	docs := make(map[string]*corpus.Document)
	for rows.Next() {
		var d corpus.Document
		if err := rows.Scan(&d.ID, &d.Text); err != nil {
			return nil, err
		}
		ids = append(ids, d.ID)
		docs[d.ID] = &d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	spanRows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, start_pos, end_pos, label FROM spans ORDER BY doc_id, seq`)
	if err != nil {
		return nil, err
	}
	defer spanRows.Close()
	for spanRows.Next() {
		var docID string
		var sp corpus.Span
		if err := spanRows.Scan(&docID, &sp.Start, &sp.End, &sp.Label); err != nil {
			return nil, err
		}
		if d, ok := docs[docID]; ok {
			d.Spans = append(d.Spans, sp)
		}
	}
	if err := spanRows.Err(); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if err := c.AddDocument(*docs[id]); err != nil {
			return nil, err
		}
	}

	entRows, err := s.db.QueryContext(ctx, `SELECT name, label FROM entities ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer entRows.Close()
	for entRows.Next() {
		var e corpus.Entity
		if err := entRows.Scan(&e.Name, &e.Label); err != nil {
			return nil, err
		}
		if err := c.AddEntity(e); err != nil {
			return nil, err
		}
	}
	return c, entRows.Err()
}

// Run is one recorded annotation pass.
type Run struct {
	ID        string
	CreatedAt time.Time
	Documents int
	Spans     int
}

// Runs returns recorded runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, documents, spans FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ts string
		if err := rows.Scan(&r.ID, &ts, &r.Documents, &r.Spans); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
