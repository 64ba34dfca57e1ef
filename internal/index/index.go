// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps a SQLite ledger of the notes happyref has created.
// Registry lookups are never served from it and it does not prevent
// duplicate notes. Restyle reads back the record a note was rendered from.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/happyref/pkg/types"
)

const defaultListLimit = 50

// Entry is one created note.
type Entry struct {
	ID         int64               `json:"id" yaml:"id"`
	Path       string              `json:"path" yaml:"path"`
	Kind       string              `json:"kind" yaml:"kind"`
	Identifier string              `json:"identifier" yaml:"identifier"`
	Title      string              `json:"title" yaml:"title"`
	Authors    []string            `json:"authors" yaml:"authors"`
	Year       int                 `json:"year,omitempty" yaml:"year,omitempty"`
	Journal    string              `json:"journal,omitempty" yaml:"journal,omitempty"`
	Style      types.CitationStyle `json:"citation_style" yaml:"citation_style"`
	CreatedAt  time.Time           `json:"created_at" yaml:"created_at"`
	// Record is the bibliographic record the note was rendered from,
	// without its abstract.
	Record types.Record `json:"record" yaml:"record"`
}

// NewEntry builds a ledger entry for a note created from rec.
func NewEntry(path, kind, identifier string, rec types.Record, style types.CitationStyle, created time.Time) Entry {
	rec.Abstract = ""
	e := Entry{
		Path:       path,
		Kind:       kind,
		Identifier: identifier,
		Title:      rec.FirstTitle(),
		Year:       rec.AnyYear(),
		Journal:    rec.Journal(),
		Style:      style,
		CreatedAt:  created.UTC().Truncate(time.Second),
		Record:     rec,
	}
	for _, a := range rec.Authors {
		if n := a.FullName(); n != "" {
			e.Authors = append(e.Authors, n)
		}
	}
	return e
}

// Ledger is the notes database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			kind TEXT NOT NULL,
			identifier TEXT NOT NULL,
			title TEXT,
			authors TEXT,
			year INTEGER,
			journal TEXT,
			citation_style TEXT,
			created_at TEXT NOT NULL,
			record TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_path ON notes(path)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_identifier ON notes(identifier)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends e to the ledger and returns its id.
func (l *Ledger) Record(ctx context.Context, e Entry) (int64, error) {
	authors, err := json.Marshal(e.Authors)
	if err != nil {
		return 0, fmt.Errorf("marshaling authors: %w", err)
	}
	record, err := json.Marshal(e.Record)
	if err != nil {
		return 0, fmt.Errorf("marshaling record: %w", err)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	res, err := l.db.ExecContext(ctx,
		`INSERT INTO notes (path, kind, identifier, title, authors, year, journal, citation_style, created_at, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Path, e.Kind, e.Identifier, e.Title, string(authors), e.Year, e.Journal,
		string(e.Style), e.CreatedAt.UTC().Format(time.RFC3339), string(record),
	)
	if err != nil {
		return 0, fmt.Errorf("recording %s: %w", e.Path, err)
	}
	return res.LastInsertId()
}

// UpdateStyle sets the citation style recorded for the note at path. It
// reports whether the ledger knew the note.
func (l *Ledger) UpdateStyle(ctx context.Context, path string, style types.CitationStyle) (bool, error) {
	res, err := l.db.ExecContext(ctx,
		`UPDATE notes SET citation_style = ? WHERE path = ?`, string(style), path)
	if err != nil {
		return false, fmt.Errorf("updating style of %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating style of %s: %w", path, err)
	}
	return n > 0, nil
}

// Lookup returns the record of the most recent entry for the note at path.
// ok is false when the ledger does not know the note or kept no record.
func (l *Ledger) Lookup(ctx context.Context, path string) (rec types.Record, ok bool, err error) {
	var raw sql.NullString
	err = l.db.QueryRowContext(ctx,
		`SELECT record FROM notes WHERE path = ? ORDER BY id DESC LIMIT 1`, path).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Record{}, false, nil
	}
	if err != nil {
		return types.Record{}, false, fmt.Errorf("looking up %s: %w", path, err)
	}
	if raw.String == "" {
		return types.Record{}, false, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &rec); err != nil {
		return types.Record{}, false, fmt.Errorf("decoding record of %s: %w", path, err)
	}
	return rec, true, nil
}

// ListOptions filters List.
type ListOptions struct {
	// Query is a case-insensitive substring matched against title,
	// authors, journal, identifier and path.
	Query string
	// Limit caps the number of entries (default 50, negative for no cap).
	Limit int
}

// List returns entries newest first.
func (l *Ledger) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	q := `SELECT id, path, kind, identifier, title, authors, year, journal, citation_style, created_at, record FROM notes`
	var args []any
	if s := strings.TrimSpace(opts.Query); s != "" {
		q += ` WHERE title LIKE ? ESCAPE '\' OR authors LIKE ? ESCAPE '\' OR journal LIKE ? ESCAPE '\'
			OR identifier LIKE ? ESCAPE '\' OR path LIKE ? ESCAPE '\'`
		pattern := "%" + likeEscaper.Replace(s) + "%"
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	limit := opts.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e                                   Entry
		title, authors, journal, style, rec sql.NullString
		year                                sql.NullInt64
		created                             string
	)
	if err := rows.Scan(&e.ID, &e.Path, &e.Kind, &e.Identifier, &title, &authors, &year, &journal, &style, &created, &rec); err != nil {
		return Entry{}, fmt.Errorf("scanning note: %w", err)
	}
	e.Title = title.String
	e.Year = int(year.Int64)
	e.Journal = journal.String
	e.Style = types.CitationStyle(style.String)
	if authors.String != "" {
		if err := json.Unmarshal([]byte(authors.String), &e.Authors); err != nil {
			return Entry{}, fmt.Errorf("decoding authors of %s: %w", e.Path, err)
		}
	}
	if rec.String != "" {
		if err := json.Unmarshal([]byte(rec.String), &e.Record); err != nil {
			return Entry{}, fmt.Errorf("decoding record of %s: %w", e.Path, err)
		}
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing created_at of %s: %w", e.Path, err)
	}
	e.CreatedAt = t
	return e, nil
}
