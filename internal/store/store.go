// Package store reads catalogue records from a SQLite database and writes
// the parsed time spans back into a side table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"
)

// ErrIdentifier is returned for table or column names that are not plain
// SQL identifiers.
var ErrIdentifier = errors.New("store: invalid identifier")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Tables names the source table, its key and date columns, and the table
// results are written to.
type Tables struct {
	Source      string
	IDColumn    string
	InputColumn string
	Output      string
}

func (t Tables) validate() error {
	for _, name := range []string{t.Source, t.IDColumn, t.InputColumn, t.Output} {
		if !identifier.MatchString(name) {
			return fmt.Errorf("%w: %q", ErrIdentifier, name)
		}
	}
	return nil
}

// Record is one row of the source table.
type Record struct {
	ID    string
	Input string
}

// Enrichment is the parse result for one record. Start and End are NULL
// when the record could not be interpreted.
type Enrichment struct {
	RecordID string
	Input    string
	Encoded  string
	Facets   string
	Start    sql.NullInt64
	End      sql.NullInt64
	Kind     string
}

// Store is a SQLite database holding records to enrich.
type Store struct {
	db     *sql.DB
	tables Tables
}

// Open opens the database at path.
func Open(path string, tables Tables) (*Store, error) {
	if err := tables.validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection keeps reads and the
	// write transaction from locking each other out.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db, tables: tables}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Records returns every row of the source table ordered by its key. NULL
// dates are returned as empty input.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	t := s.tables
	query := fmt.Sprintf(`SELECT "%s", "%s" FROM "%s" ORDER BY "%s"`,
		t.IDColumn, t.InputColumn, t.Source, t.IDColumn)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			id    string
			input sql.NullString
		)
		if err := rows.Scan(&id, &input); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, Record{ID: id, Input: input.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// EnsureOutput creates the output table if it does not exist.
func (s *Store) EnsureOutput(ctx context.Context) error {
	ddl := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS "%[1]s" (
		record_id TEXT PRIMARY KEY,
		input TEXT NOT NULL,
		encoded TEXT NOT NULL,
		facets TEXT NOT NULL,
		start_day INTEGER,
		end_day INTEGER,
		error_kind TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS "idx_%[1]s_span" ON "%[1]s"(start_day, end_day);
	`, s.tables.Output)

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Write stores enrichments in a single transaction, replacing earlier
// results for the same records.
func (s *Store) Write(ctx context.Context, batch []Enrichment) (err error) {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT OR REPLACE INTO "%s" (record_id, input, encoded, facets, start_day, end_day, error_kind, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`, s.tables.Output))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range batch {
		if _, err := stmt.ExecContext(ctx, e.RecordID, e.Input, e.Encoded, e.Facets, e.Start, e.End, e.Kind); err != nil {
			return fmt.Errorf("failed to write record %s: %w", e.RecordID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Stats summarizes the output table.
type Stats struct {
	Total  int
	Parsed int
	Kinds  map[string]int
}

// Stats counts the rows of the output table, the rows with a span and the
// failures by kind.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	query := fmt.Sprintf(`SELECT error_kind, COUNT(*), COUNT(start_day) FROM "%s" GROUP BY error_kind`, s.tables.Output)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	st := Stats{Kinds: make(map[string]int)}
	for rows.Next() {
		var (
			kind      string
			n, parsed int
		)
		if err := rows.Scan(&kind, &n, &parsed); err != nil {
			return Stats{}, fmt.Errorf("failed to scan stats: %w", err)
		}
		st.Total += n
		st.Parsed += parsed
		if kind != "" {
			st.Kinds[kind] = n
		}
	}
	return st, rows.Err()
}
