package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// schema is the full database schema. One table holds every collection.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    data       TEXT NOT NULL,
    PRIMARY KEY (collection, id)
);
`

// SQLite is a Store backed by a single SQLite file with JSON document bodies.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// Open opens (or creates) the document database and configures pragmas.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set pragmas for performance and correctness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// All returns every document in a collection, ordered by id.
func (s *SQLite) All(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE collection = ? ORDER BY id`, collection,
	)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		fields, err := decodeBody(data)
		if err != nil {
			return nil, fmt.Errorf("decoding document %s/%s: %w", collection, id, err)
		}
		docs = append(docs, Document{ID: id, Fields: fields})
	}
	return docs, rows.Err()
}

// Get returns one document's fields, or (nil, nil) if absent.
func (s *SQLite) Get(ctx context.Context, collection, id string) (Fields, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`, collection, id,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	fields, err := decodeBody(data)
	if err != nil {
		return nil, fmt.Errorf("decoding document %s/%s: %w", collection, id, err)
	}
	return fields, nil
}

// Add creates a document with a generated id.
func (s *SQLite) Add(ctx context.Context, collection string, fields Fields) (string, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)`,
		collection, id, string(data),
	)
	if err != nil {
		return "", fmt.Errorf("adding document: %w", err)
	}
	return id, nil
}

// Merge upserts a document, overwriting only the supplied top-level fields.
func (s *SQLite) Merge(ctx context.Context, collection, id string, fields Fields) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting merge: %w", err)
	}
	defer tx.Rollback()

	merged := Fields{}
	var data string
	err = tx.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`, collection, id,
	).Scan(&data)
	switch {
	case err == sql.ErrNoRows:
		// Merge into a missing document creates it.
	case err != nil:
		return fmt.Errorf("reading document for merge: %w", err)
	default:
		if merged, err = decodeBody(data); err != nil {
			return fmt.Errorf("decoding document %s/%s: %w", collection, id, err)
		}
	}

	// Explicit nils overwrite like any other value and are stored as nulls.
	for k, v := range fields {
		merged[k] = v
	}

	body, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data`,
		collection, id, string(body),
	)
	if err != nil {
		return fmt.Errorf("writing document: %w", err)
	}

	return tx.Commit()
}

// Delete removes a document.
func (s *SQLite) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id,
	)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// decodeBody unmarshals a stored JSON body. Stored nulls survive as nil map
// values, so the explicit-null marker is visible to callers.
func decodeBody(data string) (Fields, error) {
	var fields Fields
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, nil
}
