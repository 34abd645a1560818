package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    namespace   TEXT NOT NULL,
    id          TEXT NOT NULL,
    body        TEXT NOT NULL,
    updated_at  TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (namespace, id)
);

CREATE INDEX IF NOT EXISTS idx_documents_namespace ON documents(namespace);
`

// SQLiteStore keeps each JSON document as a row keyed by (namespace, id).
// An alternative to FileStore for deployments that prefer a single file.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running schema migration: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Read(namespace, id string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow(
		`SELECT body FROM documents WHERE namespace = ? AND id = ?`,
		namespace, id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s/%s: %w", namespace, id, err)
	}
	if !json.Valid(body) {
		return nil, ErrNotFound
	}
	return body, nil
}

func (s *SQLiteStore) Write(namespace, id string, doc []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (namespace, id, body) VALUES (?, ?, ?)
		 ON CONFLICT (namespace, id) DO UPDATE SET body = excluded.body, updated_at = datetime('now')`,
		namespace, id, doc,
	)
	if err != nil {
		return fmt.Errorf("writing %s/%s: %w", namespace, id, err)
	}
	return nil
}

func (s *SQLiteStore) List(namespace string) ([][]byte, error) {
	rows, err := s.db.Query(`SELECT body FROM documents WHERE namespace = ?`, namespace)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", namespace, err)
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", namespace, err)
		}
		if !json.Valid(body) {
			continue
		}
		docs = append(docs, body)
	}
	return docs, rows.Err()
}
