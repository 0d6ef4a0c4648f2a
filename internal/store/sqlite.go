package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"

	"github.com/zhihang-app/zhihang/internal/user"
)

// SQLiteStore keeps user records as whole JSON documents in a single
// SQLite table, one row per user. Catalogs stay on the file store: they
// are reference data edited externally as JSON. SQLite's locking gives
// the single-writer-per-record guarantee the engine relies on.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the user document store at dsn.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS users (
		id   TEXT PRIMARY KEY,
		body BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get implements user.Repository.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*user.Record, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM users WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user %s: %w", id, err)
	}
	rec := &user.Record{}
	if err := json.Unmarshal(body, rec); err != nil {
		return nil, fmt.Errorf("parse user %s: %w", id, err)
	}
	return rec, nil
}

// Put implements user.Repository.
func (s *SQLiteStore) Put(ctx context.Context, id string, rec *user.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal user %s: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, body) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET body = excluded.body`, id, body)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", id, err)
	}
	return nil
}

// Delete implements user.Repository.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

// All implements user.Repository.
func (s *SQLiteStore) All(ctx context.Context) (map[string]*user.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, body FROM users`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make(map[string]*user.Record)
	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		rec := &user.Record{}
		if err := json.Unmarshal(body, rec); err != nil {
			return nil, fmt.Errorf("parse user %s: %w", id, err)
		}
		users[id] = rec
	}
	return users, rows.Err()
}

// applyPragmas configures SQLite for single-writer document storage.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
