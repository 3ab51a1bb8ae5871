package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ArthurB95/linklink/pkg/ports"
	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver
)

const tokenKey = "access_token"

// Store keeps the process-wide credential slot (and other small session
// values) in a local SQLite file, or a remote Turso database when the DSN
// says so. One row per key.
type Store struct {
	db *sql.DB
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore(dbURL string) (*Store, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(query)
	return err
}

func (s *Store) Token(ctx context.Context) (string, error) {
	return s.Get(ctx, tokenKey)
}

func (s *Store) SaveToken(ctx context.Context, token string) error {
	return s.Set(ctx, tokenKey, token)
}

func (s *Store) ClearToken(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, tokenKey)
	return err
}

// Get returns "" for a missing key; absence is not an error.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO session (key, value, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query, key, value, time.Now())
	return err
}

func (s *Store) Close() error { return s.db.Close() }
