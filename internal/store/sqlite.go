package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/quantmind-br/qlaunch/internal/fsops"
	"github.com/spf13/afero"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps settings in a local sqlite file, with separate
// read/write pools.
type SQLiteStore struct {
	write *sql.DB
	read  *sql.DB
	path  string
}

// NewSQLiteStore opens (and creates if needed) the settings database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("sqlite store: empty database path")
	}
	if err := fsops.EnsureDir(afero.NewOsFs(), filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)

	// Write pool: MUST be 1 connection only
	write, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open write connection: %w", err)
	}
	write.SetMaxOpenConns(1)
	write.SetMaxIdleConns(1)
	write.SetConnMaxIdleTime(time.Minute)

	read, err := sql.Open("sqlite", connStr)
	if err != nil {
		write.Close()
		return nil, fmt.Errorf("open read connection: %w", err)
	}
	read.SetMaxOpenConns(4)
	read.SetMaxIdleConns(2)
	read.SetConnMaxIdleTime(time.Minute)

	s := &SQLiteStore{
		write: write,
		read:  read,
		path:  dbPath,
	}

	if err := s.initSchema(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return s, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes both database connections
func (s *SQLiteStore) Close() error {
	writeErr := s.write.Close()
	readErr := s.read.Close()
	if writeErr != nil {
		return writeErr
	}
	return readErr
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS settings (
    app_id TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (app_id, key)
);
	`

	if _, err := s.write.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Get implements Store.Get
func (s *SQLiteStore) Get(appID, key string) (string, bool, error) {
	return s.GetContext(context.Background(), appID, key)
}

// GetContext reads a value.
func (s *SQLiteStore) GetContext(ctx context.Context, appID, key string) (string, bool, error) {
	var value string
	err := s.read.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE app_id = ? AND key = ?", appID, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query setting %s/%s: %w", appID, key, err)
	}
	return value, true, nil
}

// Set implements Store.Set
func (s *SQLiteStore) Set(appID, key, value string) error {
	return s.SetContext(context.Background(), appID, key, value)
}

// SetContext writes a value, replacing any previous one.
func (s *SQLiteStore) SetContext(ctx context.Context, appID, key, value string) error {
	query := `
INSERT INTO settings (app_id, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(app_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.write.ExecContext(ctx, query, appID, key, value); err != nil {
		return fmt.Errorf("save setting %s/%s: %w", appID, key, err)
	}
	return nil
}
