package settings

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"whisper-sync/internal/app/errors"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLStore keeps settings in a single SQL table.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the settings database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create settings directory %s", dir)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?cache=shared&mode=rwc")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	store := NewSQLStore(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLStore wraps an already opened database.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the settings table.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return errors.Wrap(err, "failed to create settings table")
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", errors.ErrSettingNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "query failed")
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "insert failed")
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return errors.Wrap(err, "delete failed")
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
