// Package settings persists per-user style preferences in a small
// SQLite database. Reads are best effort: a missing database or an
// unset key yields the caller's defaults instead of an error.
package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	appDirName = "codegraft"
	dbFileName = "settings.db"
	dirPerm    = 0o755
)

// styleOverridesKey is where the persisted formatting overrides live.
const styleOverridesKey = "style.overrides"

// ErrNotFound indicates the key has no stored value.
var ErrNotFound = errors.New("settings: key not found")

// Store is a SQLite-backed key/value store for user preferences.
// Values are stored as JSON documents keyed by name.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user location of the settings database.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}

	return filepath.Join(base, appDirName, dbFileName), nil
}

// Open opens the settings database at path, creating the file and its
// parent directory when absent.
func Open(path string) (*Store, error) {
	err := os.MkdirAll(filepath.Dir(path), dirPerm)
	if err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}

	// A single connection sidesteps writer lock contention.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}

	err = store.createTable()
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return store, nil
}

func (s *Store) createTable() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("create preferences table: %w", err)
	}

	return nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", key, err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO preferences (key, value, updated_at) VALUES (?, ?, ?)`,
		key, string(encoded), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store setting %q: %w", key, err)
	}

	return nil
}

// Get loads the value stored under key into out, which must be a
// pointer. Returns ErrNotFound when the key has never been set.
func (s *Store) Get(key string, out any) error {
	var encoded string

	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	if err != nil {
		return fmt.Errorf("load setting %q: %w", key, err)
	}

	err = json.Unmarshal([]byte(encoded), out)
	if err != nil {
		return fmt.Errorf("decode setting %q: %w", key, err)
	}

	return nil
}

// Delete removes the value stored under key. Deleting an absent key
// is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM preferences WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}

	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadStyleOverrides reads persisted formatting overrides from the
// database at path, or from DefaultPath when path is empty. Best
// effort: a missing store, an unset key, or any read failure yields
// an empty map so callers fall back to their defaults.
func LoadStyleOverrides(path string) map[string]any {
	resolved, err := resolvePath(path)
	if err != nil {
		return map[string]any{}
	}

	// Reads never create the store.
	_, err = os.Stat(resolved)
	if err != nil {
		return map[string]any{}
	}

	store, err := Open(resolved)
	if err != nil {
		return map[string]any{}
	}
	defer func() { _ = store.Close() }()

	overrides := map[string]any{}

	err = store.Get(styleOverridesKey, &overrides)
	if err != nil {
		return map[string]any{}
	}

	return overrides
}

// SaveStyleOverrides persists formatting overrides to the database at
// path, or at DefaultPath when path is empty, creating the store when
// needed.
func SaveStyleOverrides(path string, overrides map[string]any) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	store, err := Open(resolved)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return store.Set(styleOverridesKey, overrides)
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}

	return DefaultPath()
}
