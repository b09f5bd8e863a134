// Package store persists players, investor records and domain lookups in
// libsql (local file or Turso).
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pitchslap/pitchslap/internal/config"
)

const driverLibsql = "libsql"

var errNotInitialized = errors.New("store is not initialized")

// Store wraps the database connection.
type Store struct {
	DB     *sql.DB
	driver string
}

// Open connects to the configured database and pings it.
func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	driver := strings.TrimSpace(cfg.Driver)
	if driver == "" {
		driver = driverLibsql
	}
	if driver != driverLibsql {
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}

	dsn, err := buildLibsqlDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverLibsql, dsn)
	if err != nil {
		return nil, fmt.Errorf("open libsql store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping libsql store: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across calls.
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	return &Store{DB: db, driver: driver}, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Driver returns the configured store driver.
func (s *Store) Driver() string {
	if s == nil {
		return ""
	}
	return s.driver
}

// CheckHealth pings the database.
func (s *Store) CheckHealth(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errNotInitialized
	}
	return s.DB.PingContext(ctx)
}

func (s *Store) ready() error {
	if s == nil || s.DB == nil {
		return errNotInitialized
	}
	return nil
}

func buildLibsqlDSN(cfg config.StoreConfig) (string, error) {
	if dsn := strings.TrimSpace(cfg.URL); dsn != "" {
		return addAuthToken(dsn, cfg.AuthToken)
	}

	path := strings.TrimSpace(cfg.Path)
	switch {
	case path == "":
		return "", errors.New("store path or url is required")
	case path == ":memory:", strings.HasPrefix(path, "libsql:"):
		return path, nil
	case strings.HasPrefix(path, "file:"):
		parsed, err := url.Parse(path)
		if err != nil {
			return "", fmt.Errorf("invalid store path: %w", err)
		}
		local := parsed.Path
		if local == "" {
			local = parsed.Opaque
		}
		if err := ensureStoreDir(strings.TrimPrefix(local, "//")); err != nil {
			return "", err
		}
		return path, nil
	default:
		if err := ensureStoreDir(path); err != nil {
			return "", err
		}
		return "file:" + filepath.Clean(path), nil
	}
}

func addAuthToken(dsn string, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return dsn, nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid store url: %w", err)
	}

	query := parsed.Query()
	if query.Get("authToken") == "" {
		query.Set("authToken", token)
		parsed.RawQuery = query.Encode()
	}
	return parsed.String(), nil
}

func ensureStoreDir(path string) error {
	dir := filepath.Dir(filepath.Clean(path))
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	// #nosec G301 -- data directories use 0755 for multi-user access compatibility
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	return nil
}
