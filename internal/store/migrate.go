package store

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		alias TEXT NOT NULL,
		xp INTEGER NOT NULL DEFAULT 0,
		join_date INTEGER NOT NULL,
		profile TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_players_ranking ON players(xp DESC, join_date, id);`,
	`CREATE TABLE IF NOT EXISTS investor_profiles (
		player_id TEXT PRIMARY KEY,
		profile TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS investor_deals (
		id TEXT PRIMARY KEY,
		deal TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_investor_deals_created ON investor_deals(created_at);`,
	`CREATE TABLE IF NOT EXISTS domain_checks (
		domain TEXT PRIMARY KEY,
		result TEXT NOT NULL,
		checked_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_domain_checks_expires ON domain_checks(expires_at);`,
}

// Migrate ensures the required database tables exist.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, stmt := range schemaStatements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store migration failed: %w", err)
		}
	}
	return nil
}
