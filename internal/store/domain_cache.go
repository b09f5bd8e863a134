package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pitchslap/pitchslap/internal/domains"
)

// GetDomainCheck returns an unexpired cached lookup, or nil.
func (s *Store) GetDomainCheck(ctx context.Context, domain string) (*domains.Result, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var payload string
	err := s.DB.QueryRowContext(ctx, `
		SELECT result FROM domain_checks
		WHERE domain = ? AND expires_at > ?
	`, strings.ToLower(strings.TrimSpace(domain)), time.Now().UTC().Unix()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch domain check: %w", err)
	}

	var r domains.Result
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decode domain check: %w", err)
	}
	return &r, nil
}

// SetDomainCheck caches a lookup for ttl.
func (s *Store) SetDomainCheck(ctx context.Context, result domains.Result, ttl time.Duration) error {
	if err := s.ready(); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode domain check: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO domain_checks (domain, result, checked_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(domain) DO UPDATE SET
			result = excluded.result,
			checked_at = excluded.checked_at,
			expires_at = excluded.expires_at
	`, strings.ToLower(result.Domain), string(payload), now.Unix(), now.Add(ttl).Unix())
	if err != nil {
		return fmt.Errorf("store domain check: %w", err)
	}
	return nil
}
