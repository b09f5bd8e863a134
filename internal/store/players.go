package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pitchslap/pitchslap/internal/gamify"
)

// PlayerRepository implements gamify.Repository on the players table.
type PlayerRepository struct {
	store *Store
}

// Players returns the player repository backed by s.
func (s *Store) Players() *PlayerRepository {
	return &PlayerRepository{store: s}
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (gamify.Profile, error) {
	if err := r.store.ready(); err != nil {
		return gamify.Profile{}, err
	}

	var payload string
	err := r.store.DB.QueryRowContext(ctx, `SELECT profile FROM players WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return gamify.Profile{}, gamify.ErrNotFound
	}
	if err != nil {
		return gamify.Profile{}, fmt.Errorf("fetch player: %w", err)
	}
	return decodePlayer(payload)
}

func (r *PlayerRepository) Save(ctx context.Context, p gamify.Profile) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	if p.ID == "" {
		return errors.New("player id is required")
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode player: %w", err)
	}

	_, err = r.store.DB.ExecContext(ctx, `
		INSERT INTO players (id, alias, xp, join_date, profile, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			alias = excluded.alias,
			xp = excluded.xp,
			profile = excluded.profile,
			updated_at = excluded.updated_at
	`, p.ID, p.Alias, p.XP, p.JoinDate.UnixNano(), string(payload), time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("store player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Top(ctx context.Context, n int) ([]gamify.Profile, error) {
	if err := r.store.ready(); err != nil {
		return nil, err
	}
	if n <= 0 || n > gamify.LeaderboardSize {
		n = gamify.LeaderboardSize
	}

	rows, err := r.store.DB.QueryContext(ctx, `
		SELECT profile FROM players
		ORDER BY xp DESC, join_date ASC, id ASC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	var out []gamify.Profile
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("list leaderboard: %w", err)
		}
		p, err := decodePlayer(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	return out, nil
}

func (r *PlayerRepository) Position(ctx context.Context, id string) (int, error) {
	if err := r.store.ready(); err != nil {
		return 0, err
	}

	var xp, joined int64
	err := r.store.DB.QueryRowContext(ctx, `SELECT xp, join_date FROM players WHERE id = ?`, id).Scan(&xp, &joined)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("fetch player rank: %w", err)
	}

	var ahead int
	err = r.store.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM players
		WHERE xp > ?
			OR (xp = ? AND join_date < ?)
			OR (xp = ? AND join_date = ? AND id < ?)
	`, xp, xp, joined, xp, joined, id).Scan(&ahead)
	if err != nil {
		return 0, fmt.Errorf("count players ahead: %w", err)
	}

	position := ahead + 1
	if position > gamify.LeaderboardSize {
		return 0, nil
	}
	return position, nil
}

func decodePlayer(payload string) (gamify.Profile, error) {
	var p gamify.Profile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return gamify.Profile{}, fmt.Errorf("decode player: %w", err)
	}
	return p, nil
}
