package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pitchslap/pitchslap/internal/investor"
)

// InvestorRepository implements investor.Repository.
type InvestorRepository struct {
	store *Store
}

// Investors returns the investor repository backed by s.
func (s *Store) Investors() *InvestorRepository {
	return &InvestorRepository{store: s}
}

func (r *InvestorRepository) SaveDeal(ctx context.Context, d investor.Deal) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode deal: %w", err)
	}
	_, err = r.store.DB.ExecContext(ctx, `
		INSERT INTO investor_deals (id, deal, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET deal = excluded.deal
	`, d.ID, string(payload), d.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("store deal: %w", err)
	}
	return nil
}

// TakeDeal reads and deletes the deal in one transaction.
func (r *InvestorRepository) TakeDeal(ctx context.Context, id string) (investor.Deal, error) {
	if err := r.store.ready(); err != nil {
		return investor.Deal{}, err
	}

	tx, err := r.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return investor.Deal{}, fmt.Errorf("begin take deal: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck // no-op after commit

	var payload string
	err = tx.QueryRowContext(ctx, `SELECT deal FROM investor_deals WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return investor.Deal{}, investor.ErrDealNotFound
	}
	if err != nil {
		return investor.Deal{}, fmt.Errorf("fetch deal: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM investor_deals WHERE id = ?`, id); err != nil {
		return investor.Deal{}, fmt.Errorf("delete deal: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return investor.Deal{}, fmt.Errorf("commit take deal: %w", err)
	}

	var d investor.Deal
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return investor.Deal{}, fmt.Errorf("decode deal: %w", err)
	}
	return d, nil
}

// SettleDeal deletes the deal and stores the profile returned by settle in
// one transaction. Nothing changes when settle or the profile write fails.
func (r *InvestorRepository) SettleDeal(ctx context.Context, id string, settle func(investor.Deal) (investor.Profile, error)) (investor.Deal, error) {
	if err := r.store.ready(); err != nil {
		return investor.Deal{}, err
	}

	tx, err := r.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return investor.Deal{}, fmt.Errorf("begin settle deal: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck // no-op after commit

	var payload string
	err = tx.QueryRowContext(ctx, `SELECT deal FROM investor_deals WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return investor.Deal{}, investor.ErrDealNotFound
	}
	if err != nil {
		return investor.Deal{}, fmt.Errorf("fetch deal: %w", err)
	}
	var d investor.Deal
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return investor.Deal{}, fmt.Errorf("decode deal: %w", err)
	}

	profile, err := settle(d)
	if err != nil {
		return investor.Deal{}, err
	}
	if err := upsertProfile(ctx, tx, profile); err != nil {
		return investor.Deal{}, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM investor_deals WHERE id = ?`, id); err != nil {
		return investor.Deal{}, fmt.Errorf("delete deal: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return investor.Deal{}, fmt.Errorf("commit settle deal: %w", err)
	}
	return d, nil
}

// PruneDeals removes undecided deals created before cutoff.
func (r *InvestorRepository) PruneDeals(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := r.store.ready(); err != nil {
		return 0, err
	}
	res, err := r.store.DB.ExecContext(ctx, `DELETE FROM investor_deals WHERE created_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune deals: %w", err)
	}
	return res.RowsAffected()
}

func (r *InvestorRepository) GetProfile(ctx context.Context, playerID string) (investor.Profile, error) {
	if err := r.store.ready(); err != nil {
		return investor.Profile{}, err
	}

	var payload string
	err := r.store.DB.QueryRowContext(ctx, `SELECT profile FROM investor_profiles WHERE player_id = ?`, playerID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return investor.Profile{}, investor.ErrProfileNotFound
	}
	if err != nil {
		return investor.Profile{}, fmt.Errorf("fetch investor profile: %w", err)
	}

	var p investor.Profile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return investor.Profile{}, fmt.Errorf("decode investor profile: %w", err)
	}
	return p, nil
}

func (r *InvestorRepository) SaveProfile(ctx context.Context, p investor.Profile) error {
	if err := r.store.ready(); err != nil {
		return err
	}
	return upsertProfile(ctx, r.store.DB, p)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertProfile(ctx context.Context, db execer, p investor.Profile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode investor profile: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO investor_profiles (player_id, profile, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			profile = excluded.profile,
			updated_at = excluded.updated_at
	`, p.PlayerID, string(payload), time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("store investor profile: %w", err)
	}
	return nil
}
