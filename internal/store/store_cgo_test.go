//go:build cgo

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pitchslap/pitchslap/internal/config"
	"github.com/pitchslap/pitchslap/internal/domains"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/investor"
	"github.com/pitchslap/pitchslap/internal/pitch"
)

func openMemoryStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	s, err := Open(ctx, config.StoreConfig{Driver: "libsql", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenMemoryStore(t *testing.T) {
	s := openMemoryStore(t)
	require.Equal(t, "libsql", s.Driver())
	require.Equal(t, 1, s.DB.Stats().MaxOpenConnections)
	require.NoError(t, s.CheckHealth(context.Background()))
}

func TestPlayerRepository(t *testing.T) {
	ctx := context.Background()
	repo := openMemoryStore(t).Players()

	_, err := repo.Get(ctx, "missing")
	require.ErrorIs(t, err, gamify.ErrNotFound)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	players := []gamify.Profile{
		{ID: "user_a", Alias: "Lean Hacker", XP: 50, JoinDate: base},
		{ID: "user_b", Alias: "Viral Maker", XP: 120, JoinDate: base.Add(time.Hour)},
		{ID: "user_c", Alias: "Serial Dreamer", XP: 50, JoinDate: base.Add(-time.Hour)},
	}
	for _, p := range players {
		require.NoError(t, repo.Save(ctx, p))
	}

	got, err := repo.Get(ctx, "user_b")
	require.NoError(t, err)
	require.Equal(t, "Viral Maker", got.Alias)
	require.True(t, got.JoinDate.Equal(base.Add(time.Hour)))

	top, err := repo.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, []string{"user_b", "user_c", "user_a"}, []string{top[0].ID, top[1].ID, top[2].ID})

	pos, err := repo.Position(ctx, "user_a")
	require.NoError(t, err)
	require.Equal(t, 3, pos)

	pos, err = repo.Position(ctx, "nobody")
	require.NoError(t, err)
	require.Zero(t, pos)

	players[0].XP = 500
	require.NoError(t, repo.Save(ctx, players[0]))
	pos, err = repo.Position(ctx, "user_a")
	require.NoError(t, err)
	require.Equal(t, 1, pos)
}

func TestPlayerRepositoryBacksService(t *testing.T) {
	ctx := context.Background()
	svc := gamify.NewService(openMemoryStore(t).Players(), gamify.WithChooser(pitch.FixedChooser(0)))

	p, err := svc.Register(ctx, "")
	require.NoError(t, err)

	award, err := svc.Award(ctx, p.ID, gamify.ActionMeme, "")
	require.NoError(t, err)
	require.Equal(t, 30, award.Profile.XP)

	board, err := svc.Leaderboard(ctx, 5)
	require.NoError(t, err)
	require.Len(t, board, 1)
}

func TestInvestorRepository(t *testing.T) {
	ctx := context.Background()
	repo := openMemoryStore(t).Investors()

	deal := investor.GenerateDeal(pitch.FixedChooser(0), time.Now().UTC())
	require.NoError(t, repo.SaveDeal(ctx, deal))

	taken, err := repo.TakeDeal(ctx, deal.ID)
	require.NoError(t, err)
	require.Equal(t, deal.CompanyName, taken.CompanyName)
	require.Equal(t, deal.Outcome, taken.Outcome)

	_, err = repo.TakeDeal(ctx, deal.ID)
	require.ErrorIs(t, err, investor.ErrDealNotFound)

	_, err = repo.GetProfile(ctx, "user_x")
	require.ErrorIs(t, err, investor.ErrProfileNotFound)

	profile := investor.NewProfile("user_x")
	profile.TotalDeals = 3
	require.NoError(t, repo.SaveProfile(ctx, profile))

	loaded, err := repo.GetProfile(ctx, "user_x")
	require.NoError(t, err)
	require.Equal(t, 3, loaded.TotalDeals)
}

func TestSettleDealIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := openMemoryStore(t).Investors()

	deal := investor.GenerateDeal(pitch.FixedChooser(0), time.Now().UTC())
	require.NoError(t, repo.SaveDeal(ctx, deal))

	_, err := repo.SettleDeal(ctx, deal.ID, func(investor.Deal) (investor.Profile, error) {
		return investor.Profile{}, errors.New("rejected")
	})
	require.ErrorContains(t, err, "rejected")
	_, err = repo.GetProfile(ctx, "user_y")
	require.ErrorIs(t, err, investor.ErrProfileNotFound)

	game := investor.NewGame(repo)
	v, err := game.Decide(ctx, "user_y", deal.ID, investor.Decision{Choice: investor.ChoiceInvest, Confidence: 3})
	require.NoError(t, err)
	require.Equal(t, deal.ID, v.Deal.ID)

	loaded, err := repo.GetProfile(ctx, "user_y")
	require.NoError(t, err)
	require.Equal(t, 1, loaded.TotalDeals)

	_, err = repo.TakeDeal(ctx, deal.ID)
	require.ErrorIs(t, err, investor.ErrDealNotFound)
}

func TestPruneDeals(t *testing.T) {
	ctx := context.Background()
	repo := openMemoryStore(t).Investors()

	old := investor.GenerateDeal(pitch.FixedChooser(0), time.Now().Add(-48*time.Hour))
	fresh := investor.GenerateDeal(pitch.FixedChooser(1), time.Now())
	require.NoError(t, repo.SaveDeal(ctx, old))
	require.NoError(t, repo.SaveDeal(ctx, fresh))

	removed, err := repo.PruneDeals(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	_, err = repo.TakeDeal(ctx, fresh.ID)
	require.NoError(t, err)
}

func TestDomainCache(t *testing.T) {
	ctx := context.Background()
	s := openMemoryStore(t)

	miss, err := s.GetDomainCheck(ctx, "rocketdog.app")
	require.NoError(t, err)
	require.Nil(t, miss)

	result := domains.Result{Domain: "rocketdog.app", Availability: domains.Available, CheckedAt: time.Now().UTC()}
	require.NoError(t, s.SetDomainCheck(ctx, result, time.Hour))

	hit, err := s.GetDomainCheck(ctx, "RocketDog.app")
	require.NoError(t, err)
	require.NotNil(t, hit)
	require.Equal(t, domains.Available, hit.Availability)

	require.NoError(t, s.SetDomainCheck(ctx, domains.Result{Domain: "gone.dev", Availability: domains.Taken}, -time.Second))
	expired, err := s.GetDomainCheck(ctx, "gone.dev")
	require.NoError(t, err)
	require.Nil(t, expired)
}
