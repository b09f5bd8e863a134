package investor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pitchslap/pitchslap/internal/pitch"
)

var (
	// ErrDealNotFound is returned for unknown or already decided deals.
	ErrDealNotFound = errors.New("deal not found")
	// ErrProfileNotFound is returned by repositories for unknown players.
	ErrProfileNotFound = errors.New("investor profile not found")
)

// Repository persists open deals and investor profiles. TakeDeal removes
// the deal it returns so each deal is decided once.
type Repository interface {
	SaveDeal(ctx context.Context, d Deal) error
	TakeDeal(ctx context.Context, id string) (Deal, error)
	GetProfile(ctx context.Context, playerID string) (Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
}

// Verdict is the outcome of Decide.
type Verdict struct {
	Deal    Deal    `json:"deal"`
	Result  Result  `json:"result"`
	Profile Profile `json:"profile"`
}

// Game runs the investor simulator over a Repository.
type Game struct {
	mu       sync.Mutex
	repo     Repository
	chooser  pitch.Chooser
	now      func() time.Time
	onDecide func(Verdict)
}

// GameOption configures a Game.
type GameOption func(*Game)

func WithChooser(c pitch.Chooser) GameOption {
	return func(g *Game) { g.chooser = c }
}

func WithClock(now func() time.Time) GameOption {
	return func(g *Game) { g.now = now }
}

// WithDecisionHook registers a callback for every decided deal.
func WithDecisionHook(fn func(Verdict)) GameOption {
	return func(g *Game) { g.onDecide = fn }
}

// NewGame wires a Game over repo.
func NewGame(repo Repository, opts ...GameOption) *Game {
	g := &Game{repo: repo, chooser: pitch.RandomChooser{}, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Deal generates and stores a new deal.
func (g *Game) Deal(ctx context.Context) (Deal, error) {
	d := GenerateDeal(g.chooser, g.now())
	if err := g.repo.SaveDeal(ctx, d); err != nil {
		return Deal{}, fmt.Errorf("save deal: %w", err)
	}
	return d, nil
}

// Settler is implemented by repositories that can consume a deal and store
// the updated profile atomically. Decide prefers it over TakeDeal.
type Settler interface {
	SettleDeal(ctx context.Context, id string, settle func(Deal) (Profile, error)) (Deal, error)
}

// Decide evaluates the player's decision on an open deal and updates the
// player's record. The deal stays open when the record cannot be saved.
func (g *Game) Decide(ctx context.Context, playerID, dealID string, decision Decision) (Verdict, error) {
	if decision.Choice != ChoiceInvest && decision.Choice != ChoicePass {
		return Verdict{}, fmt.Errorf("unknown decision %q", decision.Choice)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	profile, err := g.profile(ctx, playerID)
	if err != nil {
		return Verdict{}, err
	}

	var result Result
	apply := func(d Deal) Profile {
		result = Evaluate(d, decision)
		profile.Record(result)
		return profile
	}

	var d Deal
	if s, ok := g.repo.(Settler); ok {
		d, err = s.SettleDeal(ctx, dealID, func(d Deal) (Profile, error) { return apply(d), nil })
		if err != nil {
			return Verdict{}, err
		}
	} else {
		d, err = g.repo.TakeDeal(ctx, dealID)
		if err != nil {
			return Verdict{}, err
		}
		if err := g.repo.SaveProfile(ctx, apply(d)); err != nil {
			if rerr := g.repo.SaveDeal(ctx, d); rerr != nil {
				return Verdict{}, errors.Join(fmt.Errorf("save investor profile: %w", err), fmt.Errorf("reopen deal: %w", rerr))
			}
			return Verdict{}, fmt.Errorf("save investor profile: %w", err)
		}
	}

	v := Verdict{Deal: d, Result: result, Profile: profile}
	if g.onDecide != nil {
		g.onDecide(v)
	}
	return v, nil
}

// Profile returns the player's record, empty when none exists yet.
func (g *Game) Profile(ctx context.Context, playerID string) (Profile, error) {
	return g.profile(ctx, playerID)
}

func (g *Game) profile(ctx context.Context, playerID string) (Profile, error) {
	p, err := g.repo.GetProfile(ctx, playerID)
	if errors.Is(err, ErrProfileNotFound) {
		return NewProfile(playerID), nil
	}
	return p, err
}

// MemoryRepository keeps deals and profiles in process memory.
type MemoryRepository struct {
	mu       sync.Mutex
	deals    map[string]Deal
	profiles map[string]Profile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		deals:    make(map[string]Deal),
		profiles: make(map[string]Profile),
	}
}

func (m *MemoryRepository) SaveDeal(_ context.Context, d Deal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deals[d.ID] = d
	return nil
}

func (m *MemoryRepository) TakeDeal(_ context.Context, id string) (Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deals[id]
	if !ok {
		return Deal{}, ErrDealNotFound
	}
	delete(m.deals, id)
	return d, nil
}

func (m *MemoryRepository) GetProfile(_ context.Context, playerID string) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[playerID]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func (m *MemoryRepository) SaveProfile(_ context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.PlayerID] = p
	return nil
}
