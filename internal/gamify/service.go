package gamify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pitchslap/pitchslap/internal/pitch"
)

// LeaderboardSize is how many players the global leaderboard keeps.
const LeaderboardSize = 100

// ErrNotFound is returned when a profile does not exist.
var ErrNotFound = errors.New("profile not found")

// Repository persists profiles and answers leaderboard queries. Top returns
// at most min(n, LeaderboardSize) profiles ordered by XP descending. Position
// is 1-based and 0 when the player is outside the leaderboard.
type Repository interface {
	Get(ctx context.Context, id string) (Profile, error)
	Save(ctx context.Context, p Profile) error
	Top(ctx context.Context, n int) ([]Profile, error)
	Position(ctx context.Context, id string) (int, error)
}

// Award is the result of crediting an action.
type Award struct {
	Profile   Profile `json:"profile"`
	Action    Action  `json:"action"`
	XP        int     `json:"xp"`
	LeveledUp bool    `json:"leveledUp"`
	NewRank   string  `json:"newRank,omitempty"`
}

// AwardHook observes every successful award.
type AwardHook func(Award)

// Service applies the XP rules on top of a Repository. Read-modify-write
// cycles are serialized within the process.
type Service struct {
	mu      sync.Mutex
	repo    Repository
	chooser pitch.Chooser
	now     func() time.Time
	hook    AwardHook
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithChooser sets the chooser used for random aliases.
func WithChooser(c pitch.Chooser) ServiceOption {
	return func(s *Service) { s.chooser = c }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithAwardHook registers a callback for every award.
func WithAwardHook(h AwardHook) ServiceOption {
	return func(s *Service) { s.hook = h }
}

// NewService wires a Service over repo.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:    repo,
		chooser: pitch.RandomChooser{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates and stores a new profile.
func (s *Service) Register(ctx context.Context, alias string) (Profile, error) {
	p := NewProfile(alias, s.chooser, s.now())
	if err := s.repo.Save(ctx, p); err != nil {
		return Profile{}, fmt.Errorf("save new profile: %w", err)
	}
	return p, nil
}

// Profile loads a profile by id.
func (s *Service) Profile(ctx context.Context, id string) (Profile, error) {
	return s.repo.Get(ctx, id)
}

// Award credits action to the player. pitchTitle is recorded as the most
// roasted pitch for pitch submissions.
func (s *Service) Award(ctx context.Context, id string, action Action, pitchTitle string) (Award, error) {
	awards, err := s.credit(ctx, id, credit{action: action, title: pitchTitle})
	if err != nil {
		return Award{}, err
	}
	return awards[0], nil
}

// AwardGeneration credits a pitch submission plus the mode's action in a
// single save. A fallback or short-circuited response earns nothing.
func (s *Service) AwardGeneration(ctx context.Context, id string, text string, resp pitch.Response) ([]Award, error) {
	if resp.Failed() || resp.Branch == "insufficient_input" {
		return nil, nil
	}
	return s.credit(ctx, id,
		credit{action: ActionPitchSubmit, title: pitchTitle(text)},
		credit{action: ActionForMode(resp.Mode)},
	)
}

type credit struct {
	action Action
	title  string
}

// credit applies every action to one loaded profile and persists it once,
// so either all of them land or none do.
func (s *Service) credit(ctx context.Context, id string, credits ...credit) ([]Award, error) {
	rewards := make([]Reward, len(credits))
	for i, c := range credits {
		reward, ok := RewardFor(c.action)
		if !ok {
			return nil, fmt.Errorf("unknown action %q", c.action)
		}
		rewards[i] = reward
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	awards := make([]Award, len(credits))
	for i, c := range credits {
		leveledUp := p.apply(rewards[i], strings.TrimSpace(c.title), s.now())
		awards[i] = Award{Profile: p, Action: c.action, XP: rewards[i].XP, LeveledUp: leveledUp}
		if leveledUp {
			awards[i].NewRank = p.Rank
		}
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	if s.hook != nil {
		for _, a := range awards {
			s.hook(a)
		}
	}
	return awards, nil
}

// Rename changes a player's alias. A blank alias draws a random one.
func (s *Service) Rename(ctx context.Context, id, alias string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	p.Alias = strings.TrimSpace(alias)
	if p.Alias == "" {
		p.Alias = RandomAlias(s.chooser)
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

// Leaderboard returns the top n players.
func (s *Service) Leaderboard(ctx context.Context, n int) ([]Profile, error) {
	if n <= 0 || n > LeaderboardSize {
		n = LeaderboardSize
	}
	return s.repo.Top(ctx, n)
}

// Position returns the player's 1-based leaderboard position, 0 if unranked.
func (s *Service) Position(ctx context.Context, id string) (int, error) {
	return s.repo.Position(ctx, id)
}

const pitchTitleLength = 60

func pitchTitle(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= pitchTitleLength {
		return text
	}
	return string(runes[:pitchTitleLength]) + "…"
}
