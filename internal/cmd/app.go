package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/config"
	"github.com/pitchslap/pitchslap/internal/domains"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/investor"
	"github.com/pitchslap/pitchslap/internal/leaderboard"
	"github.com/pitchslap/pitchslap/internal/metrics"
	"github.com/pitchslap/pitchslap/internal/pitch"
	"github.com/pitchslap/pitchslap/internal/prompt"
	"github.com/pitchslap/pitchslap/internal/store"
)

// openStore opens the configured database and applies the schema.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// newChooser returns a reproducible chooser when engine.seed is set.
func newChooser(cfg *config.Config) pitch.Chooser {
	if cfg.Engine.Seed != 0 {
		return pitch.NewSeededChooser(cfg.Engine.Seed)
	}
	return pitch.RandomChooser{}
}

func newEngine(cfg *config.Config, chooser pitch.Chooser, extra ...pitch.Option) *pitch.Engine {
	opts := []pitch.Option{
		pitch.WithChooser(chooser),
		pitch.WithMinLength(cfg.Engine.MinPitchLength),
		pitch.WithThinkingDelay(cfg.Engine.ThinkingDelay),
	}
	return pitch.New(append(opts, extra...)...)
}

// loadPrompts returns the built-in templates, or those in dir when set.
func loadPrompts(dir string) (prompt.Registry, error) {
	if dir == "" {
		return prompt.DefaultRegistry()
	}
	prompts, err := prompt.LoadFromDir(dir)
	if err != nil {
		return nil, err
	}
	return prompt.NewRegistry(prompts)
}

// services bundles the stateful collaborators shared by serve and the CLI.
type services struct {
	cfg      *config.Config
	store    *store.Store
	redis    *redis.Client
	board    *leaderboard.Redis
	chooser  pitch.Chooser
	players  *gamify.Service
	investor *investor.Game
}

// openServices opens the store and builds the player and investor services
// for the configured leaderboard backend.
func openServices(ctx context.Context, cfg *config.Config) (*services, error) {
	s := &services{cfg: cfg, chooser: newChooser(cfg)}

	var (
		players   gamify.Repository
		investors investor.Repository
	)
	switch cfg.Leaderboard.Backend {
	case config.BackendMemory:
		players = gamify.NewMemoryRepository()
		investors = investor.NewMemoryRepository()
	default:
		db, err := openStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s.store = db
		players = db.Players()
		investors = db.Investors()
	}

	if cfg.Leaderboard.Backend == config.BackendRedis {
		s.redis = leaderboard.NewClient(cfg.Leaderboard.Redis)
		s.board = leaderboard.New(players, s.redis, cfg.Leaderboard.Redis.Key)
		players = s.board
	}

	s.players = gamify.NewService(players,
		gamify.WithChooser(s.chooser),
		gamify.WithAwardHook(func(a gamify.Award) {
			metrics.RecordXP(string(a.Action), a.XP, a.LeveledUp)
		}))
	s.investor = investor.NewGame(investors,
		investor.WithChooser(s.chooser),
		investor.WithDecisionHook(func(v investor.Verdict) {
			metrics.RecordInvestorDecision(v.Result.Correct)
		}))
	return s, nil
}

// Close releases the store and redis connections.
func (s *services) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	return errors.Join(errs...)
}

// domainCacheStore returns the store RDAP results are cached in, or nil when
// caching is off. shared is reused when open; otherwise the store is opened
// here and release closes it.
func domainCacheStore(ctx context.Context, cfg *config.Config, shared *store.Store) (db *store.Store, release func(), err error) {
	release = func() {}
	if !cfg.Domains.CacheInStore() {
		return nil, release, nil
	}
	if shared != nil {
		return shared, release, nil
	}
	db, err = openStore(ctx, cfg)
	if err != nil {
		return nil, release, err
	}
	return db, func() { _ = db.Close() }, nil
}

// newDomainChecker returns nil when domain checks are disabled. Results are
// cached in db when it is non-nil.
func newDomainChecker(cfg *config.Config, db *store.Store) *domains.Checker {
	if !cfg.Domains.Enabled {
		return nil
	}
	checker := &domains.Checker{
		Servers:  cfg.Domains.Servers,
		Timeout:  cfg.Domains.Timeout,
		CacheTTL: cfg.Domains.CacheTTL,
	}
	if db != nil {
		checker.Cache = db
	}
	return checker
}

// pruneDeals drops undecided investor deals older than maxAge.
func pruneDeals(ctx context.Context, db *store.Store, maxAge time.Duration, log func(string, ...zap.Field)) error {
	if db == nil {
		return nil
	}
	n, err := db.Investors().PruneDeals(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return fmt.Errorf("prune deals: %w", err)
	}
	if log != nil && n > 0 {
		log("Pruned stale investor deals", zap.Int64("count", n))
	}
	return nil
}
