// Package leaderboard keeps the global XP ranking in a redis sorted set
// while profiles stay in an underlying gamify.Repository.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/pitchslap/pitchslap/internal/config"
	"github.com/pitchslap/pitchslap/internal/gamify"
)

// DefaultKey is the sorted set used when none is configured.
const DefaultKey = "pitchslap:leaderboard"

// Redis decorates a gamify.Repository with a redis ranking index. The set is
// read in ascending order: the score is the negated XP and equal scores fall
// back to the member, which leads with the zero-padded join time in
// nanoseconds followed by the player id. That is the same XP, join, id order
// the SQL store and gamify.CompareRanking use.
type Redis struct {
	base   gamify.Repository
	client *redis.Client
	key    string
}

var _ gamify.Repository = (*Redis)(nil)

// NewClient builds a redis client from configuration.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// New layers the ranking index stored under key over base.
func New(base gamify.Repository, client *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{base: base, client: client, key: key}
}

// Ping checks the redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, id string) (gamify.Profile, error) {
	return r.base.Get(ctx, id)
}

// Save stores the profile, then updates its ranking and trims the set to the
// leaderboard size.
func (r *Redis) Save(ctx context.Context, p gamify.Profile) error {
	if err := r.base.Save(ctx, p); err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.ZAdd(ctx, r.key, redis.Z{Score: score(p), Member: member(p)})
	pipe.ZRemRangeByRank(ctx, r.key, gamify.LeaderboardSize, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("update leaderboard: %w", err)
	}
	return nil
}

func (r *Redis) Top(ctx context.Context, n int) ([]gamify.Profile, error) {
	if n <= 0 || n > gamify.LeaderboardSize {
		n = gamify.LeaderboardSize
	}

	members, err := r.client.ZRange(ctx, r.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	out := make([]gamify.Profile, 0, len(members))
	for _, m := range members {
		id, ok := memberID(m)
		if !ok {
			continue
		}
		p, err := r.base.Get(ctx, id)
		if errors.Is(err, gamify.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Position derives the member from the stored profile, so unknown players
// rank 0.
func (r *Redis) Position(ctx context.Context, id string) (int, error) {
	p, err := r.base.Get(ctx, id)
	if errors.Is(err, gamify.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	rank, err := r.client.ZRank(ctx, r.key, member(p)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read leaderboard rank: %w", err)
	}
	if rank >= gamify.LeaderboardSize {
		return 0, nil
	}
	return int(rank) + 1, nil
}

// Rebuild reloads the index from the base repository's own ranking.
func (r *Redis) Rebuild(ctx context.Context) error {
	top, err := r.base.Top(ctx, gamify.LeaderboardSize)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key)
	for _, p := range top {
		pipe.ZAdd(ctx, r.key, redis.Z{Score: score(p), Member: member(p)})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rebuild leaderboard: %w", err)
	}
	return nil
}

// score is exact for any XP below 2^53.
func score(p gamify.Profile) float64 {
	return -float64(p.XP)
}

// joinWidth fits every non-negative int64.
const joinWidth = 19

// member sorts byte-wise by join time and then id. Joins before the epoch
// clamp to zero.
func member(p gamify.Profile) string {
	var joined int64
	if p.JoinDate.Unix() >= 0 {
		joined = p.JoinDate.UnixNano()
	}
	ts := strconv.FormatInt(joined, 10)
	return strings.Repeat("0", joinWidth-len(ts)) + ts + ":" + p.ID
}

func memberID(m string) (string, bool) {
	if len(m) <= joinWidth || m[joinWidth] != ':' {
		return "", false
	}
	return m[joinWidth+1:], true
}
