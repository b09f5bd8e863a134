//go:build cgo

package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pitchslap/pitchslap/internal/config"
)

func TestDomainCacheOpensStoreForMemoryBackend(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Store:       config.StoreConfig{Driver: "libsql", Path: ":memory:"},
		Leaderboard: config.LeaderboardConfig{Backend: config.BackendMemory},
		Domains:     config.DomainsConfig{Cache: true, CacheTTL: time.Hour},
	}

	db, release, err := domainCacheStore(ctx, cfg, nil)
	require.NoError(t, err)
	defer release()
	require.NotNil(t, db)
	require.NoError(t, db.CheckHealth(ctx))

	checker := newDomainChecker(&config.Config{Domains: config.DomainsConfig{Enabled: true, CacheTTL: time.Hour}}, db)
	require.NotNil(t, checker)
	require.NotNil(t, checker.Cache)
}
