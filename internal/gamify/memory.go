package gamify

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryRepository keeps profiles in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[string]Profile)}
}

func (m *MemoryRepository) Get(_ context.Context, id string) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (m *MemoryRepository) Save(_ context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
	return nil
}

func (m *MemoryRepository) Top(_ context.Context, n int) ([]Profile, error) {
	ranked := m.ranked()
	if n <= 0 || n > LeaderboardSize {
		n = LeaderboardSize
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

func (m *MemoryRepository) Position(_ context.Context, id string) (int, error) {
	ranked := m.ranked()
	if len(ranked) > LeaderboardSize {
		ranked = ranked[:LeaderboardSize]
	}
	for i, p := range ranked {
		if p.ID == id {
			return i + 1, nil
		}
	}
	return 0, nil
}

// ranked orders by XP descending, then earliest join, then id.
func (m *MemoryRepository) ranked() []Profile {
	m.mu.RLock()
	out := make([]Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, CompareRanking)
	return out
}

// CompareRanking orders profiles for the leaderboard.
func CompareRanking(a, b Profile) int {
	if c := cmp.Compare(b.XP, a.XP); c != 0 {
		return c
	}
	if c := a.JoinDate.Compare(b.JoinDate); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
