package domains

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu    sync.Mutex
	items map[string]Result
	sets  int
}

func (m *memoryCache) GetDomainCheck(_ context.Context, domain string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[domain]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memoryCache) SetDomainCheck(_ context.Context, r Result, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = map[string]Result{}
	}
	m.items[r.Domain] = r
	m.sets++
	return nil
}

func rdapServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/domain/taken.io"):
			w.Header().Set("Content-Type", "application/rdap+json")
			_, _ = w.Write([]byte(`{
  "objectClassName": "domain",
  "ldhName": "taken.io",
  "status": ["active"],
  "events": [{"eventAction": "expiration", "eventDate": "2027-01-01T00:00:00Z"}]
}`))
		case strings.HasSuffix(r.URL.Path, "/domain/busy.io"):
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheckAvailableAndTaken(t *testing.T) {
	server := rdapServer(t)
	checker := &Checker{Servers: map[string][]string{"io": {server.URL}}}

	r, err := checker.Check(context.Background(), "FreshIdea.io")
	require.NoError(t, err)
	assert.Equal(t, Available, r.Availability)
	assert.Equal(t, "freshidea.io", r.Domain)
	assert.Equal(t, http.StatusNotFound, r.StatusCode)

	r, err = checker.Check(context.Background(), "taken.io")
	require.NoError(t, err)
	assert.Equal(t, Taken, r.Availability)
	assert.Equal(t, "2027-01-01T00:00:00Z", r.Expiration)
}

func TestCheckRateLimited(t *testing.T) {
	server := rdapServer(t)
	checker := &Checker{Servers: map[string][]string{"io": {server.URL}}}

	r, err := checker.Check(context.Background(), "busy.io")
	require.NoError(t, err)
	assert.Equal(t, RateLimited, r.Availability)
}

func TestCheckUsesCache(t *testing.T) {
	server := rdapServer(t)
	cache := &memoryCache{}
	var fresh int
	checker := &Checker{
		Servers:  map[string][]string{"io": {server.URL}},
		Cache:    cache,
		CacheTTL: time.Hour,
		OnResult: func(Result) { fresh++ },
	}

	first, err := checker.Check(context.Background(), "taken.io")
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := checker.Check(context.Background(), "taken.io")
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, Taken, second.Availability)
	assert.Equal(t, 1, fresh)
	assert.Equal(t, 1, cache.sets)

	_, err = checker.Check(context.Background(), "busy.io")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "rate limited results are not cached")
}

func TestCheckAllPreservesOrder(t *testing.T) {
	server := rdapServer(t)
	checker := &Checker{Servers: map[string][]string{"io": {server.URL}}}

	results := checker.CheckAll(context.Background(), []string{"taken.io", "fresh.io", "nodot"})
	require.Len(t, results, 3)
	assert.Equal(t, Taken, results[0].Availability)
	assert.Equal(t, Available, results[1].Availability)
	assert.Equal(t, Failed, results[2].Availability)
	assert.Equal(t, "nodot", results[2].Domain)
}

func TestNormalize(t *testing.T) {
	name, tld, err := normalize(" Pitch.Slap.AI. ")
	require.NoError(t, err)
	assert.Equal(t, "pitch.slap.ai", name)
	assert.Equal(t, "ai", tld)

	for _, bad := range []string{"", "nodot", ".io", "trailing."} {
		_, _, err := normalize(bad)
		assert.Error(t, err, bad)
	}
}
