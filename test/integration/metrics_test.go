package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchslap/pitchslap/internal/config"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/investor"
	"github.com/pitchslap/pitchslap/internal/metrics"
	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/pitch"
	"github.com/pitchslap/pitchslap/internal/prompt"
	"github.com/pitchslap/pitchslap/internal/server"
	"github.com/pitchslap/pitchslap/internal/server/handlers"
)

const restaurantPitch = "We use AI to help small restaurants predict demand and cut food waste."

// isPermissionError reports sandbox refusals to open loopback sockets.
func isPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EACCES) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "permission denied") || strings.Contains(msg, "not permitted")
}

func initMetricsOrSkip(t *testing.T) {
	t.Helper()
	if err := observability.InitMetrics("test", 0, "test"); err != nil {
		if isPermissionError(err) {
			t.Skipf("metrics exporter unavailable: %v", err)
		}
		require.NoError(t, err)
	}
	t.Cleanup(func() { _ = observability.StopMetrics() })
}

// newPitchServer serves the API over in-memory players and deals with the
// same metric hooks serve installs.
func newPitchServer(t *testing.T) *httptest.Server {
	t.Helper()
	observability.InitCLILogger("test", false)
	observability.InitServerLogger("test", config.LoggingConfig{Level: "info"})

	prompts, err := prompt.DefaultRegistry()
	require.NoError(t, err)
	api := &handlers.API{
		Engine: pitch.New(
			pitch.WithChooser(pitch.FixedChooser(0)),
			pitch.WithObserver(metrics.PitchObserver(nil))),
		Players: gamify.NewService(gamify.NewMemoryRepository(),
			gamify.WithAwardHook(func(a gamify.Award) {
				metrics.RecordXP(string(a.Action), a.XP, a.LeveledUp)
			})),
		Investor: investor.NewGame(investor.NewMemoryRepository(),
			investor.WithDecisionHook(func(v investor.Verdict) {
				metrics.RecordInvestorDecision(v.Result.Correct)
			})),
		Prompts:        prompts,
		MaxPitchLength: 500,
	}
	srv := server.New(config.ServerConfig{Host: "127.0.0.1"}, server.Options{
		API:    api,
		Health: handlers.NewHealthManager("test"),
	})

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		if isPermissionError(err) {
			t.Skipf("loopback listener unavailable: %v", err)
		}
		require.NoError(t, err)
	}
	ts := &httptest.Server{Listener: listener, Config: &http.Server{Handler: srv.Handler()}}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any, out any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := ts.Client().Post(ts.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func scrape(t *testing.T, ts *httptest.Server) (int, string, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(body)
}

func TestPitchAndXPFlowMetrics(t *testing.T) {
	initMetricsOrSkip(t)
	ts := newPitchServer(t)

	var player handlers.PlayerResponse
	require.Equal(t, http.StatusCreated, postJSON(t, ts, "/api/v1/players", map[string]string{"alias": "Pat"}, &player))
	require.NotEmpty(t, player.Profile.ID)

	modes := []pitch.Mode{pitch.ModeRoast, pitch.ModeFixIt, pitch.ModeScorecard, pitch.ModeBranding, pitch.ModeMeme}
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		awarded int
	)
	for _, mode := range modes {
		wg.Add(1)
		go func(mode pitch.Mode) {
			defer wg.Done()
			var out handlers.PitchResponse
			status := postJSON(t, ts, "/api/v1/pitch/"+string(mode),
				handlers.PitchRequest{Pitch: restaurantPitch, PlayerID: player.Profile.ID}, &out)
			assert.Equal(t, http.StatusOK, status, mode)
			assert.Empty(t, out.Error, mode)
			assert.Len(t, out.Awards, 2, mode)

			mu.Lock()
			defer mu.Unlock()
			for _, a := range out.Awards {
				awarded += a.XP
			}
		}(mode)
	}
	wg.Wait()

	resp, err := ts.Client().Get(ts.URL + "/api/v1/players/" + player.Profile.ID)
	require.NoError(t, err)
	var after handlers.PlayerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&after))
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, awarded, after.Profile.XP)
	assert.Equal(t, len(modes), after.Profile.TotalPitches)
	assert.Equal(t, 1, after.Position)

	var deal investor.Offer
	require.Equal(t, http.StatusCreated, postJSON(t, ts, "/api/v1/invest/deals", nil, &deal))
	var verdict investor.Verdict
	require.Equal(t, http.StatusOK, postJSON(t, ts, "/api/v1/invest/deals/"+deal.ID+"/decision",
		map[string]any{"playerId": player.Profile.ID, "decision": "invest", "confidence": 4}, &verdict))
	assert.Equal(t, 1, verdict.Profile.TotalDeals)

	status, contentType, body := scrape(t, ts)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(contentType, "text/plain; version=0.0.4"), contentType)
	for _, name := range []string{
		"test_http_requests_total",
		"test_pitch_generations_total",
		"test_pitch_generation_duration_ms",
		"test_xp_awarded_total",
		"test_investor_decisions_total",
	} {
		assert.Contains(t, body, name)
	}
	assert.Contains(t, body, `mode="meme"`)
	assert.Contains(t, body, `action="pitch_submit"`)
}

func TestShortPitchEarnsNoXP(t *testing.T) {
	initMetricsOrSkip(t)
	ts := newPitchServer(t)

	var player handlers.PlayerResponse
	require.Equal(t, http.StatusCreated, postJSON(t, ts, "/api/v1/players", map[string]string{"alias": "Sam"}, &player))

	var out handlers.PitchResponse
	require.Equal(t, http.StatusOK, postJSON(t, ts, "/api/v1/pitch/roast",
		handlers.PitchRequest{Pitch: "hi there", PlayerID: player.Profile.ID}, &out))
	assert.Equal(t, "insufficient_input", out.Branch)
	assert.Empty(t, out.Awards)

	_, _, body := scrape(t, ts)
	assert.Contains(t, body, `outcome="short_circuit"`)
}

func TestMetricsUnavailableWithoutTelemetry(t *testing.T) {
	originalExporter := observability.PrometheusExporter
	originalTelemetry := observability.TelemetrySystem
	observability.PrometheusExporter = nil
	observability.TelemetrySystem = nil
	t.Cleanup(func() {
		observability.PrometheusExporter = originalExporter
		observability.TelemetrySystem = originalTelemetry
	})
	t.Setenv("PITCHSLAP_METRICS_ENABLED", "false")

	ts := newPitchServer(t)

	var out handlers.PitchResponse
	require.Equal(t, http.StatusOK, postJSON(t, ts, "/api/v1/pitch/scorecard",
		handlers.PitchRequest{Pitch: restaurantPitch}, &out))
	assert.NotNil(t, out.Scores)

	status, _, _ := scrape(t, ts)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
