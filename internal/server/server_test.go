package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchslap/pitchslap/internal/config"
	apperrors "github.com/pitchslap/pitchslap/internal/errors"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/investor"
	"github.com/pitchslap/pitchslap/internal/pitch"
	"github.com/pitchslap/pitchslap/internal/prompt"
	"github.com/pitchslap/pitchslap/internal/server/handlers"
)

const dogPitch = "We use AI to match dog walkers with busy pet owners in big cities."

func newTestServer(t *testing.T) *Server {
	t.Helper()
	chooser := pitch.FixedChooser(0)
	prompts, err := prompt.DefaultRegistry()
	require.NoError(t, err)
	api := &handlers.API{
		Engine:         pitch.New(pitch.WithChooser(chooser)),
		Players:        gamify.NewService(gamify.NewMemoryRepository(), gamify.WithChooser(chooser)),
		Investor:       investor.NewGame(investor.NewMemoryRepository(), investor.WithChooser(chooser)),
		Prompts:        prompts,
		MaxPitchLength: 500,
	}
	return New(config.ServerConfig{Host: "127.0.0.1"}, Options{API: api, MaxBodyBytes: 4096})
}

func do(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apperrors.HTTPErrorResponse](t, rec).Error.Code
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := New(config.ServerConfig{Host: "127.0.0.1"}, Options{})

	rec := do(t, srv, http.MethodGet, "/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.CodeNotFound, errorCode(t, rec))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, srv, http.MethodDelete, "/version", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, apperrors.CodeMethodNotAllowed, errorCode(t, rec))
}

func TestHealthRoutesCanBeDisabled(t *testing.T) {
	srv := New(config.ServerConfig{Host: "127.0.0.1"}, Options{})
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/health/live", nil).Code)

	srv = New(config.ServerConfig{Host: "127.0.0.1"}, Options{DisableHealth: true})
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/version", nil).Code)
}

func TestGenerateRoast(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/v1/pitch/roast", handlers.PitchRequest{Pitch: dogPitch})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[handlers.PitchResponse](t, rec)
	assert.Equal(t, pitch.ModeRoast, resp.Mode)
	assert.NotEmpty(t, resp.Roast)
	assert.Empty(t, resp.Error)
	assert.Empty(t, resp.Awards)
}

func TestGenerateScorecardFromPrompt(t *testing.T) {
	srv := newTestServer(t)
	prompts, err := prompt.DefaultRegistry()
	require.NoError(t, err)
	p, err := prompts.ForMode("scorecard")
	require.NoError(t, err)

	rec := do(t, srv, http.MethodPost, "/api/v1/pitch/scorecard", handlers.PitchRequest{Prompt: p.Render(dogPitch)})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[handlers.PitchResponse](t, rec)
	require.NotNil(t, resp.Scores)
	assert.NotEmpty(t, resp.Scorecard)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/v1/pitch/haiku", handlers.PitchRequest{Pitch: dogPitch})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.CodeUnknownMode, errorCode(t, rec))

	rec = do(t, srv, http.MethodPost, "/api/v1/pitch/roast", handlers.PitchRequest{Pitch: strings.Repeat("a", 501)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, apperrors.CodePitchTooLong, errorCode(t, rec))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pitch/roast", strings.NewReader("{not json"))
	bad := httptest.NewRecorder()
	srv.Handler().ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	rec = do(t, srv, http.MethodPost, "/api/v1/pitch/roast", handlers.PitchRequest{Pitch: strings.Repeat("b", 5000)})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "body limit applies before the pitch limit")
}

func TestShortPitchIsNotRewarded(t *testing.T) {
	srv := newTestServer(t)
	player := decode[handlers.PlayerResponse](t, do(t, srv, http.MethodPost, "/api/v1/players", map[string]string{"alias": "Tester"}))

	rec := do(t, srv, http.MethodPost, "/api/v1/pitch/fixit", handlers.PitchRequest{Pitch: "hi", PlayerID: player.Profile.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[handlers.PitchResponse](t, rec)
	assert.Equal(t, "insufficient_input", resp.Branch)
	assert.Empty(t, resp.Awards)
}

func TestPlayerLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/v1/players", map[string]string{"alias": "Pat"})
	require.Equal(t, http.StatusCreated, rec.Code)
	player := decode[handlers.PlayerResponse](t, rec)
	assert.Equal(t, "Pat", player.Profile.Alias)
	assert.Equal(t, 1, player.Position)
	id := player.Profile.ID

	rec = do(t, srv, http.MethodPost, "/api/v1/pitch/meme", handlers.PitchRequest{Pitch: dogPitch, PlayerID: id})
	require.Equal(t, http.StatusOK, rec.Code)
	gen := decode[handlers.PitchResponse](t, rec)
	require.Len(t, gen.Awards, 2)
	assert.Equal(t, gamify.ActionPitchSubmit, gen.Awards[0].Action)
	assert.Equal(t, gamify.ActionMeme, gen.Awards[1].Action)

	rec = do(t, srv, http.MethodPost, "/api/v1/players/"+id+"/actions", map[string]string{"action": "share_meme"})
	require.Equal(t, http.StatusOK, rec.Code)
	award := decode[gamify.Award](t, rec)
	assert.Equal(t, 1, award.Profile.TotalMemes)

	rec = do(t, srv, http.MethodPost, "/api/v1/players/"+id+"/actions", map[string]string{"action": "dance"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPatch, "/api/v1/players/"+id, map[string]string{"alias": "Patricia"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Patricia", decode[handlers.PlayerResponse](t, rec).Profile.Alias)

	rec = do(t, srv, http.MethodGet, "/api/v1/players/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[handlers.PlayerResponse](t, rec)
	assert.Equal(t, award.Profile.XP, got.Profile.XP)
	assert.Equal(t, gamify.ProgressFor(got.Profile.XP), got.Progress)

	rec = do(t, srv, http.MethodGet, "/api/v1/players/nobody", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.CodePlayerNotFound, errorCode(t, rec))
}

func TestLeaderboardOrdersByXP(t *testing.T) {
	srv := newTestServer(t)
	low := decode[handlers.PlayerResponse](t, do(t, srv, http.MethodPost, "/api/v1/players", map[string]string{"alias": "Low"}))
	high := decode[handlers.PlayerResponse](t, do(t, srv, http.MethodPost, "/api/v1/players", map[string]string{"alias": "High"}))
	do(t, srv, http.MethodPost, "/api/v1/players/"+high.Profile.ID+"/actions", map[string]string{"action": "voice_roast"})

	rec := do(t, srv, http.MethodGet, "/api/v1/leaderboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decode[struct {
		Players []gamify.Profile `json:"players"`
	}](t, rec)
	require.Len(t, board.Players, 2)
	assert.Equal(t, high.Profile.ID, board.Players[0].ID)
	assert.Equal(t, low.Profile.ID, board.Players[1].ID)

	rec = do(t, srv, http.MethodGet, "/api/v1/leaderboard?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[struct {
		Players []gamify.Profile `json:"players"`
	}](t, rec).Players, 1)

	rec = do(t, srv, http.MethodGet, "/api/v1/leaderboard?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvestorFlow(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/v1/invest/deals", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	offer := decode[investor.Offer](t, rec)
	require.NotEmpty(t, offer.ID)
	assert.NotEmpty(t, offer.CompanyName)

	decision := map[string]any{"playerId": "p-1", "decision": "invest", "confidence": 4}
	rec = do(t, srv, http.MethodPost, "/api/v1/invest/deals/"+offer.ID+"/decision", decision)
	require.Equal(t, http.StatusOK, rec.Code)
	verdict := decode[investor.Verdict](t, rec)
	assert.Equal(t, 1, verdict.Profile.TotalDeals)
	assert.NotEmpty(t, verdict.Result.Explanation)

	rec = do(t, srv, http.MethodPost, "/api/v1/invest/deals/"+offer.ID+"/decision", decision)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.CodeDealNotFound, errorCode(t, rec))

	rec = do(t, srv, http.MethodGet, "/api/v1/invest/players/p-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rank"`)
}

func TestRenderMemePNG(t *testing.T) {
	srv := newTestServer(t)

	meme := pitch.Meme{Template: pitch.TemplateDrake, TopText: "Building a product", BottomText: "Building a waitlist"}
	rec := do(t, srv, http.MethodPost, "/api/v1/meme/render", meme)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())

	rec = do(t, srv, http.MethodPost, "/api/v1/meme/render", pitch.Meme{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSpeechEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/v1/speech", map[string]any{"text": "🔥 **Brutal.** Truly.", "voice": "snarky-teen"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Brutal. Truly.")
	assert.Contains(t, body, "snarky-teen")

	rec = do(t, srv, http.MethodPost, "/api/v1/speech", map[string]any{"text": "hello", "voice": "robot"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/v1/speech/voices", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "savage-vc")
}

func TestDisabledFeaturesReturnUnavailable(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/v1/domains/check", map[string][]string{"domains": {"example.com"}})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, apperrors.CodeUnavailable, errorCode(t, rec))
}

func TestPromptEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/v1/prompts/roast?pitch=Uber+for+socks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Uber for socks")

	rec = do(t, srv, http.MethodGet, "/api/v1/prompts/haiku", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
