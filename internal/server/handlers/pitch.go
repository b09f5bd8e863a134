package handlers

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/pitchslap/pitchslap/internal/errors"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/metrics"
	"github.com/pitchslap/pitchslap/internal/pitch"
	"github.com/pitchslap/pitchslap/internal/prompt"
)

// PitchRequest is the body of a generation call. Prompt may carry a full
// rendered prompt instead of Pitch; the pitch is extracted from it.
type PitchRequest struct {
	Pitch    string `json:"pitch"`
	Prompt   string `json:"prompt,omitempty"`
	PlayerID string `json:"playerId,omitempty"`
}

// PitchResponse is the engine response plus any XP awarded for it.
type PitchResponse struct {
	pitch.Response
	Awards []gamify.Award `json:"awards,omitempty"`
}

// AnalysisResponse exposes the classifier and scores for a pitch.
type AnalysisResponse struct {
	Features pitch.Features `json:"features"`
	Scores   pitch.ScoreSet `json:"scores"`
}

func (a *API) pitchText(w http.ResponseWriter, r *http.Request) (PitchRequest, bool) {
	var req PitchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err)
		return req, false
	}
	if strings.TrimSpace(req.Pitch) == "" && req.Prompt != "" {
		req.Pitch = prompt.ExtractPitch(req.Prompt)
	}
	if n := utf8.RuneCountInString(req.Pitch); a.MaxPitchLength > 0 && n > a.MaxPitchLength {
		respondWithError(w, r, apperrors.NewPitchTooLongError(n, a.MaxPitchLength))
		return req, false
	}
	return req, true
}

// Generate handles POST /api/v1/pitch/{mode}.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "mode")
	mode, err := pitch.ParseMode(raw)
	if err != nil {
		respondWithError(w, r, apperrors.NewUnknownModeError(raw))
		return
	}

	req, ok := a.pitchText(w, r)
	if !ok {
		return
	}

	start := time.Now()
	resp := a.Engine.GenerateContext(r.Context(), req.Pitch, mode)
	metrics.RecordGenerationDuration(mode, time.Since(start))

	out := PitchResponse{Response: resp}
	if req.PlayerID != "" && a.Players != nil {
		awards, err := a.Players.AwardGeneration(r.Context(), req.PlayerID, req.Pitch, resp)
		if err != nil {
			respondWithError(w, r, playerError(r, req.PlayerID, err))
			return
		}
		out.Awards = awards
	}

	writeJSON(w, http.StatusOK, out)
}

// Analyze handles POST /api/v1/analyze.
func (a *API) Analyze(w http.ResponseWriter, r *http.Request) {
	req, ok := a.pitchText(w, r)
	if !ok {
		return
	}
	features, scores := a.Engine.Analyze(req.Pitch)
	writeJSON(w, http.StatusOK, AnalysisResponse{Features: features, Scores: scores})
}

// Prompt handles GET /api/v1/prompts/{mode}. With ?pitch= the template is
// rendered.
func (a *API) Prompt(w http.ResponseWriter, r *http.Request) {
	if a.Prompts == nil {
		respondWithError(w, r, disabled("prompt templates"))
		return
	}

	mode := chi.URLParam(r, "mode")
	p, err := a.Prompts.ForMode(mode)
	if err != nil {
		respondWithError(w, r, apperrors.NewUnknownModeError(mode))
		return
	}

	body := p.Config.Template
	if text := r.URL.Query().Get("pitch"); text != "" {
		body = p.Render(text)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"slug":   p.Config.Slug,
		"mode":   p.Config.Mode,
		"prompt": body,
	})
}
