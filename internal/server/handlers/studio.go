package handlers

import (
	"bytes"
	"errors"
	"net/http"

	apperrors "github.com/pitchslap/pitchslap/internal/errors"
	"github.com/pitchslap/pitchslap/internal/domains"
	"github.com/pitchslap/pitchslap/internal/memecard"
	"github.com/pitchslap/pitchslap/internal/metrics"
	"github.com/pitchslap/pitchslap/internal/pitch"
	"github.com/pitchslap/pitchslap/internal/speech"
)

// maxDomainsPerCheck bounds one availability request.
const maxDomainsPerCheck = 10

type domainsRequest struct {
	Domains []string `json:"domains"`
}

type speechRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice,omitempty"`
	Speed float64 `json:"speed,omitempty"`
	Pitch float64 `json:"pitch,omitempty"`
}

// CheckDomains handles POST /api/v1/domains/check.
func (a *API) CheckDomains(w http.ResponseWriter, r *http.Request) {
	if a.Domains == nil {
		respondWithError(w, r, disabled("domain checks"))
		return
	}
	var req domainsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	if len(req.Domains) == 0 || len(req.Domains) > maxDomainsPerCheck {
		env := apperrors.NewValidationError("between 1 and 10 domains are required")
		respondWithError(w, r, env.WithDetails(map[string]interface{}{"count": len(req.Domains)}))
		return
	}

	results := a.Domains.CheckAll(r.Context(), req.Domains)
	for _, res := range results {
		metrics.RecordDomainCheck(string(res.Availability))
	}
	writeJSON(w, http.StatusOK, map[string][]domains.Result{"results": results})
}

// RenderMeme handles POST /api/v1/meme/render and returns a PNG card.
func (a *API) RenderMeme(w http.ResponseWriter, r *http.Request) {
	var m pitch.Meme
	if err := decodeJSON(r, &m); err != nil {
		respondWithError(w, r, err)
		return
	}
	if m.TopText == "" && m.BottomText == "" && m.Caption == "" {
		respondWithError(w, r, apperrors.NewValidationError("meme text is required"))
		return
	}

	var buf bytes.Buffer
	if err := memecard.WritePNG(&buf, m, a.Meme); err != nil {
		if errors.Is(err, memecard.ErrSize) {
			respondWithError(w, r, apperrors.NewConfigInvalidError(err.Error()))
			return
		}
		respondWithError(w, r, apperrors.WrapInternal(r.Context(), err, "could not render meme"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Speech handles POST /api/v1/speech, returning the text and voice settings
// a client hands to its speech synthesizer.
func (a *API) Speech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	u, err := speech.Prepare(req.Text, req.Voice, req.Speed, req.Pitch)
	if err != nil {
		env := apperrors.NewValidationError(err.Error())
		respondWithError(w, r, env.WithDetails(map[string]interface{}{"voice": req.Voice}))
		return
	}
	if u.Text == "" {
		respondWithError(w, r, apperrors.NewValidationError("nothing left to speak after cleaning"))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Voices handles GET /api/v1/speech/voices.
func (a *API) Voices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"voices": speech.Personalities()})
}
