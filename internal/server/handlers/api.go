package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/pitchslap/pitchslap/internal/errors"
	"github.com/pitchslap/pitchslap/internal/domains"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/investor"
	"github.com/pitchslap/pitchslap/internal/memecard"
	"github.com/pitchslap/pitchslap/internal/pitch"
	"github.com/pitchslap/pitchslap/internal/prompt"
)

// API serves the /api/v1 endpoints. Nil collaborators disable the routes
// that need them with 503 responses.
type API struct {
	Engine   *pitch.Engine
	Players  *gamify.Service
	Investor *investor.Game
	Domains  *domains.Checker
	Prompts  prompt.Registry

	// MaxPitchLength is the largest accepted pitch in runes. Zero disables the check.
	MaxPitchLength int

	// LeaderboardLimit is the default board size. Zero means gamify.LeaderboardSize.
	LeaderboardLimit int

	// Meme sizes rendered cards.
	Meme memecard.Options
}

var httpErrorResponder = apperrors.RespondWithError

// SetHTTPErrorResponder lets the server package route handler errors
// through its own error handler. Nil restores the default.
func SetHTTPErrorResponder(responder func(http.ResponseWriter, *http.Request, error)) {
	if responder == nil {
		responder = apperrors.RespondWithError
	}
	httpErrorResponder = responder
}

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	httpErrorResponder(w, r, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			env := apperrors.NewInvalidInputError("request body too large")
			return env.WithDetails(map[string]interface{}{"limit_bytes": tooLarge.Limit})
		}
		return apperrors.WrapInvalidInput(r.Context(), err, "request body is not valid JSON")
	}
	return nil
}

// playerError maps gamify lookups to envelopes.
func playerError(r *http.Request, id string, err error) error {
	if errors.Is(err, gamify.ErrNotFound) {
		return apperrors.NewPlayerNotFoundError(id)
	}
	return apperrors.WrapDatabaseError(r.Context(), err, "player store failure")
}

func disabled(feature string) error {
	return apperrors.NewUnavailableError(feature + " is not enabled on this server")
}
