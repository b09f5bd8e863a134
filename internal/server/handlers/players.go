package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/pitchslap/pitchslap/internal/errors"
	"github.com/pitchslap/pitchslap/internal/gamify"
)

// PlayerResponse is a profile with its ladder progress and board position.
type PlayerResponse struct {
	Profile  gamify.Profile  `json:"profile"`
	Progress gamify.Progress `json:"progress"`
	Position int             `json:"position"`
}

type aliasRequest struct {
	Alias string `json:"alias"`
}

type actionRequest struct {
	Action     string `json:"action"`
	PitchTitle string `json:"pitchTitle,omitempty"`
}

func (a *API) player(w http.ResponseWriter, r *http.Request, p gamify.Profile, status int) {
	pos, err := a.Players.Position(r.Context(), p.ID)
	if err != nil {
		respondWithError(w, r, playerError(r, p.ID, err))
		return
	}
	writeJSON(w, status, PlayerResponse{Profile: p, Progress: gamify.ProgressFor(p.XP), Position: pos})
}

// RegisterPlayer handles POST /api/v1/players.
func (a *API) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	if a.Players == nil {
		respondWithError(w, r, disabled("player profiles"))
		return
	}
	var req aliasRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	p, err := a.Players.Register(r.Context(), req.Alias)
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "could not register player"))
		return
	}
	a.player(w, r, p, http.StatusCreated)
}

// GetPlayer handles GET /api/v1/players/{id}.
func (a *API) GetPlayer(w http.ResponseWriter, r *http.Request) {
	if a.Players == nil {
		respondWithError(w, r, disabled("player profiles"))
		return
	}
	id := chi.URLParam(r, "id")
	p, err := a.Players.Profile(r.Context(), id)
	if err != nil {
		respondWithError(w, r, playerError(r, id, err))
		return
	}
	a.player(w, r, p, http.StatusOK)
}

// RenamePlayer handles PATCH /api/v1/players/{id}.
func (a *API) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	if a.Players == nil {
		respondWithError(w, r, disabled("player profiles"))
		return
	}
	id := chi.URLParam(r, "id")
	var req aliasRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	p, err := a.Players.Rename(r.Context(), id, req.Alias)
	if err != nil {
		respondWithError(w, r, playerError(r, id, err))
		return
	}
	a.player(w, r, p, http.StatusOK)
}

// AwardAction handles POST /api/v1/players/{id}/actions for actions that
// happen outside the engine, such as voice roasts and meme shares.
func (a *API) AwardAction(w http.ResponseWriter, r *http.Request) {
	if a.Players == nil {
		respondWithError(w, r, disabled("player profiles"))
		return
	}
	id := chi.URLParam(r, "id")
	var req actionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	action, err := gamify.ParseAction(req.Action)
	if err != nil {
		env := apperrors.NewValidationError(err.Error())
		respondWithError(w, r, env.WithDetails(map[string]interface{}{"action": req.Action}))
		return
	}
	award, err := a.Players.Award(r.Context(), id, action, req.PitchTitle)
	if err != nil {
		respondWithError(w, r, playerError(r, id, err))
		return
	}
	writeJSON(w, http.StatusOK, award)
}

// Leaderboard handles GET /api/v1/leaderboard?limit=N.
func (a *API) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if a.Players == nil {
		respondWithError(w, r, disabled("leaderboard"))
		return
	}
	limit := gamify.LeaderboardSize
	if a.LeaderboardLimit > 0 {
		limit = a.LeaderboardLimit
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			env := apperrors.NewValidationError("limit must be a positive integer")
			respondWithError(w, r, env.WithDetails(map[string]interface{}{"limit": raw}))
			return
		}
		limit = n
	}
	top, err := a.Players.Leaderboard(r.Context(), limit)
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "could not load leaderboard"))
		return
	}
	if top == nil {
		top = []gamify.Profile{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": top})
}

// Rewards handles GET /api/v1/rewards.
func (a *API) Rewards(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"rewards": gamify.Rewards(),
		"ranks":   gamify.Ranks(),
	})
}
