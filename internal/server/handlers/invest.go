package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/pitchslap/pitchslap/internal/errors"
	"github.com/pitchslap/pitchslap/internal/investor"
)

type decisionRequest struct {
	PlayerID   string `json:"playerId"`
	Decision   string `json:"decision"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning,omitempty"`
}

// NewDeal handles POST /api/v1/invest/deals. Only the offer is returned;
// the outcome stays server side until the player decides.
func (a *API) NewDeal(w http.ResponseWriter, r *http.Request) {
	if a.Investor == nil {
		respondWithError(w, r, disabled("investor mode"))
		return
	}
	d, err := a.Investor.Deal(r.Context())
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "could not create deal"))
		return
	}
	writeJSON(w, http.StatusCreated, d.Offer())
}

// Decide handles POST /api/v1/invest/deals/{id}/decision.
func (a *API) Decide(w http.ResponseWriter, r *http.Request) {
	if a.Investor == nil {
		respondWithError(w, r, disabled("investor mode"))
		return
	}
	dealID := chi.URLParam(r, "id")

	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}
	if req.PlayerID == "" {
		respondWithError(w, r, apperrors.NewValidationError("playerId is required"))
		return
	}
	choice, err := investor.ParseChoice(req.Decision)
	if err != nil {
		respondWithError(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	verdict, err := a.Investor.Decide(r.Context(), req.PlayerID, dealID, investor.Decision{
		Choice:     choice,
		Confidence: req.Confidence,
		Reasoning:  req.Reasoning,
	})
	switch {
	case errors.Is(err, investor.ErrDealNotFound):
		respondWithError(w, r, apperrors.NewDealNotFoundError(dealID))
		return
	case err != nil:
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "could not record decision"))
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

// InvestorProfile handles GET /api/v1/invest/players/{id}.
func (a *API) InvestorProfile(w http.ResponseWriter, r *http.Request) {
	if a.Investor == nil {
		respondWithError(w, r, disabled("investor mode"))
		return
	}
	p, err := a.Investor.Profile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "could not load investor profile"))
		return
	}
	current, next, progress := investor.RankProgress(p.Accuracy, p.TotalDeals)
	writeJSON(w, http.StatusOK, map[string]any{
		"profile":  p,
		"rank":     current,
		"next":     next,
		"progress": progress,
	})
}
