package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pricofy/football-api/internal/domain"
	"github.com/pricofy/football-api/internal/validate"
)

// CreateMatch handles POST /matches. An existing match with the same id
// is replaced.
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var in domain.NewMatch
	if err := readJSON(w, r, &in); err != nil {
		h.badRequest(w, err.Error())
		return
	}
	if err := h.validate.Struct(in); err != nil {
		h.invalid(w, "Invalid match", err)
		return
	}

	m := in.Match(h.now())
	if err := h.store.PutMatch(r.Context(), m); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, jsonResponse{
		"message": "Match created successfully",
		"matchId": m.MatchID,
	})
}

// ListMatches handles GET /matches.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.store.ListMatches(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, jsonResponse{"data": matches})
}

// GetMatch handles GET /matches/{matchId}.
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	m, err := h.store.GetMatch(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.notFound(w, "Match not found")
	case err != nil:
		h.serverError(w, r, err)
	default:
		h.writeJSON(w, http.StatusOK, jsonResponse{"data": m})
	}
}

// GetMatchesByTeam handles GET /matches/by-team?teamNameA=&teamNameB=.
// Each supplied name must be contained in one of the match's team names.
func (h *Handler) GetMatchesByTeam(w http.ResponseWriter, r *http.Request) {
	schema := validate.Schema(domain.TeamFilter{})
	allowed := validate.Fields(domain.TeamFilter{})

	query := r.URL.Query()
	for name, values := range query {
		if !allowed[name] {
			h.writeJSON(w, http.StatusBadRequest, jsonResponse{
				"message": "unknown query parameter " + name,
				"schema":  schema,
			})
			return
		}
		if len(values) > 1 {
			h.writeJSON(w, http.StatusBadRequest, jsonResponse{
				"message": "query parameter " + name + " must appear once",
				"schema":  schema,
			})
			return
		}
	}

	filter := domain.TeamFilter{
		TeamNameA: query.Get("teamNameA"),
		TeamNameB: query.Get("teamNameB"),
	}
	if err := h.validate.Struct(filter); err != nil {
		h.writeJSON(w, http.StatusBadRequest, jsonResponse{
			"message": err.Error(),
			"schema":  schema,
		})
		return
	}

	matches, err := h.store.FindByTeams(r.Context(), filter)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, jsonResponse{"data": matches})
}

// UpdateMatch handles PUT /matches/{matchId}/{teamName}. Only the fields
// present in the body are written.
func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	teamName := chi.URLParam(r, "teamName")
	if teamName == "" {
		h.badRequest(w, "teamName is required")
		return
	}

	var u domain.MatchUpdate
	if err := readJSON(w, r, &u); err != nil {
		h.badRequest(w, err.Error())
		return
	}
	if u.IsEmpty() {
		h.badRequest(w, "body must contain at least one of description, teamNameA, teamNameB")
		return
	}
	if err := h.validate.Struct(u); err != nil {
		h.invalid(w, "Invalid update", err)
		return
	}

	err = h.store.UpdateMatch(r.Context(), domain.MatchKey{MatchID: id, TeamName: teamName}, u)
	switch {
	case errors.Is(err, domain.ErrEmptyUpdate):
		h.badRequest(w, err.Error())
	case err != nil:
		h.serverError(w, r, err)
	default:
		h.writeJSON(w, http.StatusOK, jsonResponse{"message": "Match updated successfully"})
	}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"})
}
