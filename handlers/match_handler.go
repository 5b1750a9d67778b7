package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type MatchHandler struct {
	tournamentService services.TournamentService
}

func NewMatchHandler(tournamentService services.TournamentService) *MatchHandler {
	return &MatchHandler{tournamentService: tournamentService}
}

type reportMatchInput struct {
	WinnerID int `json:"winner_id"`
	LoserID  int `json:"loser_id"`
}

// ReportMatch godoc
// @Summary Report a match result
// @Tags matches
// @Accept json
// @Produce json
// @Param body body reportMatchInput true "Winner and loser ids"
// @Success 201 {object} map[string]interface{} "Recorded match"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 404 {object} map[string]string "Unknown player"
// @Failure 422 {object} map[string]interface{} "Invalid ids"
// @Router /matches [post]
func (h *MatchHandler) ReportMatch(w http.ResponseWriter, r *http.Request) {
	var input reportMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.tournamentService.ReportMatch(r.Context(), input.WinnerID, input.LoserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatches godoc
// @Summary Delete every match
// @Tags matches
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /matches [delete]
func (h *MatchHandler) DeleteMatches(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.DeleteMatches(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
