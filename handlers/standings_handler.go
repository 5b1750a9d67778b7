package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type StandingsHandler struct {
	tournamentService services.TournamentService
}

func NewStandingsHandler(tournamentService services.TournamentService) *StandingsHandler {
	return &StandingsHandler{tournamentService: tournamentService}
}

// GetStandings godoc
// @Summary Current standings
// @Description Players ordered by wins, ties broken by ascending id, with the next round number.
// @Tags standings
// @Produce json
// @Success 200 {object} services.StandingsView
// @Failure 500 {object} map[string]string
// @Router /standings [get]
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.StandingsOverview(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPairings godoc
// @Summary Next round pairings
// @Tags standings
// @Produce json
// @Success 200 {object} map[string]interface{} "Pairings"
// @Failure 409 {object} map[string]string "Odd number of players"
// @Router /pairings [get]
func (h *StandingsHandler) GetPairings(w http.ResponseWriter, r *http.Request) {
	pairings, err := h.tournamentService.SwissPairings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairings": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportStandings godoc
// @Summary Upload a standings snapshot to object storage
// @Tags standings
// @Produce json
// @Success 201 {object} map[string]interface{} "Uploaded snapshot"
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 503 {object} map[string]string "Export not configured"
// @Security BearerAuth
// @Router /standings/export [post]
func (h *StandingsHandler) ExportStandings(w http.ResponseWriter, r *http.Request) {
	result, err := h.tournamentService.ExportStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"snapshot": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
