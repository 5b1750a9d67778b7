package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type PlayerHandler struct {
	tournamentService services.TournamentService
}

func NewPlayerHandler(tournamentService services.TournamentService) *PlayerHandler {
	return &PlayerHandler{tournamentService: tournamentService}
}

type registerPlayerInput struct {
	Name string `json:"name"`
}

// RegisterPlayer godoc
// @Summary Register a player
// @Tags players
// @Accept json
// @Produce json
// @Param body body registerPlayerInput true "Player name"
// @Success 201 {object} map[string]interface{} "Registered player"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 422 {object} map[string]interface{} "Empty name"
// @Router /players [post]
func (h *PlayerHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var input registerPlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.tournamentService.RegisterPlayer(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CountPlayers godoc
// @Summary Number of registered players
// @Tags players
// @Produce json
// @Success 200 {object} map[string]int
// @Router /players/count [get]
func (h *PlayerHandler) CountPlayers(w http.ResponseWriter, r *http.Request) {
	count, err := h.tournamentService.CountPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"count": count}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeletePlayers godoc
// @Summary Delete every player
// @Description Fails with 409 while matches still reference players.
// @Tags players
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /players [delete]
func (h *PlayerHandler) DeletePlayers(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.DeletePlayers(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
