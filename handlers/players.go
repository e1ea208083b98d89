package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"cineview/models"
	"cineview/services/players"
)

type playerCatalog interface {
	MoviePlayers(id int64, startAt int) []models.PlayerSource
	TVPlayers(id int64, season, episode, startAt int) []models.PlayerSource
}

var _ playerCatalog = (*players.Service)(nil)

// PlayersHandler serves embed catalogs with the caller's saved position
// folded in, so resumable embeds pick up where the viewer stopped.
type PlayersHandler struct {
	Catalog playerCatalog
	History historyService
	Auth    *Authenticator
}

func NewPlayersHandler(catalog playerCatalog, history historyService, auth *Authenticator) *PlayersHandler {
	return &PlayersHandler{Catalog: catalog, History: history, Auth: auth}
}

func (h *PlayersHandler) Movie(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	userID := h.Auth.UserID(r)
	startAt := int(h.History.LastPosition(r.Context(), userID, mediaID))
	writeJSON(w, http.StatusOK, h.Catalog.MoviePlayers(mediaID, startAt))
}

func (h *PlayersHandler) TVEpisode(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	vars := mux.Vars(r)
	season, err := strconv.Atoi(vars["season"])
	if err != nil || season <= 0 {
		writeStatus(w, http.StatusBadRequest, false, "invalid season")
		return
	}
	episode, err := strconv.Atoi(vars["episode"])
	if err != nil || episode <= 0 {
		writeStatus(w, http.StatusBadRequest, false, "invalid episode")
		return
	}

	userID := h.Auth.UserID(r)
	startAt := int(h.History.EpisodePosition(r.Context(), userID, mediaID, season, episode))
	writeJSON(w, http.StatusOK, h.Catalog.TVPlayers(mediaID, season, episode, startAt))
}
