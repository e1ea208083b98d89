package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"cineview/models"
	"cineview/services/history"
)

type historyService interface {
	Record(ctx context.Context, userID string, event *models.PlaybackEvent, completed bool) (models.History, error)
	LastPosition(ctx context.Context, userID string, mediaID int64) float64
	LastEpisode(ctx context.Context, userID string, mediaID int64) models.EpisodeProgress
	EpisodePosition(ctx context.Context, userID string, mediaID int64, season, episode int) float64
	List(ctx context.Context, userID string, limit int) ([]models.History, error)
}

var _ historyService = (*history.Service)(nil)

type HistoryHandler struct {
	Service historyService
	Auth    *Authenticator
}

func NewHistoryHandler(service historyService, auth *Authenticator) *HistoryHandler {
	return &HistoryHandler{Service: service, Auth: auth}
}

type recordRequest struct {
	Type        string  `json:"type"`
	MediaID     int64   `json:"mediaId"`
	Season      int     `json:"season"`
	Episode     int     `json:"episode"`
	Duration    float64 `json:"duration"`
	CurrentTime float64 `json:"currentTime"`
	Completed   bool    `json:"completed"`
}

// Record saves a playback event for the caller. The response is always the
// success envelope, failures carry the reason in the message.
func (h *HistoryHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID := h.Auth.UserID(r)

	var event *models.PlaybackEvent
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req != (recordRequest{}) {
		event = &models.PlaybackEvent{
			MediaType:   req.Type,
			MediaID:     req.MediaID,
			Season:      req.Season,
			Episode:     req.Episode,
			Duration:    req.Duration,
			CurrentTime: req.CurrentTime,
		}
	}

	if _, err := h.Service.Record(r.Context(), userID, event, req.Completed); err != nil {
		switch {
		case errors.Is(err, history.ErrNoData),
			errors.Is(err, history.ErrMissingSeasonEpisode),
			errors.Is(err, history.ErrMissingFields),
			errors.Is(err, history.ErrInvalidMediaType):
			writeStatus(w, http.StatusBadRequest, false, err.Error())
		case errors.Is(err, history.ErrNotAuthenticated):
			writeStatus(w, http.StatusUnauthorized, false, err.Error())
		default:
			writeStatus(w, http.StatusInternalServerError, false, "failed to save progress")
		}
		return
	}

	writeStatus(w, http.StatusOK, true, "")
}

// LastPosition returns the resume position of a movie. Anonymous callers and
// lookup failures get 0 so the player starts from the beginning.
func (h *HistoryHandler) LastPosition(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	userID := h.Auth.UserID(r)
	position := h.Service.LastPosition(r.Context(), userID, mediaID)
	writeJSON(w, http.StatusOK, map[string]float64{"lastPosition": position})
}

// LastEpisode returns the most recently watched episode of a show, the zero
// value points at season 0 episode 0 meaning nothing watched yet.
func (h *HistoryHandler) LastEpisode(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	userID := h.Auth.UserID(r)
	progress := h.Service.LastEpisode(r.Context(), userID, mediaID)
	writeJSON(w, http.StatusOK, progress)
}

// EpisodePosition returns the resume position of one specific episode.
func (h *HistoryHandler) EpisodePosition(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	vars := mux.Vars(r)
	season, err := strconv.Atoi(vars["season"])
	if err != nil {
		writeStatus(w, http.StatusBadRequest, false, "invalid season")
		return
	}
	episode, err := strconv.Atoi(vars["episode"])
	if err != nil {
		writeStatus(w, http.StatusBadRequest, false, "invalid episode")
		return
	}

	userID := h.Auth.UserID(r)
	position := h.Service.EpisodePosition(r.Context(), userID, mediaID, season, episode)
	writeJSON(w, http.StatusOK, map[string]float64{"lastPosition": position})
}

// List returns the caller's watch history, most recent first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.Auth.RequireUser(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Service.List(r.Context(), userID, limit)
	if err != nil {
		writeStatus(w, http.StatusInternalServerError, false, "failed to load history")
		return
	}
	if items == nil {
		items = []models.History{}
	}
	writeJSON(w, http.StatusOK, items)
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || v <= 0 {
		writeStatus(w, http.StatusBadRequest, false, "invalid media id")
		return 0, false
	}
	return v, true
}
