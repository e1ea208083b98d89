package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"cineview/models"
	"cineview/services/watchlist"
)

type watchlistService interface {
	Add(ctx context.Context, userID string, upsert *models.WatchlistUpsert) (models.WatchlistItem, error)
	Remove(ctx context.Context, userID string, mediaID int64, mediaType string) error
	Clear(ctx context.Context, userID, mediaType string) error
	Contains(ctx context.Context, userID string, mediaID int64, mediaType string) (bool, error)
	List(ctx context.Context, userID, mediaType string, page int) (models.WatchlistPage, error)
}

var _ watchlistService = (*watchlist.Service)(nil)

type WatchlistHandler struct {
	Service watchlistService
	Auth    *Authenticator
}

func NewWatchlistHandler(service watchlistService, auth *Authenticator) *WatchlistHandler {
	return &WatchlistHandler{Service: service, Auth: auth}
}

func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.Auth.RequireUser(w, r)
	if !ok {
		return
	}

	var req models.WatchlistUpsert
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, false, "invalid request body")
		return
	}

	item, err := h.Service.Add(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, watchlist.ErrMissingFields),
			errors.Is(err, watchlist.ErrInvalidMediaType):
			writeStatus(w, http.StatusBadRequest, false, err.Error())
		case errors.Is(err, watchlist.ErrAlreadyListed):
			writeStatus(w, http.StatusConflict, false, err.Error())
		default:
			writeStatus(w, http.StatusInternalServerError, false, "failed to save watchlist item")
		}
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.Auth.RequireUser(w, r)
	if !ok {
		return
	}
	mediaID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	mediaType := mux.Vars(r)["type"]

	if err := h.Service.Remove(r.Context(), userID, mediaID, mediaType); err != nil {
		switch {
		case errors.Is(err, watchlist.ErrInvalidMediaType):
			writeStatus(w, http.StatusBadRequest, false, err.Error())
		case errors.Is(err, watchlist.ErrNotListed):
			writeStatus(w, http.StatusNotFound, false, err.Error())
		default:
			writeStatus(w, http.StatusInternalServerError, false, "failed to remove watchlist item")
		}
		return
	}
	writeStatus(w, http.StatusOK, true, "")
}

func (h *WatchlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.Auth.RequireUser(w, r)
	if !ok {
		return
	}
	mediaType := mux.Vars(r)["type"]

	if err := h.Service.Clear(r.Context(), userID, mediaType); err != nil {
		if errors.Is(err, watchlist.ErrInvalidMediaType) {
			writeStatus(w, http.StatusBadRequest, false, err.Error())
			return
		}
		writeStatus(w, http.StatusInternalServerError, false, "failed to clear watchlist")
		return
	}
	writeStatus(w, http.StatusOK, true, "")
}

func (h *WatchlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.Auth.RequireUser(w, r)
	if !ok {
		return
	}
	mediaID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	mediaType := mux.Vars(r)["type"]

	listed, err := h.Service.Contains(r.Context(), userID, mediaID, mediaType)
	if err != nil {
		writeStatus(w, http.StatusInternalServerError, false, "failed to check watchlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"listed": listed})
}

func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.Auth.RequireUser(w, r)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	mediaType := r.URL.Query().Get("type")

	result, err := h.Service.List(r.Context(), userID, mediaType, page)
	if err != nil {
		if errors.Is(err, watchlist.ErrInvalidMediaType) {
			writeStatus(w, http.StatusBadRequest, false, err.Error())
			return
		}
		writeStatus(w, http.StatusInternalServerError, false, "failed to load watchlist")
		return
	}
	if result.Items == nil {
		result.Items = []models.WatchlistItem{}
	}
	writeJSON(w, http.StatusOK, result)
}
