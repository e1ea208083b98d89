package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cineview/models"
	"cineview/services/comments"
)

type commentService interface {
	Post(ctx context.Context, userID string, mediaID int64, content string) (models.Comment, error)
	List(ctx context.Context, mediaID int64, page int) (models.CommentPage, error)
}

var _ commentService = (*comments.Service)(nil)

type CommentsHandler struct {
	Service commentService
	Auth    *Authenticator
}

func NewCommentsHandler(service commentService, auth *Authenticator) *CommentsHandler {
	return &CommentsHandler{Service: service, Auth: auth}
}

func (h *CommentsHandler) Post(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.Auth.RequireUser(w, r)
	if !ok {
		return
	}
	mediaID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, false, "invalid request body")
		return
	}

	comment, err := h.Service.Post(r.Context(), userID, mediaID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, comments.ErrEmptyContent),
			errors.Is(err, comments.ErrContentTooLong):
			writeStatus(w, http.StatusBadRequest, false, err.Error())
		default:
			writeStatus(w, http.StatusInternalServerError, false, "failed to save comment")
		}
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := h.Service.List(r.Context(), mediaID, page)
	if err != nil {
		writeStatus(w, http.StatusInternalServerError, false, "failed to load comments")
		return
	}
	if result.Items == nil {
		result.Items = []models.Comment{}
	}
	writeJSON(w, http.StatusOK, result)
}
