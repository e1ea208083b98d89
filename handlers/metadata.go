package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cineview/models"
	"cineview/services/metadata"
)

type metadataService interface {
	MovieDetails(ctx context.Context, id int64) (*models.MovieDetails, error)
	TVDetails(ctx context.Context, id int64) (*models.TVDetails, error)
	Trending(ctx context.Context) ([]models.TrendingItem, error)
	Search(ctx context.Context, query string, page int) ([]models.SearchResult, error)
}

var _ metadataService = (*metadata.Service)(nil)

type MetadataHandler struct {
	Service metadataService
}

func NewMetadataHandler(service metadataService) *MetadataHandler {
	return &MetadataHandler{Service: service}
}

func (h *MetadataHandler) Movie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	details, err := h.Service.MovieDetails(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *MetadataHandler) TVShow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	details, err := h.Service.TVDetails(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *MetadataHandler) Trending(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Trending(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MetadataHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeStatus(w, http.StatusBadRequest, false, "query is required")
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	results, err := h.Service.Search(r.Context(), query, page)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *MetadataHandler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, metadata.ErrNotConfigured) {
		writeStatus(w, http.StatusServiceUnavailable, false, err.Error())
		return
	}
	writeStatus(w, http.StatusBadGateway, false, "metadata lookup failed")
}
