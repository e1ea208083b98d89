package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"cineview/handlers"
	"cineview/models"
	"cineview/services/watchlist"
)

type fakeWatchlistService struct {
	addErr    error
	removeErr error
	page      models.WatchlistPage
}

func (f *fakeWatchlistService) Add(ctx context.Context, userID string, upsert *models.WatchlistUpsert) (models.WatchlistItem, error) {
	if f.addErr != nil {
		return models.WatchlistItem{}, f.addErr
	}
	return models.WatchlistItem{UserID: userID, MediaID: upsert.MediaID, MediaType: upsert.MediaType, Title: upsert.Title}, nil
}

func (f *fakeWatchlistService) Remove(ctx context.Context, userID string, mediaID int64, mediaType string) error {
	return f.removeErr
}

func (f *fakeWatchlistService) Clear(ctx context.Context, userID, mediaType string) error {
	return nil
}

func (f *fakeWatchlistService) Contains(ctx context.Context, userID string, mediaID int64, mediaType string) (bool, error) {
	return true, nil
}

func (f *fakeWatchlistService) List(ctx context.Context, userID, mediaType string, page int) (models.WatchlistPage, error) {
	return f.page, nil
}

func TestWatchlistAddRequiresAuth(t *testing.T) {
	handler := handlers.NewWatchlistHandler(&fakeWatchlistService{}, newAuth(nil))

	body := bytes.NewBufferString(`{"mediaId":603,"type":"movie","title":"Some Movie"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/me/watchlist", body)
	rec := httptest.NewRecorder()
	handler.Add(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWatchlistAddDuplicateConflict(t *testing.T) {
	svc := &fakeWatchlistService{addErr: watchlist.ErrAlreadyListed}
	handler := handlers.NewWatchlistHandler(svc, newAuth(map[string]string{"tok": "u1"}))

	body := bytes.NewBufferString(`{"mediaId":603,"type":"movie","title":"Some Movie"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/me/watchlist", body)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.Add(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Message == "" {
		t.Fatalf("expected failure envelope with message, got %+v", resp)
	}
}

func TestWatchlistAddCreated(t *testing.T) {
	handler := handlers.NewWatchlistHandler(&fakeWatchlistService{}, newAuth(map[string]string{"tok": "u1"}))

	body := bytes.NewBufferString(`{"mediaId":603,"type":"movie","title":"Some Movie"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users/me/watchlist", body)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.Add(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var item models.WatchlistItem
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if item.MediaID != 603 || item.UserID != "u1" {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestWatchlistRemoveNotFound(t *testing.T) {
	svc := &fakeWatchlistService{removeErr: watchlist.ErrNotListed}
	handler := handlers.NewWatchlistHandler(svc, newAuth(map[string]string{"tok": "u1"}))

	req := httptest.NewRequest(http.MethodDelete, "/api/users/me/watchlist/movie/603", nil)
	req.Header.Set("Authorization", "Bearer tok")
	req = mux.SetURLVars(req, map[string]string{"type": "movie", "id": "603"})
	rec := httptest.NewRecorder()
	handler.Remove(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWatchlistListEmptyPage(t *testing.T) {
	handler := handlers.NewWatchlistHandler(&fakeWatchlistService{page: models.WatchlistPage{CurrentPage: 1}}, newAuth(map[string]string{"tok": "u1"}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/me/watchlist?page=1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page models.WatchlistPage
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Items == nil {
		t.Fatal("expected items to be an empty array, not null")
	}
}
