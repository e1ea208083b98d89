package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"cineview/handlers"
	"cineview/models"
	"cineview/services/players"
)

func TestMoviePlayersSeedStartOffsetFromHistory(t *testing.T) {
	svc := &fakeHistoryService{position: 1200}
	handler := handlers.NewPlayersHandler(players.NewService(), svc, newAuth(map[string]string{"tok": "u1"}))

	req := httptest.NewRequest(http.MethodGet, "/api/players/movie/603", nil)
	req.Header.Set("Authorization", "Bearer tok")
	req = mux.SetURLVars(req, map[string]string{"id": "603"})
	rec := httptest.NewRecorder()
	handler.Movie(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var sources []models.PlayerSource
	if err := json.NewDecoder(rec.Body).Decode(&sources); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, p := range sources {
		if p.Resumable && !strings.Contains(p.Source, "1200") {
			t.Fatalf("resumable player %s missing saved position: %s", p.Title, p.Source)
		}
	}
}

func TestTVPlayersAnonymousStartFromBeginning(t *testing.T) {
	handler := handlers.NewPlayersHandler(players.NewService(), &fakeHistoryService{}, newAuth(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/players/tv/1399/1/3", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1399", "season": "1", "episode": "3"})
	rec := httptest.NewRecorder()
	handler.TVEpisode(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var sources []models.PlayerSource
	if err := json.NewDecoder(rec.Body).Decode(&sources); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(sources) == 0 {
		t.Fatal("expected players for anonymous caller")
	}
	for _, p := range sources {
		if strings.Contains(p.Source, "startAt=0") || strings.Contains(p.Source, "progress=0") {
			t.Fatalf("player %s should omit a zero offset: %s", p.Title, p.Source)
		}
	}
}

func TestTVPlayersRejectBadSeason(t *testing.T) {
	handler := handlers.NewPlayersHandler(players.NewService(), &fakeHistoryService{}, newAuth(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/players/tv/1399/0/3", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1399", "season": "0", "episode": "3"})
	rec := httptest.NewRecorder()
	handler.TVEpisode(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
