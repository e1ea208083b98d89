package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"cineview/handlers"
)

// Register mounts API endpoints onto the provided router.
func Register(
	r *mux.Router,
	authHandler *handlers.AuthHandler,
	historyHandler *handlers.HistoryHandler,
	watchlistHandler *handlers.WatchlistHandler,
	commentsHandler *handlers.CommentsHandler,
	metadataHandler *handlers.MetadataHandler,
	playersHandler *handlers.PlayersHandler,
) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)
	api.Use(loggingMiddleware)

	// Auth
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet, http.MethodOptions)

	// Watch history
	api.HandleFunc("/users/me/history", historyHandler.Record).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/users/me/history", historyHandler.List).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/movies/{id}/position", historyHandler.LastPosition).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tv/{id}/last-episode", historyHandler.LastEpisode).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tv/{id}/{season}/{episode}/position", historyHandler.EpisodePosition).Methods(http.MethodGet, http.MethodOptions)

	// Watchlist
	api.HandleFunc("/users/me/watchlist", watchlistHandler.Add).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/users/me/watchlist", watchlistHandler.List).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/users/me/watchlist/{type}", watchlistHandler.Clear).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/users/me/watchlist/{type}/{id}", watchlistHandler.Remove).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/users/me/watchlist/{type}/{id}", watchlistHandler.Contains).Methods(http.MethodGet, http.MethodOptions)

	// Comments
	api.HandleFunc("/media/{id}/comments", commentsHandler.Post).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/media/{id}/comments", commentsHandler.List).Methods(http.MethodGet, http.MethodOptions)

	// Metadata
	api.HandleFunc("/movies/{id}", metadataHandler.Movie).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tv/{id}", metadataHandler.TVShow).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trending", metadataHandler.Trending).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/search", metadataHandler.Search).Methods(http.MethodGet, http.MethodOptions)

	// Players
	api.HandleFunc("/players/movie/{id}", playersHandler.Movie).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/players/tv/{id}/{season}/{episode}", playersHandler.TVEpisode).Methods(http.MethodGet, http.MethodOptions)

	// Health
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
}
