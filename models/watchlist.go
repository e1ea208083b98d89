package models

import "time"

// WatchlistItem is one bookmarked title. (UserID, MediaID, MediaType) is
// unique per user so a title cannot be bookmarked twice.
type WatchlistItem struct {
	UserID       string    `db:"user_id" json:"userId"`
	MediaID      int64     `db:"media_id" json:"mediaId"`
	MediaType    string    `db:"type" json:"type"`
	Adult        bool      `db:"adult" json:"adult"`
	BackdropPath string    `db:"backdrop_path" json:"backdropPath,omitempty"`
	PosterPath   string    `db:"poster_path" json:"posterPath,omitempty"`
	ReleaseDate  string    `db:"release_date" json:"releaseDate,omitempty"`
	Title        string    `db:"title" json:"title"`
	VoteAverage  float64   `db:"vote_average" json:"voteAverage"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// WatchlistUpsert is the payload for adding a title to the watchlist.
type WatchlistUpsert struct {
	MediaID      int64   `json:"mediaId"`
	MediaType    string  `json:"type"`
	Adult        bool    `json:"adult"`
	BackdropPath string  `json:"backdropPath"`
	PosterPath   string  `json:"posterPath"`
	ReleaseDate  string  `json:"releaseDate"`
	Title        string  `json:"title"`
	VoteAverage  float64 `json:"voteAverage"`
}

// WatchlistPage is a single page of watchlist items with paging metadata.
type WatchlistPage struct {
	Items       []WatchlistItem `json:"items"`
	TotalCount  int             `json:"totalCount"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	HasNextPage bool            `json:"hasNextPage"`
}
