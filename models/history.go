package models

import "time"

const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// ValidMediaType reports whether the supplied type is one the tracker accepts.
func ValidMediaType(mediaType string) bool {
	return mediaType == MediaTypeMovie || mediaType == MediaTypeTV
}

// PlaybackEvent carries telemetry from an embedded player's progress callback.
// Season and Episode are required when MediaType is "tv" and ignored for movies.
type PlaybackEvent struct {
	MediaType   string  `json:"mediaType"`
	MediaID     int64   `json:"mediaId"`
	Season      int     `json:"season,omitempty"`
	Episode     int     `json:"episode,omitempty"`
	Duration    float64 `json:"duration"`
	CurrentTime float64 `json:"currentTime"`
}

// History is one persisted watch-progress record. The tuple
// (UserID, MediaID, MediaType, Season, Episode) is the natural key; movies
// always store season 0, episode 0 so each movie has exactly one row per user.
type History struct {
	UserID       string  `db:"user_id" json:"userId"`
	MediaID      int64   `db:"media_id" json:"mediaId"`
	MediaType    string  `db:"type" json:"type"`
	Season       int     `db:"season" json:"season"`
	Episode      int     `db:"episode" json:"episode"`
	Duration     float64 `db:"duration" json:"duration"`
	LastPosition float64 `db:"last_position" json:"lastPosition"`
	Completed    bool    `db:"completed" json:"completed"`

	// Denormalized metadata snapshot, copied from the metadata source at
	// write time so list screens render without a join.
	Adult        bool    `db:"adult" json:"adult"`
	BackdropPath string  `db:"backdrop_path" json:"backdropPath,omitempty"`
	PosterPath   string  `db:"poster_path" json:"posterPath,omitempty"`
	ReleaseDate  string  `db:"release_date" json:"releaseDate,omitempty"`
	Title        string  `db:"title" json:"title"`
	VoteAverage  float64 `db:"vote_average" json:"voteAverage"`

	SnapshotUpdatedAt time.Time `db:"snapshot_updated_at" json:"-"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

// EpisodeProgress identifies the episode a user last touched within a series
// together with the saved playback offset.
type EpisodeProgress struct {
	Season       int     `json:"season"`
	Episode      int     `json:"episode"`
	LastPosition float64 `json:"lastPosition"`
}
