package models

// MovieDetails is the movie-detail shape returned by the metadata source.
type MovieDetails struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	Adult            bool    `json:"adult"`
	BackdropPath     string  `json:"backdrop_path"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	Runtime          int     `json:"runtime"`
}

// TVDetails is the tv-detail shape returned by the metadata source.
type TVDetails struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	OriginalName     string  `json:"original_name"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	BackdropPath     string  `json:"backdrop_path"`
	PosterPath       string  `json:"poster_path"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
	NumberOfSeasons  int     `json:"number_of_seasons"`
	NumberOfEpisodes int     `json:"number_of_episodes"`
}

// MediaSnapshot is the normalized slice of metadata the history service
// denormalizes into a progress record.
type MediaSnapshot struct {
	Adult        bool
	BackdropPath string
	PosterPath   string
	ReleaseDate  string
	Title        string
	VoteAverage  float64
}

// TrendingItem is one entry of a trending row.
type TrendingItem struct {
	ID           int64   `json:"id"`
	MediaType    string  `json:"mediaType"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview,omitempty"`
	BackdropPath string  `json:"backdropPath,omitempty"`
	PosterPath   string  `json:"posterPath,omitempty"`
	ReleaseDate  string  `json:"releaseDate,omitempty"`
	VoteAverage  float64 `json:"voteAverage"`
	Popularity   float64 `json:"popularity"`
}

// SearchResult is one entry of a title search response.
type SearchResult struct {
	ID          int64   `json:"id"`
	MediaType   string  `json:"mediaType"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview,omitempty"`
	PosterPath  string  `json:"posterPath,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	VoteAverage float64 `json:"voteAverage"`
}
