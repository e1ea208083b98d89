package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/text/language"

	"cineview/models"
)

var ErrNotConfigured = errors.New("metadata source not configured")

const defaultCacheTTL = 6 * time.Hour

type cachedMovie struct {
	details   *models.MovieDetails
	expiresAt time.Time
}

type cachedTV struct {
	details   *models.TVDetails
	expiresAt time.Time
}

// Service fronts the TMDB API with a per-title detail cache and normalizes
// the responses into the shapes the rest of the application uses.
type Service struct {
	client   *tmdbClient
	language string
	cacheTTL time.Duration

	mu        sync.RWMutex
	movieByID map[int64]cachedMovie
	tvByID    map[int64]cachedTV
}

func NewService(apiKey, lang string, cacheTTLHours int) *Service {
	ttl := defaultCacheTTL
	if cacheTTLHours > 0 {
		ttl = time.Duration(cacheTTLHours) * time.Hour
	}
	return &Service{
		client:    newTMDBClient(apiKey, lang, nil),
		language:  lang,
		cacheTTL:  ttl,
		movieByID: make(map[int64]cachedMovie),
		tvByID:    make(map[int64]cachedTV),
	}
}

func (s *Service) IsConfigured() bool {
	return s.client.isConfigured()
}

func (s *Service) MovieDetails(ctx context.Context, id int64) (*models.MovieDetails, error) {
	if !s.client.isConfigured() {
		return nil, ErrNotConfigured
	}

	s.mu.RLock()
	cached, ok := s.movieByID[id]
	s.mu.RUnlock()
	if ok && time.Now().Before(cached.expiresAt) {
		return cached.details, nil
	}

	details, err := s.client.movieDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.movieByID[id] = cachedMovie{details: details, expiresAt: time.Now().Add(s.cacheTTL)}
	s.mu.Unlock()
	return details, nil
}

func (s *Service) TVDetails(ctx context.Context, id int64) (*models.TVDetails, error) {
	if !s.client.isConfigured() {
		return nil, ErrNotConfigured
	}

	s.mu.RLock()
	cached, ok := s.tvByID[id]
	s.mu.RUnlock()
	if ok && time.Now().Before(cached.expiresAt) {
		return cached.details, nil
	}

	details, err := s.client.tvDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tvByID[id] = cachedTV{details: details, expiresAt: time.Now().Add(s.cacheTTL)}
	s.mu.Unlock()
	return details, nil
}

// MovieSnapshot returns the denormalized metadata slice for a movie, with
// the display title resolved against the configured language.
func (s *Service) MovieSnapshot(ctx context.Context, id int64) (*models.MediaSnapshot, error) {
	details, err := s.MovieDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	title := details.Title
	if sameLanguage(details.OriginalLanguage, s.language) && details.OriginalTitle != "" {
		title = details.OriginalTitle
	}
	return &models.MediaSnapshot{
		Adult:        details.Adult,
		BackdropPath: details.BackdropPath,
		PosterPath:   details.PosterPath,
		ReleaseDate:  details.ReleaseDate,
		Title:        title,
		VoteAverage:  details.VoteAverage,
	}, nil
}

// TVSnapshot returns the denormalized metadata slice for a show. TV payloads
// carry no adult flag, so it is always false.
func (s *Service) TVSnapshot(ctx context.Context, id int64) (*models.MediaSnapshot, error) {
	details, err := s.TVDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	title := details.Name
	if sameLanguage(details.OriginalLanguage, s.language) && details.OriginalName != "" {
		title = details.OriginalName
	}
	return &models.MediaSnapshot{
		BackdropPath: details.BackdropPath,
		PosterPath:   details.PosterPath,
		ReleaseDate:  details.FirstAirDate,
		Title:        title,
		VoteAverage:  details.VoteAverage,
	}, nil
}

// Trending fetches the weekly trending movies and shows concurrently and
// returns the merged list ordered by popularity.
func (s *Service) Trending(ctx context.Context) ([]models.TrendingItem, error) {
	if !s.client.isConfigured() {
		return nil, ErrNotConfigured
	}

	var movies, shows []models.TrendingItem
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		movies, err = s.client.trending(ctx, models.MediaTypeMovie)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		shows, err = s.client.trending(ctx, models.MediaTypeTV)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("fetch trending: %w", err)
	}

	merged := append(movies, shows...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Popularity > merged[j].Popularity
	})
	return merged, nil
}

func (s *Service) Search(ctx context.Context, query string, page int) ([]models.SearchResult, error) {
	if !s.client.isConfigured() {
		return nil, ErrNotConfigured
	}
	return s.client.searchMulti(ctx, query, page)
}

// WithHTTPClient swaps the underlying transport, used by tests.
func (s *Service) WithHTTPClient(httpc *http.Client) *Service {
	s.client.httpc = httpc
	s.client.minInterval = 0
	return s
}

// sameLanguage reports whether two BCP 47 tags share a base language, so
// "pt-BR" matches "pt". Unparseable tags fall back to string equality.
func sameLanguage(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return a == b
	}
	baseA, _ := ta.Base()
	baseB, _ := tb.Base()
	return baseA == baseB
}
