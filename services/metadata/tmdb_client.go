package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"cineview/models"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p"
)

type tmdbClient struct {
	apiKey   string
	language string
	baseURL  string
	httpc    *http.Client

	// Rate limiting
	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func newTMDBClient(apiKey, language string, httpc *http.Client) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &tmdbClient{
		apiKey:      strings.TrimSpace(apiKey),
		language:    language,
		baseURL:     tmdbBaseURL,
		httpc:       httpc,
		minInterval: 20 * time.Millisecond,
	}
}

func (c *tmdbClient) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

// doGET performs an HTTP GET with rate limiting and retry with exponential
// backoff. Rate limits and server errors are retried, client errors are not.
func (c *tmdbClient) doGET(ctx context.Context, endpoint string, query url.Values, v any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}
	full := c.baseURL + endpoint + "?" + query.Encode()

	return retry.Do(
		func() error {
			c.throttleMu.Lock()
			since := time.Since(c.lastRequest)
			if since < c.minInterval {
				time.Sleep(c.minInterval - since)
			}
			c.lastRequest = time.Now()
			c.throttleMu.Unlock()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("tmdb request failed: %s", resp.Status)
			}
			if resp.StatusCode >= 400 {
				return retry.Unrecoverable(fmt.Errorf("tmdb request failed: %s", resp.Status))
			}
			return json.NewDecoder(resp.Body).Decode(v)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func (c *tmdbClient) movieDetails(ctx context.Context, tmdbID int64) (*models.MovieDetails, error) {
	var details models.MovieDetails
	endpoint := "/movie/" + strconv.FormatInt(tmdbID, 10)
	if err := c.doGET(ctx, endpoint, nil, &details); err != nil {
		return nil, fmt.Errorf("fetch movie %d: %w", tmdbID, err)
	}
	return &details, nil
}

func (c *tmdbClient) tvDetails(ctx context.Context, tmdbID int64) (*models.TVDetails, error) {
	var details models.TVDetails
	endpoint := "/tv/" + strconv.FormatInt(tmdbID, 10)
	if err := c.doGET(ctx, endpoint, nil, &details); err != nil {
		return nil, fmt.Errorf("fetch tv show %d: %w", tmdbID, err)
	}
	return &details, nil
}

type tmdbListResponse struct {
	Results []struct {
		ID               int64   `json:"id"`
		Title            string  `json:"title"`
		Name             string  `json:"name"`
		OriginalTitle    string  `json:"original_title"`
		OriginalName     string  `json:"original_name"`
		OriginalLanguage string  `json:"original_language"`
		Overview         string  `json:"overview"`
		Adult            bool    `json:"adult"`
		BackdropPath     string  `json:"backdrop_path"`
		PosterPath       string  `json:"poster_path"`
		ReleaseDate      string  `json:"release_date"`
		FirstAirDate     string  `json:"first_air_date"`
		VoteAverage      float64 `json:"vote_average"`
		Popularity       float64 `json:"popularity"`
		MediaType        string  `json:"media_type"`
	} `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

func (c *tmdbClient) trending(ctx context.Context, mediaType string) ([]models.TrendingItem, error) {
	var resp tmdbListResponse
	if err := c.doGET(ctx, "/trending/"+mediaType+"/week", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch trending %s: %w", mediaType, err)
	}

	items := make([]models.TrendingItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		title := r.Title
		releaseDate := r.ReleaseDate
		if mediaType == models.MediaTypeTV {
			title = r.Name
			releaseDate = r.FirstAirDate
		}
		items = append(items, models.TrendingItem{
			ID:           r.ID,
			MediaType:    mediaType,
			Title:        title,
			Overview:     r.Overview,
			PosterPath:   r.PosterPath,
			BackdropPath: r.BackdropPath,
			ReleaseDate:  releaseDate,
			VoteAverage:  r.VoteAverage,
			Popularity:   r.Popularity,
		})
	}
	return items, nil
}

func (c *tmdbClient) searchMulti(ctx context.Context, queryText string, page int) ([]models.SearchResult, error) {
	if page <= 0 {
		page = 1
	}
	query := url.Values{}
	query.Set("query", queryText)
	query.Set("page", strconv.Itoa(page))
	query.Set("include_adult", "false")

	var resp tmdbListResponse
	if err := c.doGET(ctx, "/search/multi", query, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", queryText, err)
	}

	results := make([]models.SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.MediaType != models.MediaTypeMovie && r.MediaType != models.MediaTypeTV {
			continue
		}
		title := r.Title
		releaseDate := r.ReleaseDate
		if r.MediaType == models.MediaTypeTV {
			title = r.Name
			releaseDate = r.FirstAirDate
		}
		results = append(results, models.SearchResult{
			ID:          r.ID,
			MediaType:   r.MediaType,
			Title:       title,
			Overview:    r.Overview,
			PosterPath:  r.PosterPath,
			ReleaseDate: releaseDate,
			VoteAverage: r.VoteAverage,
		})
	}
	return results, nil
}
