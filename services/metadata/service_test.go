package metadata

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"

	"cineview/models"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}, nil
}

func TestMovieDetailsCaching(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			if req.URL.Path != "/movie/603" {
				t.Fatalf("unexpected request path: %s", req.URL.Path)
			}
			if req.URL.Query().Get("api_key") != "apikey" {
				t.Fatalf("expected api key on request, got %q", req.URL.RawQuery)
			}
			return jsonResponse(http.StatusOK, `{"id":603,"title":"The Matrix","original_title":"The Matrix","original_language":"en","vote_average":8.2}`)
		}),
	}

	svc := NewService("apikey", "en-US", 1).WithHTTPClient(httpc)
	svc.client.baseURL = "https://tmdb.test"

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		details, err := svc.MovieDetails(ctx, 603)
		if err != nil {
			t.Fatalf("movie details failed: %v", err)
		}
		if details.Title != "The Matrix" {
			t.Fatalf("unexpected title %q", details.Title)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}
}

func TestMovieSnapshotTitleResolution(t *testing.T) {
	cases := []struct {
		name     string
		refLang  string
		body     string
		expected string
	}{
		{
			name:     "original language matches reference",
			refLang:  "pt-BR",
			body:     `{"id":598,"title":"City of God","original_title":"Cidade de Deus","original_language":"pt"}`,
			expected: "Cidade de Deus",
		},
		{
			name:     "original language differs",
			refLang:  "en-US",
			body:     `{"id":598,"title":"City of God","original_title":"Cidade de Deus","original_language":"pt"}`,
			expected: "City of God",
		},
		{
			name:     "empty original title falls back",
			refLang:  "pt-BR",
			body:     `{"id":598,"title":"City of God","original_title":"","original_language":"pt"}`,
			expected: "City of God",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			httpc := &http.Client{
				Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
					return jsonResponse(http.StatusOK, tc.body)
				}),
			}
			svc := NewService("apikey", tc.refLang, 1).WithHTTPClient(httpc)
			svc.client.baseURL = "https://tmdb.test"

			snapshot, err := svc.MovieSnapshot(context.Background(), 598)
			if err != nil {
				t.Fatalf("snapshot failed: %v", err)
			}
			if snapshot.Title != tc.expected {
				t.Fatalf("expected title %q, got %q", tc.expected, snapshot.Title)
			}
		})
	}
}

func TestTVSnapshotUsesFirstAirDate(t *testing.T) {
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/tv/1399" {
				t.Fatalf("unexpected request path: %s", req.URL.Path)
			}
			return jsonResponse(http.StatusOK, `{"id":1399,"name":"Game of Thrones","original_name":"Game of Thrones","original_language":"en","first_air_date":"2011-04-17","vote_average":8.4}`)
		}),
	}
	svc := NewService("apikey", "en-US", 1).WithHTTPClient(httpc)
	svc.client.baseURL = "https://tmdb.test"

	snapshot, err := svc.TVSnapshot(context.Background(), 1399)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snapshot.ReleaseDate != "2011-04-17" {
		t.Fatalf("expected first air date, got %q", snapshot.ReleaseDate)
	}
	if snapshot.Adult {
		t.Fatal("tv snapshot must not be flagged adult")
	}
}

func TestTrendingMergesAndSorts(t *testing.T) {
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			switch req.URL.Path {
			case "/trending/movie/week":
				return jsonResponse(http.StatusOK, `{"results":[{"id":1,"title":"Movie A","release_date":"2024-01-01","popularity":50}]}`)
			case "/trending/tv/week":
				return jsonResponse(http.StatusOK, `{"results":[{"id":2,"name":"Show B","first_air_date":"2024-02-01","popularity":80}]}`)
			default:
				t.Fatalf("unexpected request path: %s", req.URL.Path)
				return nil, nil
			}
		}),
	}
	svc := NewService("apikey", "en-US", 1).WithHTTPClient(httpc)
	svc.client.baseURL = "https://tmdb.test"

	items, err := svc.Trending(context.Background())
	if err != nil {
		t.Fatalf("trending failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Show B" || items[0].MediaType != models.MediaTypeTV {
		t.Fatalf("expected most popular first, got %+v", items[0])
	}
	if items[1].ReleaseDate != "2024-01-01" {
		t.Fatalf("expected movie release date mapped, got %+v", items[1])
	}
}

func TestSearchFiltersNonTitleResults(t *testing.T) {
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if got := req.URL.Query().Get("query"); got != "matrix" {
				t.Fatalf("expected query 'matrix', got %q", got)
			}
			return jsonResponse(http.StatusOK, `{"results":[
				{"id":603,"media_type":"movie","title":"The Matrix"},
				{"id":1,"media_type":"person","name":"Keanu Reeves"},
				{"id":1399,"media_type":"tv","name":"Game of Thrones"}
			]}`)
		}),
	}
	svc := NewService("apikey", "en-US", 1).WithHTTPClient(httpc)
	svc.client.baseURL = "https://tmdb.test"

	results, err := svc.Search(context.Background(), "matrix", 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected person results dropped, got %d results", len(results))
	}
}

func TestUnconfiguredServiceErrors(t *testing.T) {
	svc := NewService("", "en-US", 1)
	if _, err := svc.MovieDetails(context.Background(), 603); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := svc.Trending(context.Background()); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	httpc := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return jsonResponse(http.StatusNotFound, `{"status_message":"not found"}`)
		}),
	}
	svc := NewService("apikey", "en-US", 1).WithHTTPClient(httpc)
	svc.client.baseURL = "https://tmdb.test"

	if _, err := svc.MovieDetails(context.Background(), 999999); err == nil {
		t.Fatal("expected error for 404")
	}
	if calls != 1 {
		t.Fatalf("expected no retries on 404, got %d calls", calls)
	}
}

func TestSameLanguageMatchesRegionalVariants(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"pt", "pt-BR", true},
		{"en", "en-US", true},
		{"pt", "en-US", false},
		{"", "en-US", false},
		{"ja", "ja", true},
	}
	for _, tc := range cases {
		if got := sameLanguage(tc.a, tc.b); got != tc.want {
			t.Fatalf("sameLanguage(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
