package history

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cineview/models"
)

var (
	ErrNoData               = errors.New("no data to record")
	ErrMissingSeasonEpisode = errors.New("missing season or episode")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrMissingFields        = errors.New("missing required fields")
	ErrInvalidMediaType     = errors.New("invalid media type")
)

// DefaultSnapshotRefresh bounds how stale a stored metadata snapshot may get
// before Record re-fetches it from the metadata source.
const DefaultSnapshotRefresh = 24 * time.Hour

// Store is the persistence layer for history rows.
type Store interface {
	Upsert(ctx context.Context, rec models.History) error
	UpdatePosition(ctx context.Context, rec models.History) (bool, error)
	Get(ctx context.Context, userID string, mediaID int64, mediaType string, season, episode int) (*models.History, error)
	LastEpisode(ctx context.Context, userID string, mediaID int64) (*models.History, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]models.History, error)
}

// MetadataSource resolves display metadata for an external media id.
type MetadataSource interface {
	MovieSnapshot(ctx context.Context, id int64) (*models.MediaSnapshot, error)
	TVSnapshot(ctx context.Context, id int64) (*models.MediaSnapshot, error)
}

type Service struct {
	store           Store
	metadata        MetadataSource
	snapshotRefresh time.Duration
}

func NewService(store Store, metadata MetadataSource, snapshotRefresh time.Duration) *Service {
	if snapshotRefresh <= 0 {
		snapshotRefresh = DefaultSnapshotRefresh
	}
	return &Service{
		store:           store,
		metadata:        metadata,
		snapshotRefresh: snapshotRefresh,
	}
}

// Record validates a playback event and persists it under the caller's
// account. Events for the same title overwrite each other, last write wins.
// Metadata is fetched only when the row is new or its snapshot has gone
// stale; otherwise only the playback fields are written.
func (s *Service) Record(ctx context.Context, userID string, event *models.PlaybackEvent, completed bool) (models.History, error) {
	if event == nil {
		return models.History{}, ErrNoData
	}
	if event.MediaType == models.MediaTypeTV && (event.Season <= 0 || event.Episode <= 0) {
		return models.History{}, ErrMissingSeasonEpisode
	}
	if strings.TrimSpace(userID) == "" {
		return models.History{}, ErrNotAuthenticated
	}
	if event.MediaID == 0 || strings.TrimSpace(event.MediaType) == "" {
		return models.History{}, ErrMissingFields
	}
	if !models.ValidMediaType(event.MediaType) {
		return models.History{}, ErrInvalidMediaType
	}

	season, episode := 0, 0
	if event.MediaType == models.MediaTypeTV {
		season, episode = event.Season, event.Episode
	}

	now := time.Now().UTC()

	existing, err := s.store.Get(ctx, userID, event.MediaID, event.MediaType, season, episode)
	if err != nil {
		return models.History{}, fmt.Errorf("load history row: %w", err)
	}

	if existing != nil && now.Sub(existing.SnapshotUpdatedAt) < s.snapshotRefresh {
		rec := *existing
		rec.Duration = event.Duration
		rec.LastPosition = event.CurrentTime
		rec.Completed = completed
		rec.UpdatedAt = now
		updated, err := s.store.UpdatePosition(ctx, rec)
		if err != nil {
			return models.History{}, fmt.Errorf("update position: %w", err)
		}
		if updated {
			return rec, nil
		}
		// Row disappeared between the read and the update, take the full path.
	}

	snapshot, err := s.fetchSnapshot(ctx, event.MediaType, event.MediaID)
	if err != nil {
		return models.History{}, fmt.Errorf("fetch metadata: %w", err)
	}

	rec := models.History{
		UserID:            userID,
		MediaID:           event.MediaID,
		MediaType:         event.MediaType,
		Season:            season,
		Episode:           episode,
		Duration:          event.Duration,
		LastPosition:      event.CurrentTime,
		Completed:         completed,
		Adult:             snapshot.Adult,
		BackdropPath:      snapshot.BackdropPath,
		PosterPath:        snapshot.PosterPath,
		ReleaseDate:       snapshot.ReleaseDate,
		Title:             snapshot.Title,
		VoteAverage:       snapshot.VoteAverage,
		SnapshotUpdatedAt: now,
		UpdatedAt:         now,
	}
	if err := s.store.Upsert(ctx, rec); err != nil {
		return models.History{}, fmt.Errorf("save history row: %w", err)
	}
	return rec, nil
}

func (s *Service) fetchSnapshot(ctx context.Context, mediaType string, mediaID int64) (*models.MediaSnapshot, error) {
	if mediaType == models.MediaTypeTV {
		return s.metadata.TVSnapshot(ctx, mediaID)
	}
	return s.metadata.MovieSnapshot(ctx, mediaID)
}

// LastPosition returns the saved position for a movie in seconds, or 0 when
// the caller is anonymous, nothing has been recorded or the lookup fails.
func (s *Service) LastPosition(ctx context.Context, userID string, mediaID int64) float64 {
	if strings.TrimSpace(userID) == "" {
		return 0
	}
	rec, err := s.store.Get(ctx, userID, mediaID, models.MediaTypeMovie, 0, 0)
	if err != nil {
		log.Printf("[history] last position lookup failed for media %d: %v", mediaID, err)
		return 0
	}
	if rec == nil {
		return 0
	}
	return rec.LastPosition
}

// LastEpisode returns the most recently watched episode of a show together
// with its saved position. A zero value means start from the beginning.
func (s *Service) LastEpisode(ctx context.Context, userID string, mediaID int64) models.EpisodeProgress {
	if strings.TrimSpace(userID) == "" {
		return models.EpisodeProgress{}
	}
	rec, err := s.store.LastEpisode(ctx, userID, mediaID)
	if err != nil {
		log.Printf("[history] last episode lookup failed for media %d: %v", mediaID, err)
		return models.EpisodeProgress{}
	}
	if rec == nil {
		return models.EpisodeProgress{}
	}
	return models.EpisodeProgress{
		Season:       rec.Season,
		Episode:      rec.Episode,
		LastPosition: rec.LastPosition,
	}
}

// EpisodePosition returns the saved position for one specific episode, or 0.
func (s *Service) EpisodePosition(ctx context.Context, userID string, mediaID int64, season, episode int) float64 {
	if strings.TrimSpace(userID) == "" {
		return 0
	}
	rec, err := s.store.Get(ctx, userID, mediaID, models.MediaTypeTV, season, episode)
	if err != nil {
		log.Printf("[history] episode position lookup failed for media %d s%de%d: %v", mediaID, season, episode, err)
		return 0
	}
	if rec == nil {
		return 0
	}
	return rec.LastPosition
}

// List returns the caller's history ordered by most recently updated.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]models.History, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNotAuthenticated
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	items, err := s.store.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return items, nil
}
