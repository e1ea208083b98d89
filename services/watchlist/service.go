package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cineview/internal/database"
	"cineview/models"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidMediaType = errors.New("invalid media type")
	ErrAlreadyListed    = errors.New("title is already in the watchlist")
	ErrNotListed        = errors.New("title is not in the watchlist")
)

const pageSize = 20

// Store is the persistence layer for watchlist items.
type Store interface {
	Insert(ctx context.Context, item models.WatchlistItem) error
	Delete(ctx context.Context, userID string, mediaID int64, mediaType string) (bool, error)
	DeleteByType(ctx context.Context, userID, mediaType string) error
	Contains(ctx context.Context, userID string, mediaID int64, mediaType string) (bool, error)
	List(ctx context.Context, userID, mediaType string, limit, offset int) ([]models.WatchlistItem, int, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Add(ctx context.Context, userID string, upsert *models.WatchlistUpsert) (models.WatchlistItem, error) {
	if strings.TrimSpace(userID) == "" {
		return models.WatchlistItem{}, ErrNotAuthenticated
	}
	if upsert == nil || upsert.MediaID == 0 || strings.TrimSpace(upsert.Title) == "" {
		return models.WatchlistItem{}, ErrMissingFields
	}
	if !models.ValidMediaType(upsert.MediaType) {
		return models.WatchlistItem{}, ErrInvalidMediaType
	}

	item := models.WatchlistItem{
		UserID:       userID,
		MediaID:      upsert.MediaID,
		MediaType:    upsert.MediaType,
		Adult:        upsert.Adult,
		BackdropPath: upsert.BackdropPath,
		PosterPath:   upsert.PosterPath,
		ReleaseDate:  upsert.ReleaseDate,
		Title:        upsert.Title,
		VoteAverage:  upsert.VoteAverage,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, item); err != nil {
		if errors.Is(err, database.ErrDuplicateItem) {
			return models.WatchlistItem{}, ErrAlreadyListed
		}
		return models.WatchlistItem{}, fmt.Errorf("save watchlist item: %w", err)
	}
	return item, nil
}

func (s *Service) Remove(ctx context.Context, userID string, mediaID int64, mediaType string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrNotAuthenticated
	}
	if !models.ValidMediaType(mediaType) {
		return ErrInvalidMediaType
	}
	removed, err := s.store.Delete(ctx, userID, mediaID, mediaType)
	if err != nil {
		return fmt.Errorf("delete watchlist item: %w", err)
	}
	if !removed {
		return ErrNotListed
	}
	return nil
}

// Clear removes every bookmarked title of one type for the caller.
func (s *Service) Clear(ctx context.Context, userID, mediaType string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrNotAuthenticated
	}
	if !models.ValidMediaType(mediaType) {
		return ErrInvalidMediaType
	}
	if err := s.store.DeleteByType(ctx, userID, mediaType); err != nil {
		return fmt.Errorf("clear watchlist: %w", err)
	}
	return nil
}

func (s *Service) Contains(ctx context.Context, userID string, mediaID int64, mediaType string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, nil
	}
	return s.store.Contains(ctx, userID, mediaID, mediaType)
}

// List returns one page of the caller's watchlist, newest first. mediaType
// narrows the page to movies or shows when set.
func (s *Service) List(ctx context.Context, userID, mediaType string, page int) (models.WatchlistPage, error) {
	if strings.TrimSpace(userID) == "" {
		return models.WatchlistPage{}, ErrNotAuthenticated
	}
	if mediaType != "" && !models.ValidMediaType(mediaType) {
		return models.WatchlistPage{}, ErrInvalidMediaType
	}
	if page <= 0 {
		page = 1
	}

	items, total, err := s.store.List(ctx, userID, mediaType, pageSize, (page-1)*pageSize)
	if err != nil {
		return models.WatchlistPage{}, fmt.Errorf("list watchlist: %w", err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	return models.WatchlistPage{
		Items:       items,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNextPage: page < totalPages,
	}, nil
}
