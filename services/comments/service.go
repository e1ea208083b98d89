package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cineview/models"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyContent     = errors.New("comment content is empty")
	ErrContentTooLong   = errors.New("comment content is too long")
)

const (
	maxContentLength = 2000
	pageSize         = 20
)

// Store is the persistence layer for comments.
type Store interface {
	Insert(ctx context.Context, c models.Comment) error
	ListByMedia(ctx context.Context, mediaID int64, limit, offset int) ([]models.Comment, int, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Post(ctx context.Context, userID string, mediaID int64, content string) (models.Comment, error) {
	if strings.TrimSpace(userID) == "" {
		return models.Comment{}, ErrNotAuthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, ErrEmptyContent
	}
	if len(content) > maxContentLength {
		return models.Comment{}, ErrContentTooLong
	}

	c := models.Comment{
		ID:        uuid.NewString(),
		MediaID:   mediaID,
		AuthorID:  userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return models.Comment{}, fmt.Errorf("save comment: %w", err)
	}
	return c, nil
}

// List returns one page of comments for a title, pinned comments first and
// newest first within each group.
func (s *Service) List(ctx context.Context, mediaID int64, page int) (models.CommentPage, error) {
	if page <= 0 {
		page = 1
	}
	items, total, err := s.store.ListByMedia(ctx, mediaID, pageSize, (page-1)*pageSize)
	if err != nil {
		return models.CommentPage{}, fmt.Errorf("list comments: %w", err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	return models.CommentPage{
		Items:       items,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNextPage: page < totalPages,
	}, nil
}
