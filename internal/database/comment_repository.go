package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"cineview/models"
)

// CommentRepository persists title comments.
type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Insert stores a new comment.
func (r *CommentRepository) Insert(ctx context.Context, c models.Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, media_id, author_id, content, pinned, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.MediaID, c.AuthorID, c.Content, c.Pinned, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

// ListByMedia returns one page of comments for a title joined with the author
// username, pinned comments first, then newest first.
func (r *CommentRepository) ListByMedia(ctx context.Context, mediaID int64, limit, offset int) ([]models.Comment, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM comments WHERE media_id = ?`, mediaID); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	items := make([]models.Comment, 0)
	err := r.db.SelectContext(ctx, &items, `
		SELECT c.id, c.media_id, c.author_id, a.username AS author_name,
		       c.content, c.pinned, c.created_at
		FROM comments c
		JOIN accounts a ON a.id = c.author_id
		WHERE c.media_id = ?
		ORDER BY c.pinned DESC, c.created_at DESC
		LIMIT ? OFFSET ?`,
		mediaID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	return items, total, nil
}
