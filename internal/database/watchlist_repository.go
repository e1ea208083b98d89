package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"cineview/models"
)

// ErrDuplicateItem is returned when inserting a watchlist row that already
// exists for the user.
var ErrDuplicateItem = errors.New("item already exists")

// WatchlistRepository persists bookmarked titles.
type WatchlistRepository struct {
	db *sqlx.DB
}

func NewWatchlistRepository(db *sqlx.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Insert adds a new watchlist row. Returns ErrDuplicateItem when the
// (user, media, type) key is already bookmarked.
func (r *WatchlistRepository) Insert(ctx context.Context, item models.WatchlistItem) error {
	query := `
		INSERT INTO watchlist (
			user_id, media_id, type, adult, backdrop_path, poster_path,
			release_date, title, vote_average, created_at
		) VALUES (
			:user_id, :media_id, :type, :adult, :backdrop_path, :poster_path,
			:release_date, :title, :vote_average, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return ErrDuplicateItem
		}
		return fmt.Errorf("insert watchlist item: %w", err)
	}

	return nil
}

// Delete removes one watchlist row. Returns whether a row was removed.
func (r *WatchlistRepository) Delete(ctx context.Context, userID string, mediaID int64, mediaType string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM watchlist WHERE user_id = ? AND media_id = ? AND type = ?`,
		userID, mediaID, mediaType)
	if err != nil {
		return false, fmt.Errorf("delete watchlist item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete watchlist item: %w", err)
	}

	return affected > 0, nil
}

// DeleteByType removes every watchlist row of the given media type.
func (r *WatchlistRepository) DeleteByType(ctx context.Context, userID, mediaType string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM watchlist WHERE user_id = ? AND type = ?`,
		userID, mediaType)
	if err != nil {
		return fmt.Errorf("delete watchlist items: %w", err)
	}

	return nil
}

// Contains reports whether the title is bookmarked by the user.
func (r *WatchlistRepository) Contains(ctx context.Context, userID string, mediaID int64, mediaType string) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one,
		`SELECT 1 FROM watchlist WHERE user_id = ? AND media_id = ? AND type = ?`,
		userID, mediaID, mediaType)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check watchlist item: %w", err)
	}

	return true, nil
}

// List returns one page of the user's watchlist, newest additions first,
// optionally filtered by media type, together with the unfiltered-count for
// the same filter.
func (r *WatchlistRepository) List(ctx context.Context, userID, mediaType string, limit, offset int) ([]models.WatchlistItem, int, error) {
	where := "user_id = ?"
	args := []any{userID}
	if strings.TrimSpace(mediaType) != "" {
		where += " AND type = ?"
		args = append(args, mediaType)
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM watchlist WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count watchlist: %w", err)
	}

	items := make([]models.WatchlistItem, 0)
	query := "SELECT * FROM watchlist WHERE " + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list watchlist: %w", err)
	}

	return items, total, nil
}
