package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"cineview/models"
)

// HistoryRepository persists watch-progress records in the histories table.
type HistoryRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Upsert writes a full progress record, snapshot columns included. On natural
// key collision every mutable column is overwritten; conflict resolution is
// last write wins, ordered by arrival at the store.
func (r *HistoryRepository) Upsert(ctx context.Context, rec models.History) error {
	query := `
		INSERT INTO histories (
			user_id, media_id, type, season, episode,
			duration, last_position, completed,
			adult, backdrop_path, poster_path, release_date, title, vote_average,
			snapshot_updated_at, updated_at
		) VALUES (
			:user_id, :media_id, :type, :season, :episode,
			:duration, :last_position, :completed,
			:adult, :backdrop_path, :poster_path, :release_date, :title, :vote_average,
			:snapshot_updated_at, :updated_at
		)
		ON CONFLICT (user_id, media_id, type, season, episode) DO UPDATE SET
			duration = excluded.duration,
			last_position = excluded.last_position,
			completed = excluded.completed,
			adult = excluded.adult,
			backdrop_path = excluded.backdrop_path,
			poster_path = excluded.poster_path,
			release_date = excluded.release_date,
			title = excluded.title,
			vote_average = excluded.vote_average,
			snapshot_updated_at = excluded.snapshot_updated_at,
			updated_at = excluded.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("upsert history: %w", err)
	}

	return nil
}

// UpdatePosition updates only the telemetry columns of an existing record,
// leaving the metadata snapshot untouched. Returns false when no record exists
// for the key.
func (r *HistoryRepository) UpdatePosition(ctx context.Context, rec models.History) (bool, error) {
	query := `
		UPDATE histories SET
			duration = :duration,
			last_position = :last_position,
			completed = :completed,
			updated_at = :updated_at
		WHERE user_id = :user_id AND media_id = :media_id AND type = :type
		  AND season = :season AND episode = :episode`

	res, err := r.db.NamedExecContext(ctx, query, rec)
	if err != nil {
		return false, fmt.Errorf("update history position: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update history position: %w", err)
	}

	return affected > 0, nil
}

// Get returns the record for the exact natural key, or nil when absent.
func (r *HistoryRepository) Get(ctx context.Context, userID string, mediaID int64, mediaType string, season, episode int) (*models.History, error) {
	var rec models.History
	err := r.db.GetContext(ctx, &rec, `
		SELECT * FROM histories
		WHERE user_id = ? AND media_id = ? AND type = ? AND season = ? AND episode = ?`,
		userID, mediaID, mediaType, season, episode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	return &rec, nil
}

// LastEpisode returns the most recently updated episode record for a series,
// or nil when the user has no progress for it.
func (r *HistoryRepository) LastEpisode(ctx context.Context, userID string, mediaID int64) (*models.History, error) {
	var rec models.History
	err := r.db.GetContext(ctx, &rec, `
		SELECT * FROM histories
		WHERE user_id = ? AND media_id = ? AND type = ?
		ORDER BY updated_at DESC
		LIMIT 1`,
		userID, mediaID, models.MediaTypeTV)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last episode: %w", err)
	}

	return &rec, nil
}

// ListRecent returns the user's progress records ordered by most recent
// update first.
func (r *HistoryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.History, error) {
	recs := make([]models.History, 0)
	err := r.db.SelectContext(ctx, &recs, `
		SELECT * FROM histories
		WHERE user_id = ?
		ORDER BY updated_at DESC
		LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return recs, nil
}
