package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"streamx-recommendation-service/internal/models"
)

// PreferenceRepository handles database operations for user preferences and
// watch history.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new PreferenceRepository.
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetPreference returns a user's preference record, or (nil, nil) when the
// user has none yet (cold start).
func (r *PreferenceRepository) GetPreference(ctx context.Context, userID string) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, preferred_genres, preferred_creators,
			content_length_preference, watch_time_preference, last_updated
		FROM user_preferences WHERE user_id = $1
	`, userID).Scan(
		&pref.UserID, pq.Array(&pref.PreferredGenres), pq.Array(&pref.PreferredCreators),
		&pref.ContentLengthPref, &pref.WatchTimePreference, &pref.LastUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query preference: %w", err)
	}
	return &pref, nil
}

// UpsertPreference creates or replaces a user's preference record and
// refreshes last_updated.
func (r *PreferenceRepository) UpsertPreference(ctx context.Context, pref *models.UserPreference) (*models.UserPreference, error) {
	var out models.UserPreference
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO user_preferences
			(user_id, preferred_genres, preferred_creators,
			 content_length_preference, watch_time_preference, last_updated)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_genres = EXCLUDED.preferred_genres,
			preferred_creators = EXCLUDED.preferred_creators,
			content_length_preference = EXCLUDED.content_length_preference,
			watch_time_preference = EXCLUDED.watch_time_preference,
			last_updated = NOW()
		RETURNING user_id, preferred_genres, preferred_creators,
			content_length_preference, watch_time_preference, last_updated
	`, pref.UserID, pq.Array(pref.PreferredGenres), pq.Array(pref.PreferredCreators),
		pref.ContentLengthPref, pref.WatchTimePreference,
	).Scan(
		&out.UserID, pq.Array(&out.PreferredGenres), pq.Array(&out.PreferredCreators),
		&out.ContentLengthPref, &out.WatchTimePreference, &out.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert preference: %w", err)
	}
	return &out, nil
}

// AppendWatch records a watch event. Watch history is append-only.
func (r *PreferenceRepository) AppendWatch(ctx context.Context, entry *models.WatchHistoryEntry) (*models.WatchHistoryEntry, error) {
	var out models.WatchHistoryEntry
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO watch_history (user_id, content_id, watch_duration_seconds, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, content_id, watch_duration_seconds, completed, created_at
	`, entry.UserID, entry.ContentID, entry.WatchDurationSec, entry.Completed,
	).Scan(&out.ID, &out.UserID, &out.ContentID, &out.WatchDurationSec, &out.Completed, &out.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("append watch event: %w", err)
	}
	return &out, nil
}

// GetWatchHistory returns a user's watch events, most recent first.
func (r *PreferenceRepository) GetWatchHistory(ctx context.Context, userID string, limit int) ([]models.WatchHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, content_id, watch_duration_seconds, completed, created_at
		FROM watch_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query watch history: %w", err)
	}
	defer rows.Close()

	entries := make([]models.WatchHistoryEntry, 0)
	for rows.Next() {
		var e models.WatchHistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ContentID, &e.WatchDurationSec, &e.Completed, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan watch event: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetWatchedContentIDs returns the distinct content ids a user has watched.
func (r *PreferenceRepository) GetWatchedContentIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT content_id FROM watch_history WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query watched content ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan content id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
