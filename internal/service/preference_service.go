package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"streamx-recommendation-service/internal/models"
)

const (
	prefCacheTTL        = 10 * time.Minute
	defaultHistoryLimit = 50
)

// PreferenceService records watch events and manages preference records.
type PreferenceService struct {
	prefs PreferenceStore
	redis *redis.Client
}

// NewPreferenceService creates a new PreferenceService. The redis client may
// be nil; caching is then skipped.
func NewPreferenceService(prefs PreferenceStore, rdb *redis.Client) *PreferenceService {
	return &PreferenceService{prefs: prefs, redis: rdb}
}

// RecordWatch appends a watch event, creates the user's preference record on
// first contact, and refreshes its last_updated timestamp. Deriving new
// preferred genres or creators from the watched content is left out; only
// the timestamp is touched.
func (s *PreferenceService) RecordWatch(ctx context.Context, userID string, req models.RecordWatchRequest) (*models.UserPreference, error) {
	if req.ContentID == "" {
		return nil, fmt.Errorf("content_id is required")
	}
	if req.WatchDurationSec < 0 {
		return nil, fmt.Errorf("watch_duration_seconds must not be negative")
	}

	if _, err := s.prefs.AppendWatch(ctx, &models.WatchHistoryEntry{
		UserID:           userID,
		ContentID:        req.ContentID,
		WatchDurationSec: req.WatchDurationSec,
		Completed:        req.Completed,
	}); err != nil {
		return nil, err
	}

	pref, err := s.prefs.GetPreference(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		pref = models.DefaultPreference(userID)
	}

	updated, err := s.prefs.UpsertPreference(ctx, pref)
	if err != nil {
		return nil, err
	}

	s.invalidateUserCaches(ctx, userID)

	return updated, nil
}

// GetPreference returns the user's preference record, or the defaults for a
// cold-start user.
func (s *PreferenceService) GetPreference(ctx context.Context, userID string) (*models.UserPreference, error) {
	cacheKey := fmt.Sprintf("user:pref:%s", userID)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var pref models.UserPreference
		if json.Unmarshal([]byte(cached), &pref) == nil {
			return &pref, nil
		}
	}

	pref, err := s.prefs.GetPreference(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return models.DefaultPreference(userID), nil
	}

	if data, err := json.Marshal(pref); err == nil {
		s.setCache(ctx, cacheKey, string(data), prefCacheTTL)
	}

	return pref, nil
}

// SetPreference replaces the user's preference record.
func (s *PreferenceService) SetPreference(ctx context.Context, userID string, req models.SetPreferenceRequest) (*models.UserPreference, error) {
	if req.ContentLengthPref != "" && !models.ValidContentLengths[req.ContentLengthPref] {
		return nil, fmt.Errorf("invalid content length preference: %s", req.ContentLengthPref)
	}
	if req.WatchTimePreference != "" && !models.ValidWatchTimes[req.WatchTimePreference] {
		return nil, fmt.Errorf("invalid watch time preference: %s", req.WatchTimePreference)
	}

	pref := models.DefaultPreference(userID)
	if req.PreferredGenres != nil {
		pref.PreferredGenres = req.PreferredGenres
	}
	if req.PreferredCreators != nil {
		pref.PreferredCreators = req.PreferredCreators
	}
	if req.ContentLengthPref != "" {
		pref.ContentLengthPref = models.ContentLength(req.ContentLengthPref)
	}
	if req.WatchTimePreference != "" {
		pref.WatchTimePreference = models.WatchTime(req.WatchTimePreference)
	}

	updated, err := s.prefs.UpsertPreference(ctx, pref)
	if err != nil {
		return nil, err
	}

	s.invalidateUserCaches(ctx, userID)

	return updated, nil
}

// GetWatchHistory returns the user's watch events, most recent first.
func (s *PreferenceService) GetWatchHistory(ctx context.Context, userID string, limit int) ([]models.WatchHistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.prefs.GetWatchHistory(ctx, userID, limit)
}

// invalidateUserCaches drops the user's preference cache and every cached
// recommendation list, so a recorded watch event is reflected immediately
// instead of after the cache TTL.
func (s *PreferenceService) invalidateUserCaches(ctx context.Context, userID string) {
	s.delCache(ctx, fmt.Sprintf("user:pref:%s", userID))
	s.delCacheByPattern(ctx, fmt.Sprintf("recommendations:%s:*", userID))
}

// Redis helpers

func (s *PreferenceService) getFromCache(ctx context.Context, key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(ctx, key).Result()
}

func (s *PreferenceService) setCache(ctx context.Context, key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func (s *PreferenceService) delCache(ctx context.Context, key string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, key)
}

func (s *PreferenceService) delCacheByPattern(ctx context.Context, pattern string) {
	if s.redis == nil {
		return
	}
	var cursor uint64
	for {
		keys, next, err := s.redis.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Error("failed to scan cache keys", "pattern", pattern, "error", err)
			return
		}
		if len(keys) > 0 {
			s.redis.Del(ctx, keys...)
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}
