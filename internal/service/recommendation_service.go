package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"streamx-recommendation-service/internal/models"
)

const (
	defaultPersonalizedLimit = 10
	defaultSimilarLimit      = 5
	defaultTrendingLimit     = 10

	recommendationCacheTTL = 10 * time.Minute
)

// CatalogSource supplies the candidate pool for every ranking pass. The
// engine never mutates the catalog.
type CatalogSource interface {
	GetAllContent(ctx context.Context) ([]models.Content, error)
	GetContentByID(ctx context.Context, id string) (*models.Content, error)
}

// PreferenceStore holds user preference records and watch history.
// GetPreference returns (nil, nil) for cold-start users.
type PreferenceStore interface {
	GetPreference(ctx context.Context, userID string) (*models.UserPreference, error)
	UpsertPreference(ctx context.Context, pref *models.UserPreference) (*models.UserPreference, error)
	AppendWatch(ctx context.Context, entry *models.WatchHistoryEntry) (*models.WatchHistoryEntry, error)
	GetWatchHistory(ctx context.Context, userID string, limit int) ([]models.WatchHistoryEntry, error)
	GetWatchedContentIDs(ctx context.Context, userID string) ([]string, error)
}

// RecommendationService ranks catalog content for the personalized, similar
// and trending retrieval modes. It is stateless between calls.
type RecommendationService struct {
	catalog CatalogSource
	prefs   PreferenceStore
	redis   *redis.Client
}

// NewRecommendationService creates a new RecommendationService. The redis
// client may be nil; caching is then skipped.
func NewRecommendationService(catalog CatalogSource, prefs PreferenceStore, rdb *redis.Client) *RecommendationService {
	return &RecommendationService{
		catalog: catalog,
		prefs:   prefs,
		redis:   rdb,
	}
}

// GetPersonalizedRecommendations scores the unwatched catalog against the
// user's preference profile. Users without a preference record fall back to
// the most viewed content.
func (s *RecommendationService) GetPersonalizedRecommendations(ctx context.Context, userID string, limit int) (*models.RecommendationResponse, error) {
	if limit <= 0 {
		limit = defaultPersonalizedLimit
	}

	cacheKey := fmt.Sprintf("recommendations:%s:%d", userID, limit)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var resp models.RecommendationResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			slog.Debug("recommendations cache hit", "user_id", userID)
			return &resp, nil
		}
	}

	pref, err := s.prefs.GetPreference(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preference: %w", err)
	}

	catalog, err := s.catalog.GetAllContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var items []models.Content
	if pref == nil {
		// Cold start: most viewed content.
		items = topByViews(catalog, limit)
	} else {
		watchedIDs, err := s.prefs.GetWatchedContentIDs(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("get watched content ids: %w", err)
		}
		watched := make(map[string]bool, len(watchedIDs))
		for _, id := range watchedIDs {
			watched[id] = true
		}

		scored := make([]scoredContent, 0, len(catalog))
		for i := range catalog {
			if watched[catalog[i].ID] {
				continue
			}
			scored = append(scored, scoredContent{
				content: catalog[i],
				score:   personalizedScore(&catalog[i], pref),
			})
		}
		items = rankByScore(scored, limit)
	}

	resp := &models.RecommendationResponse{
		UserID:          userID,
		Recommendations: items,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if data, err := json.Marshal(resp); err == nil {
		s.setCache(ctx, cacheKey, string(data), recommendationCacheTTL)
	}

	return resp, nil
}

// GetSimilarContent ranks the catalog by similarity to a reference item.
// An unknown reference id yields an empty list, not an error.
func (s *RecommendationService) GetSimilarContent(ctx context.Context, contentID string, limit int) ([]models.Content, error) {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	cacheKey := fmt.Sprintf("similar:%s:%d", contentID, limit)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var items []models.Content
		if json.Unmarshal([]byte(cached), &items) == nil {
			return items, nil
		}
	}

	ref, err := s.catalog.GetContentByID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("get reference content: %w", err)
	}
	if ref == nil {
		return []models.Content{}, nil
	}

	catalog, err := s.catalog.GetAllContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scored := make([]scoredContent, 0, len(catalog))
	for i := range catalog {
		if catalog[i].ID == ref.ID {
			continue
		}
		scored = append(scored, scoredContent{
			content: catalog[i],
			score:   similarityScore(&catalog[i], ref),
		})
	}
	items := rankByScore(scored, limit)

	if data, err := json.Marshal(items); err == nil {
		s.setCache(ctx, cacheKey, string(data), recommendationCacheTTL)
	}

	return items, nil
}

// GetTrendingContent returns the catalog ordered by lifetime view count.
// A recency-windowed popularity signal is a possible refinement; raw view
// count is the intended behavior here.
func (s *RecommendationService) GetTrendingContent(ctx context.Context, limit int) ([]models.Content, error) {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}

	cacheKey := fmt.Sprintf("trending:%d", limit)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var items []models.Content
		if json.Unmarshal([]byte(cached), &items) == nil {
			return items, nil
		}
	}

	catalog, err := s.catalog.GetAllContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := topByViews(catalog, limit)

	if data, err := json.Marshal(items); err == nil {
		s.setCache(ctx, cacheKey, string(data), recommendationCacheTTL)
	}

	return items, nil
}

// topByViews returns the top items by view count, ties kept in catalog order.
func topByViews(catalog []models.Content, limit int) []models.Content {
	ranked := make([]models.Content, len(catalog))
	copy(ranked, catalog)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ViewCount > ranked[j].ViewCount
	})
	if limit > len(ranked) {
		limit = len(ranked)
	}
	return ranked[:limit]
}

// Redis helpers

func (s *RecommendationService) getFromCache(ctx context.Context, key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(ctx, key).Result()
}

func (s *RecommendationService) setCache(ctx context.Context, key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}
