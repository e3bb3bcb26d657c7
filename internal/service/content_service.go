package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"streamx-recommendation-service/internal/models"
	"streamx-recommendation-service/internal/repository"
)

const (
	contentListCacheTTL = 5 * time.Minute
	featuredCount       = 3
)

// ContentService handles catalog browsing.
type ContentService struct {
	repo  *repository.ContentRepository
	redis *redis.Client
}

// NewContentService creates a new ContentService.
func NewContentService(repo *repository.ContentRepository, rdb *redis.Client) *ContentService {
	return &ContentService{repo: repo, redis: rdb}
}

// ListContent returns a filtered, paginated catalog listing.
func (s *ContentService) ListContent(ctx context.Context, params models.ContentListParams) (*models.ContentListResponse, error) {
	params.Validate()

	premium := "any"
	if params.IsPremium != nil {
		premium = fmt.Sprintf("%t", *params.IsPremium)
	}
	cacheKey := fmt.Sprintf("content:list:%s:%s:%s:%s:%s:%s:%d:%d",
		params.Query, params.Category, params.ContentType, premium,
		params.SortBy, params.Order, params.Page, params.PageSize)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var resp models.ContentListResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.repo.ListContent(ctx, params)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.redis.Set(ctx, cacheKey, data, contentListCacheTTL)
		}
	}

	return resp, nil
}

// GetContent returns one content item, or (nil, nil) for an unknown id.
func (s *ContentService) GetContent(ctx context.Context, id string) (*models.Content, error) {
	return s.repo.GetContentByID(ctx, id)
}

// GetFeaturedContent returns the top catalog items by view count.
func (s *ContentService) GetFeaturedContent(ctx context.Context) ([]models.Content, error) {
	return s.repo.GetFeaturedContent(ctx, featuredCount)
}

// GetEpisodes returns the episodes of a series.
func (s *ContentService) GetEpisodes(ctx context.Context, contentID string) ([]models.Episode, error) {
	return s.repo.GetEpisodes(ctx, contentID)
}

// RecordView increments a content item's view counter. Returns false when
// the id is unknown.
func (s *ContentService) RecordView(ctx context.Context, id string) (bool, error) {
	return s.repo.IncrementViewCount(ctx, id)
}
