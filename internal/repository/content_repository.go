package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"streamx-recommendation-service/internal/models"
)

// ContentRepository handles database operations for the content catalog.
type ContentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const contentColumns = `id, title, description, thumbnail_url, content_url,
	content_type, category, duration_seconds,
	COALESCE(TO_CHAR(release_date, 'YYYY-MM-DD'), '') AS release_date,
	is_premium, view_count, rating, genres, cast_members, director,
	total_episodes, total_seasons, creator_id, creator_name, is_live,
	created_at, updated_at`

func scanContent(row interface{ Scan(...any) error }) (*models.Content, error) {
	var c models.Content
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.ThumbnailURL, &c.ContentURL,
		&c.ContentType, &c.Category, &c.DurationSeconds, &c.ReleaseDate,
		&c.IsPremium, &c.ViewCount, &c.Rating,
		pq.Array(&c.Genres), pq.Array(&c.Cast), &c.Director,
		&c.TotalEpisodes, &c.TotalSeasons,
		&c.CreatorID, &c.CreatorName, &c.IsLive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAllContent returns the full catalog in a stable order.
func (r *ContentRepository) GetAllContent(ctx context.Context) ([]models.Content, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s FROM content ORDER BY created_at, id`, contentColumns,
	))
	if err != nil {
		return nil, fmt.Errorf("query content: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// GetContentByID returns a content item, or (nil, nil) when the id is unknown.
func (r *ContentRepository) GetContentByID(ctx context.Context, id string) (*models.Content, error) {
	row := r.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT %s FROM content WHERE id = $1`, contentColumns,
	), id)

	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query content by id: %w", err)
	}
	return c, nil
}

// ListContent returns a paginated, filtered catalog listing.
func (r *ContentRepository) ListContent(ctx context.Context, params models.ContentListParams) (*models.ContentListResponse, error) {
	conditions := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if params.Query != "" {
		conditions = append(conditions, fmt.Sprintf(
			`(title ILIKE $%d OR description ILIKE $%d
				OR EXISTS (SELECT 1 FROM unnest(genres) g WHERE g ILIKE $%d)
				OR EXISTS (SELECT 1 FROM unnest(cast_members) a WHERE a ILIKE $%d))`,
			argIdx, argIdx, argIdx, argIdx,
		))
		args = append(args, "%"+params.Query+"%")
		argIdx++
	}
	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}
	if params.ContentType != "" {
		conditions = append(conditions, fmt.Sprintf("content_type = $%d", argIdx))
		args = append(args, params.ContentType)
		argIdx++
	}
	if params.IsPremium != nil {
		conditions = append(conditions, fmt.Sprintf("is_premium = $%d", argIdx))
		args = append(args, *params.IsPremium)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Validate sort column to prevent SQL injection
	sortColumn := "view_count"
	switch params.SortBy {
	case "rating":
		sortColumn = "rating"
	case "date":
		sortColumn = "release_date"
	}
	orderDir := "DESC"
	if params.Order == "asc" {
		orderDir = "ASC"
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM content WHERE %s", whereClause)
	var totalResults int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalResults); err != nil {
		return nil, fmt.Errorf("count query failed: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	totalPages := 0
	if totalResults > 0 {
		totalPages = (totalResults + params.PageSize - 1) / params.PageSize
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM content
		WHERE %s
		ORDER BY %s %s NULLS LAST, id
		LIMIT $%d OFFSET $%d
	`, contentColumns, whereClause, sortColumn, orderDir, argIdx, argIdx+1)

	args = append(args, params.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	items := make([]models.Content, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content row: %w", err)
		}
		items = append(items, *c)
	}

	return &models.ContentListResponse{
		Page:         params.Page,
		PageSize:     params.PageSize,
		TotalPages:   totalPages,
		TotalResults: totalResults,
		Data:         items,
	}, rows.Err()
}

// GetFeaturedContent returns the top items by view count.
func (r *ContentRepository) GetFeaturedContent(ctx context.Context, limit int) ([]models.Content, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s FROM content ORDER BY view_count DESC, id LIMIT $1`, contentColumns,
	), limit)
	if err != nil {
		return nil, fmt.Errorf("query featured content: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// IncrementViewCount bumps the view counter. Returns false when the id is unknown.
func (r *ContentRepository) IncrementViewCount(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE content SET view_count = view_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("increment view count: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetEpisodes returns the episodes of a series in broadcast order.
func (r *ContentRepository) GetEpisodes(ctx context.Context, contentID string) ([]models.Episode, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content_id, title, description, episode_number, season_number,
			thumbnail_url, video_url, duration_seconds,
			COALESCE(TO_CHAR(release_date, 'YYYY-MM-DD'), '') AS release_date
		FROM episodes
		WHERE content_id = $1
		ORDER BY season_number, episode_number
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	defer rows.Close()

	episodes := make([]models.Episode, 0)
	for rows.Next() {
		var ep models.Episode
		if err := rows.Scan(
			&ep.ID, &ep.ContentID, &ep.Title, &ep.Description,
			&ep.EpisodeNumber, &ep.SeasonNumber,
			&ep.ThumbnailURL, &ep.VideoURL, &ep.DurationSecs, &ep.ReleaseDate,
		); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}
