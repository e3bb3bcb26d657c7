package models

import "time"

// ContentType discriminates the content variants in the catalog.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
	ContentTypeLive   ContentType = "live"
	ContentTypeVideo  ContentType = "video"
)

// ContentCategory is the platform section a content item belongs to.
type ContentCategory string

const (
	CategoryCinema    ContentCategory = "cinema"
	CategoryOriginals ContentCategory = "originals"
	CategoryPlay      ContentCategory = "play"
	CategoryPrime     ContentCategory = "prime"
	CategoryStudio    ContentCategory = "studio"
	CategoryCreators  ContentCategory = "creators"
)

// Content represents one streamable unit. Which optional fields are
// meaningful is determined by ContentType: movie/series carry genre
// metadata, live/video carry a creator.
type Content struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ThumbnailURL    string          `json:"thumbnail_url"`
	ContentURL      string          `json:"content_url"`
	ContentType     ContentType     `json:"content_type"`
	Category        ContentCategory `json:"category"`
	DurationSeconds int             `json:"duration_seconds"` // 0 means unknown
	ReleaseDate     string          `json:"release_date,omitempty"`
	IsPremium       bool            `json:"is_premium"`
	ViewCount       int64           `json:"view_count"`
	Rating          float64         `json:"rating"`

	// Movie and series variants only.
	Genres   []string `json:"genres,omitempty"`
	Cast     []string `json:"cast,omitempty"`
	Director string   `json:"director,omitempty"`

	// Series variant only.
	TotalEpisodes int `json:"total_episodes,omitempty"`
	TotalSeasons  int `json:"total_seasons,omitempty"`

	// Live and video variants only.
	CreatorID   string `json:"creator_id,omitempty"`
	CreatorName string `json:"creator_name,omitempty"`
	IsLive      bool   `json:"is_live,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasGenres reports whether this content variant carries genre metadata.
func (c *Content) HasGenres() bool {
	switch c.ContentType {
	case ContentTypeMovie, ContentTypeSeries:
		return true
	case ContentTypeLive, ContentTypeVideo:
		return false
	}
	return false
}

// GenreList returns the item's genres for genre-bearing variants and nil
// for everything else, regardless of what the Genres field holds.
func (c *Content) GenreList() []string {
	if !c.HasGenres() {
		return nil
	}
	return c.Genres
}

// Episode belongs to a series content item.
type Episode struct {
	ID            string `json:"id"`
	ContentID     string `json:"content_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	EpisodeNumber int    `json:"episode_number"`
	SeasonNumber  int    `json:"season_number"`
	ThumbnailURL  string `json:"thumbnail_url"`
	VideoURL      string `json:"video_url"`
	DurationSecs  int    `json:"duration_seconds"`
	ReleaseDate   string `json:"release_date,omitempty"`
}

// ContentListParams holds query parameters for catalog browsing.
type ContentListParams struct {
	Query       string `query:"query"`
	Category    string `query:"category"`
	ContentType string `query:"content_type"`
	IsPremium   *bool  `query:"is_premium"`
	SortBy      string `query:"sort_by"`
	Order       string `query:"order"`
	Page        int    `query:"page"`
	PageSize    int    `query:"page_size"`
}

// Validate sets defaults and clamps parameters.
func (p *ContentListParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	switch p.SortBy {
	case "views", "rating", "date":
	default:
		p.SortBy = "views"
	}
	if p.Order != "asc" {
		p.Order = "desc"
	}
}

// ContentListResponse is the paginated catalog listing response.
type ContentListResponse struct {
	Page         int       `json:"page"`
	PageSize     int       `json:"page_size"`
	TotalPages   int       `json:"total_pages"`
	TotalResults int       `json:"total_results"`
	Data         []Content `json:"data"`
}
