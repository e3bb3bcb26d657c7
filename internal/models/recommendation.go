package models

// RecommendationResponse wraps a personalized recommendation list.
type RecommendationResponse struct {
	UserID          string    `json:"user_id"`
	Recommendations []Content `json:"recommendations"`
	GeneratedAt     string    `json:"generated_at"`
}

// TagsRequest is the request body for content tag classification.
type TagsRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TagsResponse wraps the classified tags.
type TagsResponse struct {
	Tags []string `json:"tags"`
}
