package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"streamx-recommendation-service/internal/models"
	"streamx-recommendation-service/internal/service"
)

// RecommendationHandler handles HTTP requests for the ranking engine.
type RecommendationHandler struct {
	svc *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *RecommendationHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "streamx-recommendation-service",
	})
}

// GetRecommendations returns personalized recommendations for a user.
// @Summary Personalized recommendations
// @Tags recommendations
// @Produce json
// @Param id path string true "User ID"
// @Param limit query int false "Max results" default(10)
// @Success 200 {object} models.RecommendationResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id}/recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	limit := fiber.Query(c, "limit", 10)
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	resp, err := h.svc.GetPersonalizedRecommendations(c.Context(), userID, limit)
	if err != nil {
		slog.Error("failed to generate recommendations", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to generate recommendations",
		})
	}

	return c.JSON(resp)
}

// GetSimilarContent returns content similar to a reference item. An unknown
// id yields an empty list.
// @Summary Similar content
// @Tags recommendations
// @Produce json
// @Param id path string true "Content ID"
// @Param limit query int false "Max results" default(5)
// @Success 200 {object} map[string][]models.Content
// @Failure 500 {object} ErrorResponse
// @Router /content/{id}/similar [get]
func (h *RecommendationHandler) GetSimilarContent(c fiber.Ctx) error {
	contentID := c.Params("id")

	limit := fiber.Query(c, "limit", 5)
	if limit <= 0 || limit > 50 {
		limit = 5
	}

	items, err := h.svc.GetSimilarContent(c.Context(), contentID, limit)
	if err != nil {
		slog.Error("failed to find similar content", "content_id", contentID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to find similar content",
		})
	}

	return c.JSON(fiber.Map{
		"content_id": contentID,
		"similar":    items,
	})
}

// GetTrendingContent returns the most viewed catalog content.
// @Summary Trending content
// @Tags recommendations
// @Produce json
// @Param limit query int false "Max results" default(10)
// @Success 200 {object} map[string][]models.Content
// @Failure 500 {object} ErrorResponse
// @Router /content/trending [get]
func (h *RecommendationHandler) GetTrendingContent(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 10)
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	items, err := h.svc.GetTrendingContent(c.Context(), limit)
	if err != nil {
		slog.Error("failed to fetch trending content", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to fetch trending content",
		})
	}

	return c.JSON(fiber.Map{
		"trending": items,
	})
}

// GetContentTags classifies a title and description into tags.
// @Summary Classify content tags
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body models.TagsRequest true "Title and description"
// @Success 200 {object} models.TagsResponse
// @Failure 400 {object} ErrorResponse
// @Router /content/tags [post]
func (h *RecommendationHandler) GetContentTags(c fiber.Ctx) error {
	var req models.TagsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if req.Title == "" && req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "title or description is required"})
	}

	return c.JSON(models.TagsResponse{
		Tags: service.ContentTags(req.Title, req.Description),
	})
}
