package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"streamx-recommendation-service/internal/models"
	"streamx-recommendation-service/internal/service"
)

// ContentHandler handles HTTP requests for catalog browsing.
type ContentHandler struct {
	svc *service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(svc *service.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

// ListContent returns a filtered, paginated catalog listing.
// @Summary Browse the catalog
// @Tags content
// @Produce json
// @Param query query string false "Search in title, description, genres, cast"
// @Param category query string false "Category filter" Enums(cinema,originals,play,prime,studio,creators)
// @Param content_type query string false "Content type filter" Enums(movie,series,live,video)
// @Param is_premium query bool false "Premium filter"
// @Param sort_by query string false "Sort field" Enums(views,rating,date) default(views)
// @Param order query string false "Sort order" Enums(asc,desc) default(desc)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} models.ContentListResponse
// @Failure 500 {object} ErrorResponse
// @Router /content [get]
func (h *ContentHandler) ListContent(c fiber.Ctx) error {
	params := models.ContentListParams{
		Query:       c.Query("query"),
		Category:    c.Query("category"),
		ContentType: c.Query("content_type"),
		SortBy:      c.Query("sort_by", "views"),
		Order:       c.Query("order", "desc"),
		Page:        fiber.Query(c, "page", 1),
		PageSize:    fiber.Query(c, "page_size", 20),
	}
	if c.Query("is_premium") != "" {
		premium := fiber.Query[bool](c, "is_premium")
		params.IsPremium = &premium
	}

	result, err := h.svc.ListContent(c.Context(), params)
	if err != nil {
		slog.Error("failed to list content", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to retrieve content",
		})
	}

	return c.JSON(result)
}

// GetFeaturedContent returns the top catalog items by view count.
// @Summary Featured content
// @Tags content
// @Produce json
// @Success 200 {object} map[string][]models.Content
// @Failure 500 {object} ErrorResponse
// @Router /content/featured [get]
func (h *ContentHandler) GetFeaturedContent(c fiber.Ctx) error {
	items, err := h.svc.GetFeaturedContent(c.Context())
	if err != nil {
		slog.Error("failed to fetch featured content", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to retrieve featured content",
		})
	}

	return c.JSON(fiber.Map{
		"featured": items,
	})
}

// GetContent returns one content item.
// @Summary Get content by id
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} models.Content
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /content/{id} [get]
func (h *ContentHandler) GetContent(c fiber.Ctx) error {
	id := c.Params("id")

	content, err := h.svc.GetContent(c.Context(), id)
	if err != nil {
		slog.Error("failed to get content", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to retrieve content",
		})
	}
	if content == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "content not found"})
	}

	return c.JSON(content)
}

// GetEpisodes returns the episodes of a series.
// @Summary List episodes
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} map[string][]models.Episode
// @Failure 500 {object} ErrorResponse
// @Router /content/{id}/episodes [get]
func (h *ContentHandler) GetEpisodes(c fiber.Ctx) error {
	id := c.Params("id")

	episodes, err := h.svc.GetEpisodes(c.Context(), id)
	if err != nil {
		slog.Error("failed to get episodes", "content_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to retrieve episodes",
		})
	}

	return c.JSON(fiber.Map{
		"content_id": id,
		"episodes":   episodes,
	})
}

// RecordView increments a content item's view counter.
// @Summary Record a view
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /content/{id}/views [post]
func (h *ContentHandler) RecordView(c fiber.Ctx) error {
	id := c.Params("id")

	found, err := h.svc.RecordView(c.Context(), id)
	if err != nil {
		slog.Error("failed to record view", "content_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to record view",
		})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "content not found"})
	}

	return c.JSON(fiber.Map{
		"status": "recorded",
	})
}
