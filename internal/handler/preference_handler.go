package handler

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"streamx-recommendation-service/internal/models"
	"streamx-recommendation-service/internal/service"
)

// PreferenceHandler handles HTTP requests for preferences and watch events.
type PreferenceHandler struct {
	svc *service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(svc *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{svc: svc}
}

// RecordWatch records a watch event and returns the refreshed preference record.
// @Summary Record a watch event
// @Tags preferences
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.RecordWatchRequest true "Watch event"
// @Success 200 {object} models.UserPreference
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id}/watch [post]
func (h *PreferenceHandler) RecordWatch(c fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	var req models.RecordWatchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	pref, err := h.svc.RecordWatch(c.Context(), userID, req)
	if err != nil {
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "must not") {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to record watch event", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to record watch event",
		})
	}

	return c.JSON(pref)
}

// GetPreference returns the user's preference record.
// @Summary Get preferences
// @Tags preferences
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.UserPreference
// @Failure 500 {object} ErrorResponse
// @Router /users/{id}/preferences [get]
func (h *PreferenceHandler) GetPreference(c fiber.Ctx) error {
	userID := c.Params("id")

	pref, err := h.svc.GetPreference(c.Context(), userID)
	if err != nil {
		slog.Error("failed to get preferences", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to retrieve preferences",
		})
	}

	return c.JSON(pref)
}

// SetPreference replaces the user's preference record.
// @Summary Set preferences
// @Tags preferences
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.SetPreferenceRequest true "Preferences"
// @Success 200 {object} models.UserPreference
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id}/preferences [put]
func (h *PreferenceHandler) SetPreference(c fiber.Ctx) error {
	userID := c.Params("id")

	var req models.SetPreferenceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	pref, err := h.svc.SetPreference(c.Context(), userID, req)
	if err != nil {
		if strings.Contains(err.Error(), "invalid") {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to set preferences", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to set preferences",
		})
	}

	return c.JSON(pref)
}

// GetWatchHistory returns the user's watch events.
// @Summary Get watch history
// @Tags preferences
// @Produce json
// @Param id path string true "User ID"
// @Param limit query int false "Max entries" default(50)
// @Success 200 {object} map[string][]models.WatchHistoryEntry
// @Failure 500 {object} ErrorResponse
// @Router /users/{id}/history [get]
func (h *PreferenceHandler) GetWatchHistory(c fiber.Ctx) error {
	userID := c.Params("id")

	limit := fiber.Query(c, "limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	entries, err := h.svc.GetWatchHistory(c.Context(), userID, limit)
	if err != nil {
		slog.Error("failed to get watch history", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to retrieve watch history",
		})
	}

	return c.JSON(fiber.Map{
		"user_id": userID,
		"history": entries,
	})
}
