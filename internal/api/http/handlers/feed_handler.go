package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-complaints/internal/api/dto"
	"github.com/spec-kit/civic-complaints/internal/config"
	"github.com/spec-kit/civic-complaints/internal/service"
)

// FeedHandler serves the trending complaint feed.
type FeedHandler struct {
	service   *service.FeedService
	engineCfg config.EngineConfig
}

// NewFeedHandler constructs handler.
func NewFeedHandler(feedService *service.FeedService, engineCfg config.EngineConfig) *FeedHandler {
	return &FeedHandler{service: feedService, engineCfg: engineCfg}
}

// Feed GET /feed. Optional municipality_id filter; page defaults to 1.
func (h *FeedHandler) Feed(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), h.engineCfg.FeedPageSize)

	var municipalityID *string
	if raw := c.Query("municipality_id"); raw != "" {
		municipalityID = &raw
	}

	ranked, err := h.service.Feed(c.Context(), municipalityID, page, pageSize)
	if err != nil {
		return err
	}

	results := make([]dto.RankedEntryResponse, 0, len(ranked.Items))
	for i := range ranked.Items {
		entry := &ranked.Items[i]
		results = append(results, dto.RankedEntryResponse{
			Complaint: complaintResponse(&entry.Complaint),
			Score:     entry.Score,
			Priority:  entry.Priority,
			Bucket:    string(entry.Bucket),
		})
	}

	return c.JSON(fiber.Map{"data": dto.FeedResponse{
		Page:    ranked.Page,
		Count:   len(results),
		Total:   ranked.Total,
		Results: results,
	}})
}
