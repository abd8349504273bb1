package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-complaints/internal/service"
)

// MunicipalitiesHandler serves municipality lookups.
type MunicipalitiesHandler struct {
	locations *service.LocationService
}

// NewMunicipalitiesHandler constructs handler.
func NewMunicipalitiesHandler(locations *service.LocationService) *MunicipalitiesHandler {
	return &MunicipalitiesHandler{locations: locations}
}

// Get GET /municipalities/:id.
func (h *MunicipalitiesHandler) Get(c *fiber.Ctx) error {
	municipality, err := h.locations.Municipality(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": municipalityResponse(municipality)})
}
