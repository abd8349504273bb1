package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-complaints/internal/api/dto"
	"github.com/spec-kit/civic-complaints/internal/auth"
	"github.com/spec-kit/civic-complaints/internal/config"
	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/service"
	"github.com/spec-kit/civic-complaints/pkg/geo"
	apperrors "github.com/spec-kit/civic-complaints/pkg/util/errorutil"
)

// ProfileHandler exposes the citizen profile and location grants.
type ProfileHandler struct {
	locations *service.LocationService
	engineCfg config.EngineConfig
}

// NewProfileHandler constructs handler.
func NewProfileHandler(locations *service.LocationService, engineCfg config.EngineConfig) *ProfileHandler {
	return &ProfileHandler{locations: locations, engineCfg: engineCfg}
}

// GetProfile GET /profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewUnauthorized("citizen required")
	}
	return c.JSON(fiber.Map{"data": profileResponse(principal.Citizen)})
}

// UpdateLocation PUT /profile/location. Every grant re-runs municipality
// resolution; a null municipality in the response is a valid outcome.
func (h *ProfileHandler) UpdateLocation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewUnauthorized("citizen required")
	}
	var req dto.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	point, err := geo.NewCoordinate(req.Latitude, req.Longitude)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	match, err := h.locations.UpdateLocation(c.Context(), principal.Citizen.ID, point)
	if err != nil {
		return err
	}
	resp := dto.ResolveResponse{}
	if match != nil {
		m := municipalityResponse(match)
		resp.Municipality = &m
	}
	return c.JSON(fiber.Map{"data": resp})
}

// NearbyMunicipalities GET /municipalities/nearby.
func (h *ProfileHandler) NearbyMunicipalities(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewUnauthorized("citizen required")
	}
	if principal.Citizen.Coordinate == nil {
		return apperrors.NewValidationError("citizen location not granted", nil)
	}
	count := parseInt(c.Query("count"), h.engineCfg.NearbyCount)
	municipalities, err := h.locations.Nearby(c.Context(), *principal.Citizen.Coordinate, count, h.engineCfg.NearbyRadiusKm)
	if err != nil {
		return err
	}
	items := make([]dto.MunicipalityResponse, 0, len(municipalities))
	for i := range municipalities {
		items = append(items, municipalityResponse(&municipalities[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func profileResponse(citizen *domain.Citizen) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		ID:             citizen.ID,
		Name:           citizen.Name,
		Email:          citizen.Email,
		Phone:          citizen.Phone,
		MunicipalityID: citizen.MunicipalityID,
		IntegrityScore: citizen.IntegrityScore,
	}
	if citizen.Coordinate != nil {
		lat := citizen.Coordinate.Lat
		lon := citizen.Coordinate.Lon
		resp.Latitude = &lat
		resp.Longitude = &lon
	}
	return resp
}

func municipalityResponse(m *domain.Municipality) dto.MunicipalityResponse {
	return dto.MunicipalityResponse{
		ID:              m.ID,
		Name:            m.Name,
		District:        m.District,
		State:           m.State,
		Latitude:        m.Home.Lat,
		Longitude:       m.Home.Lon,
		AreaKm2:         m.AreaKm2,
		ServiceRadiusKm: m.ServiceRadiusKm(),
		Verified:        m.Verified,
	}
}
