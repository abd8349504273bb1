package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-complaints/internal/api/dto"
	"github.com/spec-kit/civic-complaints/internal/auth"
	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/service"
	"github.com/spec-kit/civic-complaints/pkg/geo"
	apperrors "github.com/spec-kit/civic-complaints/pkg/util/errorutil"
)

// ComplaintsHandler manages complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// Create POST /complaints. Returns 201 with the complaint, or 200 with
// similar candidates when duplicates were found and force_create is false.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewUnauthorized("citizen required")
	}
	input, err := parseComplaintInput(c)
	if err != nil {
		return err
	}
	result, err := h.service.Create(c.Context(), principal.Citizen.ID, *input)
	if err != nil {
		return err
	}
	if result.Complaint == nil {
		return c.JSON(fiber.Map{"data": dto.SimilarComplaintsResponse{
			Similar: complaintResponses(result.Similar),
		}})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": complaintResponse(result.Complaint)})
}

// CheckSimilar POST /complaints/check-similar.
func (h *ComplaintsHandler) CheckSimilar(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewUnauthorized("citizen required")
	}
	input, err := parseComplaintInput(c)
	if err != nil {
		return err
	}
	similar, err := h.service.CheckSimilar(c.Context(), *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SimilarComplaintsResponse{
		Similar: complaintResponses(similar),
	}})
}

// Get GET /complaints/:id. Citizens additionally see whether they already
// upvoted it.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	complaint, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	resp := complaintResponse(complaint)
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Citizen != nil {
		upvoted, err := h.service.HasUpvoted(c.Context(), principal.Citizen.ID, complaint.ID)
		if err != nil {
			return err
		}
		resp.Upvoted = &upvoted
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Upvote POST /complaints/:id/upvote. Idempotent: a repeat vote returns the
// unchanged count with no error.
func (h *ComplaintsHandler) Upvote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewUnauthorized("citizen required")
	}
	count, err := h.service.Upvote(c.Context(), principal.Citizen.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UpvoteResponse{
		ComplaintID: c.Params("id"),
		UpvoteCount: count,
	}})
}

// Transition POST /complaints/:id/status (officials only).
func (h *ComplaintsHandler) Transition(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Official == nil {
		return apperrors.NewForbidden("official required")
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, valid := domain.ParseComplaintStatus(req.Status)
	if !valid {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}
	complaint, err := h.service.Transition(c.Context(), principal.Official, c.Params("id"), status, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponse(complaint)})
}

// AddComment POST /complaints/:id/comments.
func (h *ComplaintsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Citizen == nil {
		return apperrors.NewUnauthorized("citizen required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.service.AddComment(c.Context(), principal.Citizen.ID, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// ListComments GET /complaints/:id/comments.
func (h *ComplaintsHandler) ListComments(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	comments, err := h.service.ListComments(c.Context(), c.Params("id"), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListByMunicipality GET /municipalities/:id/complaints.
func (h *ComplaintsHandler) ListByMunicipality(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	complaints, err := h.service.ListByMunicipality(c.Context(), c.Params("id"), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponses(complaints)})
}

func parseComplaintInput(c *fiber.Ctx) (*service.ComplaintCreateInput, error) {
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	coord, err := geo.NewCoordinate(req.Latitude, req.Longitude)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	return &service.ComplaintCreateInput{
		MunicipalityID: strings.TrimSpace(req.MunicipalityID),
		Department:     strings.TrimSpace(req.Department),
		Topic:          req.Topic,
		Description:    req.Description,
		Location:       req.Location,
		Coordinate:     coord,
		ForceCreate:    req.ForceCreate,
	}, nil
}

func complaintResponse(complaint *domain.Complaint) dto.ComplaintResponse {
	return dto.ComplaintResponse{
		ID:                 complaint.ID,
		CitizenID:          complaint.CitizenID,
		MunicipalityID:     complaint.MunicipalityID,
		Department:         complaint.Department,
		Topic:              complaint.Topic,
		Description:        complaint.Description,
		Location:           complaint.Location,
		Latitude:           complaint.Coordinate.Lat,
		Longitude:          complaint.Coordinate.Lon,
		Status:             complaint.Status,
		UpvoteCount:        complaint.UpvoteCount,
		CreatedAt:          complaint.CreatedAt,
		LastStatusChangeAt: complaint.LastStatusChangeAt,
	}
}

func complaintResponses(complaints []domain.Complaint) []dto.ComplaintResponse {
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, complaintResponse(&complaints[i]))
	}
	return items
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		CitizenID: comment.CitizenID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
