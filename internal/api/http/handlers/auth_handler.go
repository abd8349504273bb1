package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-complaints/internal/api/dto"
	"github.com/spec-kit/civic-complaints/internal/domain"
	"github.com/spec-kit/civic-complaints/internal/service"
	apperrors "github.com/spec-kit/civic-complaints/pkg/util/errorutil"
)

// AuthHandler manages citizen and official authentication endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// RegisterCitizen POST /auth/citizens/register.
func (h *AuthHandler) RegisterCitizen(c *fiber.Ctx) error {
	var req dto.RegisterCitizenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	citizen, token, exp, err := h.service.RegisterCitizen(c.Context(), req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		SubjectID: citizen.ID,
		Subject:   string(domain.SubjectTypeCitizen),
	}})
}

// LoginCitizen POST /auth/citizens/login.
func (h *AuthHandler) LoginCitizen(c *fiber.Ctx) error {
	var req dto.LoginCitizenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	citizen, token, exp, err := h.service.LoginCitizen(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		SubjectID: citizen.ID,
		Subject:   string(domain.SubjectTypeCitizen),
	}})
}

// RequestOTP POST /auth/officials/otp/request.
func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var req dto.OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return apperrors.NewValidationError("phone required", nil)
	}
	if err := h.service.RequestOfficialOTP(c.Context(), req.Phone); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"sent": true}})
}

// VerifyOTP POST /auth/officials/otp/verify.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.OTPVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	official, token, exp, err := h.service.VerifyOfficialOTP(c.Context(), req.Phone, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		SubjectID: official.ID,
		Subject:   string(domain.SubjectTypeOfficial),
	}})
}
