package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-complaints/internal/domain"
	apperrors "github.com/spec-kit/civic-complaints/pkg/util/errorutil"
)

// RequireCitizen ensures a citizen is authenticated.
func RequireCitizen() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeCitizen || principal.Citizen == nil {
			return apperrors.NewForbidden("citizen required")
		}
		return c.Next()
	}
}

// RequireOfficial ensures a municipality official is authenticated.
func RequireOfficial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeOfficial || principal.Official == nil {
			return apperrors.NewForbidden("official required")
		}
		return c.Next()
	}
}

// RequireAny ensures the caller is authenticated (citizen or official).
func RequireAny() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
