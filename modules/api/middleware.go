package api

import (
	"strings"

	domain "github.com/example/kanban-backend/domain/user"
	"github.com/example/kanban-backend/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// principalKey is where RequireAuth stores the verified claims on the
// request context.
const principalKey = "principal"

// Principal returns the claims RequireAuth attached for this request.
func Principal(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := c.Locals(principalKey).(*domain.Claims)
	return claims, ok
}

// RequireAuth verifies the bearer credential on every request and attaches
// the resulting principal. Requests without a valid access token never reach
// the protected handlers.
func RequireAuth(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "Missing Authorization header")
		}

		scheme, credential, _ := strings.Cut(header, " ")
		credential = strings.TrimSpace(credential)
		if !strings.EqualFold(scheme, "Bearer") || credential == "" {
			return unauthorized(c, "Expected a bearer access token")
		}

		claims, err := authPort.ValidateToken(c.UserContext(), credential)
		if err != nil {
			return unauthorized(c, "Access token is invalid or expired")
		}

		c.Locals(principalKey, claims)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}
