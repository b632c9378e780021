package middleware

import (
	"strings"

	"coursequiz/internal/dto"
	"coursequiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "

	// AdminSessionCookie is the cookie browser clients carry the admin
	// session token in. API clients may use a Bearer header instead.
	AdminSessionCookie = "admin_session"
)

// AdminProtected guards the admin routes with an opaque server-side
// session token, read from either the session cookie or a Bearer header.
func AdminProtected(authService service.AdminAuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AdminSessionCookie)
		if token == "" {
			authHeader := c.Get(AuthorizationHeader)
			if strings.HasPrefix(authHeader, BearerSchema) {
				token = strings.TrimPrefix(authHeader, BearerSchema)
			}
		}

		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "admin session required",
			})
		}

		if err := authService.ValidateToken(c.Context(), token); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "invalid or expired session token",
			})
		}

		c.Locals(AdminSessionCookie, token)
		return c.Next()
	}
}
