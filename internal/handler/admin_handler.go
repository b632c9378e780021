package handler

import (
	"time"

	"coursequiz/internal/domain"
	"coursequiz/internal/dto"
	"coursequiz/internal/middleware"
	"coursequiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin authentication endpoints.
type AdminHandler struct {
	auth       service.AdminAuthService
	sessionTTL time.Duration
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(auth service.AdminAuthService, sessionTTL time.Duration) *AdminHandler {
	return &AdminHandler{auth: auth, sessionTTL: sessionTTL}
}

// Login handles POST /api/admin/login. On success the session token is
// returned in the body and set as an HTTP-only cookie.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return domain.NewInvalidInputError("username and password required")
	}

	token, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminSessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
	return c.JSON(dto.AdminLoginResponse{Token: token})
}

// Logout handles POST /api/admin/logout. The token is revoked
// server-side and the cookie is cleared.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(middleware.AdminSessionCookie)
	if token == "" {
		if local, ok := c.Locals(middleware.AdminSessionCookie).(string); ok {
			token = local
		}
	}
	if err := h.auth.Logout(c.Context(), token); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminSessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
	return c.SendStatus(fiber.StatusNoContent)
}
