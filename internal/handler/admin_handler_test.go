package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coursequiz/internal/domain"
	"coursequiz/internal/dto"
	"coursequiz/internal/handler"
	"coursequiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockAdminAuthService
type MockAdminAuthService struct {
	LoginFunc         func(ctx context.Context, username, password string) (string, error)
	LogoutFunc        func(ctx context.Context, token string) error
	ValidateTokenFunc func(ctx context.Context, token string) error
}

func (m *MockAdminAuthService) Login(ctx context.Context, username, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	panic("MockAdminAuthService.LoginFunc not implemented")
}

func (m *MockAdminAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	panic("MockAdminAuthService.LogoutFunc not implemented")
}

func (m *MockAdminAuthService) ValidateToken(ctx context.Context, token string) error {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	panic("MockAdminAuthService.ValidateTokenFunc not implemented")
}

func newAdminApp(auth *MockAdminAuthService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewAdminHandler(auth, time.Hour)
	app.Post("/api/admin/login", h.Login)
	app.Post("/api/admin/logout", h.Logout)
	return app
}

func TestAdminHandler_Login(t *testing.T) {
	t.Run("valid credentials set the session cookie", func(t *testing.T) {
		auth := &MockAdminAuthService{
			LoginFunc: func(ctx context.Context, username, password string) (string, error) {
				assert.Equal(t, "admin", username)
				return "tok123", nil
			},
		}
		app := newAdminApp(auth)

		resp := postJSON(t, app, "/api/admin/login",
			dto.AdminLoginRequest{Username: "admin", Password: "s3cret"})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body dto.AdminLoginResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "tok123", body.Token)

		var sessionCookie *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == middleware.AdminSessionCookie {
				sessionCookie = c
			}
		}
		require.NotNil(t, sessionCookie)
		assert.Equal(t, "tok123", sessionCookie.Value)
		assert.True(t, sessionCookie.HttpOnly)
	})

	t.Run("bad credentials return 401", func(t *testing.T) {
		auth := &MockAdminAuthService{
			LoginFunc: func(ctx context.Context, username, password string) (string, error) {
				return "", domain.NewUnauthorizedError("invalid credentials")
			},
		}
		app := newAdminApp(auth)

		resp := postJSON(t, app, "/api/admin/login",
			dto.AdminLoginRequest{Username: "admin", Password: "wrong"})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var body dto.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "invalid credentials", body.Error)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		app := newAdminApp(&MockAdminAuthService{})

		resp := postJSON(t, app, "/api/admin/login", dto.AdminLoginRequest{Username: "admin"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAdminHandler_Logout(t *testing.T) {
	var revoked string
	auth := &MockAdminAuthService{
		LogoutFunc: func(ctx context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	app := newAdminApp(auth)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminSessionCookie, Value: "tok123"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "tok123", revoked)

	for _, c := range resp.Cookies() {
		if c.Name == middleware.AdminSessionCookie {
			assert.True(t, c.Expires.Before(time.Now()), "cookie is expired on logout")
		}
	}
}
