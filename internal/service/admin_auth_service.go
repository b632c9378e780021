package service

import (
	"context"
	"errors"

	"coursequiz/internal/cache"
	"coursequiz/internal/config"
	"coursequiz/internal/domain"
	"coursequiz/internal/logger"
	"coursequiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthService issues and validates opaque admin session tokens.
// Tokens live server-side in Redis with a TTL; logout revokes them
// immediately.
type AdminAuthService interface {
	Login(ctx context.Context, username, password string) (token string, err error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) error
}

type adminAuthService struct {
	cache domain.Cache
	cfg   config.AdminConfig
}

// NewAdminAuthService creates a new instance of adminAuthService
func NewAdminAuthService(cacheClient domain.Cache, cfg config.AdminConfig) AdminAuthService {
	return &adminAuthService{cache: cacheClient, cfg: cfg}
}

// Login implements AdminAuthService. Credential failures are reported
// with a single message so the response does not reveal which part was
// wrong.
func (s *adminAuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.cfg.Username {
		return "", domain.NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
		return "", domain.NewUnauthorizedError("invalid credentials")
	}

	token := util.NewULID()
	key := sessionTokenKey(token)
	if err := s.cache.Set(ctx, key, username, s.cfg.SessionTTL); err != nil {
		return "", domain.NewInternalError("Failed to store admin session", err)
	}

	logger.Get().Info("Admin login", zap.String("username", username))
	return token, nil
}

// Logout implements AdminAuthService. Revoking an unknown token is not
// an error.
func (s *adminAuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.cache.Delete(ctx, sessionTokenKey(token)); err != nil {
		return domain.NewInternalError("Failed to revoke admin session", err)
	}
	return nil
}

// ValidateToken implements AdminAuthService
func (s *adminAuthService) ValidateToken(ctx context.Context, token string) error {
	if token == "" {
		return domain.NewUnauthorizedError("missing session token")
	}
	if _, err := s.cache.Get(ctx, sessionTokenKey(token)); err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return domain.NewUnauthorizedError("invalid or expired session token")
		}
		return domain.NewInternalError("Failed to validate admin session", err)
	}
	return nil
}

func sessionTokenKey(token string) string {
	return cache.GenerateCacheKey("auth", "admin_session", token)
}
