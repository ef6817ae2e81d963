package services

import (
	"fmt"

	"github.com/studymate/studymate-api/config"
	"github.com/studymate/studymate-api/internal/models"
	"github.com/studymate/studymate-api/pkg/jwt"
	"github.com/studymate/studymate-api/pkg/logger"
	"github.com/studymate/studymate-api/pkg/metrics"
	"go.uber.org/zap"
)

// AuthService issues the login cookie token. The payload is signed as
// supplied by the client; authorization decisions always go back to the
// stored user record, never the token alone.
type AuthService struct {
	tokenManager *jwt.TokenManager
	config       *config.Config
}

// NewAuthService creates a new auth service instance
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		tokenManager: jwt.NewTokenManager(cfg.Auth.AccessTokenSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTLHours),
		config:       cfg,
	}
}

// IssueToken signs a login token for the supplied payload.
func (s *AuthService) IssueToken(req *models.IssueTokenRequest) (string, error) {
	token, err := s.tokenManager.GenerateToken(req.Email, req.Name, req.Role)
	if err != nil {
		logger.Error("Failed to issue token", zap.String("email", req.Email), zap.Error(err))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	metrics.TokensIssued.Inc()
	logger.Info("Login token issued", zap.String("email", req.Email))
	return token, nil
}

// GetTokenManager exposes the token manager for the session middleware.
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}

// GetCookieTTLSeconds returns the cookie max age in seconds.
func (s *AuthService) GetCookieTTLSeconds() int {
	return int(s.tokenManager.GetExpirationTime().Seconds())
}

// GetCookieDomain returns the configured cookie domain.
func (s *AuthService) GetCookieDomain() string {
	return s.config.Auth.CookieDomain
}

// GetCookieSecure reports whether the cookie requires HTTPS. Production
// frontends are cross-site, so Secure (with SameSite=None) is mandatory
// there.
func (s *AuthService) GetCookieSecure() bool {
	return s.config.IsProduction()
}
