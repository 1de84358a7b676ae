package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/platform/config"
	"github.com/SscSPs/produce_settlement_app/internal/utils"
)

// tokenService issues the JWTs handed out at login.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(*user, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}
