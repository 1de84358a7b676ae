package services

import (
	"context"
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed JWT carrying the user's role and scope.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
