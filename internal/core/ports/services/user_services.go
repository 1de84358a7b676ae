package services

import (
	"context"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new login. Only admins may call it.
	CreateUser(ctx context.Context, caller domain.Caller, req dto.CreateUserRequest) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks a username and password and returns the user.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
