package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/access"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/produce_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
	"github.com/SscSPs/produce_settlement_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo     portsrepo.UserRepositoryFacade
	producerRepo portsrepo.ProducerReader
}

// NewUserService creates a new user service
func NewUserService(userRepo portsrepo.UserRepositoryFacade, producerRepo portsrepo.ProducerReader) portssvc.UserSvcFacade {
	return &userService{
		userRepo:     userRepo,
		producerRepo: producerRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, caller domain.Caller, req dto.CreateUserRequest) (*domain.User, error) {
	if !access.CanManageUsers(caller) {
		return nil, fmt.Errorf("%w: only admins can create users", apperrors.ErrForbidden)
	}
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	user := domain.User{
		UserID:    uuid.NewString(),
		Username:  strings.ToLower(strings.TrimSpace(req.Username)),
		Name:      strings.TrimSpace(req.Name),
		Role:      req.Role,
		BranchIDs: []string{},
	}

	switch req.Role {
	case domain.RoleProducer:
		if req.ProducerID == nil || *req.ProducerID == "" {
			return nil, fmt.Errorf("%w: producer logins need a producerID", apperrors.ErrValidation)
		}
		if _, err := s.producerRepo.FindProducerByID(ctx, *req.ProducerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: producer %s does not exist", apperrors.ErrValidation, *req.ProducerID)
			}
			return nil, fmt.Errorf("failed to check producer: %w", err)
		}
		producerID := *req.ProducerID
		user.ProducerID = &producerID
	case domain.RoleBranchManager:
		if len(req.BranchIDs) == 0 {
			return nil, fmt.Errorf("%w: branch managers need at least one branch", apperrors.ErrValidation)
		}
		user.BranchIDs = append(user.BranchIDs, req.BranchIDs...)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.AuditFields = domain.NewAuditFields(time.Now().UTC(), caller.UserID)

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("username", user.Username))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// AuthenticateUser never tells the caller whether the username or the password was wrong.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to load user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.GetLogger(ctx).Warn("Login failed", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}
