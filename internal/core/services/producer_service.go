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
	"github.com/google/uuid"
)

type producerService struct {
	BaseService
	producerRepo portsrepo.ProducerRepositoryFacade
}

// NewProducerService creates the producer service. It also acts as the
// producer authorizer for the other services.
func NewProducerService(repo portsrepo.ProducerRepositoryFacade) portssvc.ProducerSvcFacade {
	svc := &producerService{producerRepo: repo}
	svc.ProducerAuthorizer = svc
	return svc
}

var _ portssvc.ProducerSvcFacade = (*producerService)(nil)

func (s *producerService) AuthorizeProducerAction(ctx context.Context, caller domain.Caller, producerID string, action access.Action) (*domain.Producer, error) {
	producer, err := s.producerRepo.FindProducerByID(ctx, producerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load producer for authorization", slog.String("producer_id", producerID))
		}
		return nil, err
	}
	if !access.Allowed(caller, *producer, action) {
		s.GetLogger(ctx).Warn("Producer access denied",
			slog.String("producer_id", producerID),
			slog.String("action", action.String()),
			slog.String("role", string(caller.Role)))
		return nil, fmt.Errorf("%w: cannot %s producer %s", apperrors.ErrForbidden, action, producerID)
	}
	return producer, nil
}

func (s *producerService) GetProducer(ctx context.Context, caller domain.Caller, producerID string) (*domain.Producer, error) {
	return s.AuthorizeProducerAction(ctx, caller, producerID, access.ActionView)
}

func (s *producerService) ListProducers(ctx context.Context, caller domain.Caller, params dto.ListProducersParams) ([]domain.Producer, error) {
	if caller.Role == domain.RoleProducer {
		own, err := s.AuthorizeProducerAction(ctx, caller, caller.ProducerID, access.ActionView)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return []domain.Producer{}, nil
			}
			return nil, err
		}
		return []domain.Producer{*own}, nil
	}

	producers, err := s.producerRepo.ListProducers(ctx, access.BranchScope(caller), params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list producers", slog.Int("limit", params.Limit), slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list producers: %w", err)
	}
	producers = access.RestrictToBranches(caller, producers, func(p domain.Producer) string { return p.BranchID })
	s.LogDebug(ctx, "Producers listed", slog.Int("count", len(producers)))
	return producers, nil
}

func (s *producerService) CreateProducer(ctx context.Context, caller domain.Caller, req dto.CreateProducerRequest) (*domain.Producer, error) {
	if !access.CanAccessBranch(caller, req.BranchID) {
		return nil, fmt.Errorf("%w: cannot create producers in branch %s", apperrors.ErrForbidden, req.BranchID)
	}

	producer := domain.Producer{
		ProducerID:  uuid.NewString(),
		BranchID:    req.BranchID,
		Name:        strings.TrimSpace(req.Name),
		Phone:       req.Phone,
		Location:    req.Location,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(time.Now().UTC(), caller.UserID),
	}
	if err := s.producerRepo.SaveProducer(ctx, producer); err != nil {
		s.LogError(ctx, err, "Failed to save producer", slog.String("producer_id", producer.ProducerID))
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	s.LogInfo(ctx, "Producer created", slog.String("producer_id", producer.ProducerID), slog.String("branch_id", producer.BranchID))
	return &producer, nil
}

func (s *producerService) UpdateProducer(ctx context.Context, caller domain.Caller, producerID string, req dto.UpdateProducerRequest) (*domain.Producer, error) {
	producer, err := s.AuthorizeProducerAction(ctx, caller, producerID, access.ActionManageLineItems)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		producer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		producer.Phone = *req.Phone
	}
	if req.Location != nil {
		producer.Location = *req.Location
	}
	if req.IsActive != nil {
		producer.IsActive = *req.IsActive
	}
	producer.LastUpdatedAt = time.Now().UTC()
	producer.LastUpdatedBy = caller.UserID

	if err := s.producerRepo.UpdateProducer(ctx, *producer); err != nil {
		s.LogError(ctx, err, "Failed to update producer", slog.String("producer_id", producerID))
		return nil, fmt.Errorf("failed to update producer: %w", err)
	}
	s.LogInfo(ctx, "Producer updated", slog.String("producer_id", producerID))
	return producer, nil
}
