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

type lineItemService struct {
	BaseService
	lineItemRepo portsrepo.LineItemRepositoryFacade
}

// NewLineItemService creates the product ledger service.
func NewLineItemService(repo portsrepo.LineItemRepositoryFacade, authorizer portssvc.ProducerAuthorizerSvc) portssvc.LineItemSvcFacade {
	return &lineItemService{
		BaseService:  BaseService{ProducerAuthorizer: authorizer},
		lineItemRepo: repo,
	}
}

var _ portssvc.LineItemSvcFacade = (*lineItemService)(nil)

// findOwned loads an item and hides items that belong to another producer.
func (s *lineItemService) findOwned(ctx context.Context, producerID, lineItemID string) (*domain.LineItem, error) {
	item, err := s.lineItemRepo.FindLineItemByID(ctx, lineItemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load line item", slog.String("line_item_id", lineItemID))
		}
		return nil, err
	}
	if item.ProducerID != producerID {
		return nil, apperrors.NewNotFoundError("line item " + lineItemID)
	}
	return item, nil
}

func (s *lineItemService) GetLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string) (*domain.LineItem, error) {
	if _, err := s.AuthorizeProducer(ctx, caller, producerID, access.ActionView); err != nil {
		return nil, err
	}
	return s.findOwned(ctx, producerID, lineItemID)
}

func (s *lineItemService) ListLineItems(ctx context.Context, caller domain.Caller, producerID string, params dto.ListLineItemsParams) ([]domain.LineItem, error) {
	if _, err := s.AuthorizeProducer(ctx, caller, producerID, access.ActionView); err != nil {
		return nil, err
	}

	var status *domain.PaymentStatus
	if params.Status != "" {
		st := domain.PaymentStatus(params.Status)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, params.Status)
		}
		status = &st
	}

	items, err := s.lineItemRepo.ListLineItemsByProducer(ctx, producerID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list line items", slog.String("producer_id", producerID))
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	if items == nil {
		items = []domain.LineItem{}
	}
	return items, nil
}

func (s *lineItemService) CreateLineItem(ctx context.Context, caller domain.Caller, producerID string, req dto.CreateLineItemRequest) (*domain.LineItem, error) {
	producer, err := s.AuthorizeProducer(ctx, caller, producerID, access.ActionManageLineItems)
	if err != nil {
		return nil, err
	}
	if !producer.IsActive {
		return nil, fmt.Errorf("%w: producer %s is inactive", apperrors.ErrValidation, producerID)
	}
	if err := validateLineValues(req.Quantity, req.PricePerUnit, req.Unit); err != nil {
		return nil, err
	}

	item := domain.LineItem{
		LineItemID:    uuid.NewString(),
		ProducerID:    producerID,
		Name:          strings.TrimSpace(req.Name),
		Category:      strings.TrimSpace(req.Category),
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		PricePerUnit:  req.PricePerUnit.Round(domain.CurrencyPlaces),
		PaymentStatus: domain.PaymentUnsettled,
		AuditFields:   domain.NewAuditFields(time.Now().UTC(), caller.UserID),
	}
	if err := s.lineItemRepo.SaveLineItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save line item", slog.String("producer_id", producerID))
		return nil, fmt.Errorf("failed to create line item: %w", err)
	}

	s.LogInfo(ctx, "Line item recorded",
		slog.String("line_item_id", item.LineItemID),
		slog.String("producer_id", producerID),
		slog.String("amount", utils.FormatAmount(item.Amount())))
	return &item, nil
}

func (s *lineItemService) UpdateLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string, req dto.UpdateLineItemRequest) (*domain.LineItem, error) {
	if _, err := s.AuthorizeProducer(ctx, caller, producerID, access.ActionManageLineItems); err != nil {
		return nil, err
	}
	item, err := s.findOwned(ctx, producerID, lineItemID)
	if err != nil {
		return nil, err
	}
	if item.IsSettled() {
		return nil, fmt.Errorf("%w: line item %s is settled and can no longer be edited", apperrors.ErrConflict, lineItemID)
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.PricePerUnit != nil {
		item.PricePerUnit = req.PricePerUnit.Round(domain.CurrencyPlaces)
	}
	if err := validateLineValues(item.Quantity, item.PricePerUnit, item.Unit); err != nil {
		return nil, err
	}
	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = caller.UserID

	if err := s.lineItemRepo.UpdateLineItem(ctx, *item); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to update line item", slog.String("line_item_id", lineItemID))
		}
		return nil, fmt.Errorf("failed to update line item: %w", err)
	}
	s.LogInfo(ctx, "Line item updated", slog.String("line_item_id", lineItemID))
	return item, nil
}

func (s *lineItemService) DeleteLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string) error {
	if _, err := s.AuthorizeProducer(ctx, caller, producerID, access.ActionManageLineItems); err != nil {
		return err
	}
	item, err := s.findOwned(ctx, producerID, lineItemID)
	if err != nil {
		return err
	}
	if err := s.lineItemRepo.DeleteLineItem(ctx, lineItemID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete line item", slog.String("line_item_id", lineItemID))
		}
		return fmt.Errorf("failed to delete line item: %w", err)
	}
	s.LogInfo(ctx, "Line item deleted",
		slog.String("line_item_id", lineItemID),
		slog.Bool("was_settled", item.IsSettled()))
	return nil
}
