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
	"github.com/SscSPs/produce_settlement_app/internal/core/settlement"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
	"github.com/SscSPs/produce_settlement_app/internal/platform/metrics"
	"github.com/SscSPs/produce_settlement_app/internal/utils"
	"github.com/google/uuid"
)

type settlementService struct {
	BaseService
	lineItemRepo   portsrepo.LineItemReader
	settlementRepo portsrepo.SettlementRepositoryFacade
	publisher      portssvc.SettlementEventPublisher
	location       *time.Location
	now            func() time.Time
}

// SettlementOption is a functional option for configuring the settlement service
type SettlementOption func(*settlementService)

// WithEventPublisher sets where settlement.recorded events go.
func WithEventPublisher(p portssvc.SettlementEventPublisher) SettlementOption {
	return func(s *settlementService) {
		s.publisher = p
	}
}

// WithDisplayLocation sets the time zone history views bucket dates in.
func WithDisplayLocation(loc *time.Location) SettlementOption {
	return func(s *settlementService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) SettlementOption {
	return func(s *settlementService) {
		s.now = now
	}
}

// NewSettlementService creates the settlement service with the provided options
func NewSettlementService(
	lineItemRepo portsrepo.LineItemReader,
	settlementRepo portsrepo.SettlementRepositoryFacade,
	authorizer portssvc.ProducerAuthorizerSvc,
	options ...SettlementOption,
) portssvc.SettlementSvcFacade {
	svc := &settlementService{
		BaseService:    BaseService{ProducerAuthorizer: authorizer},
		lineItemRepo:   lineItemRepo,
		settlementRepo: settlementRepo,
		location:       time.UTC,
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

func (s *settlementService) loadLedger(ctx context.Context, producerID string) ([]domain.LineItem, error) {
	items, err := s.lineItemRepo.ListLineItemsByProducer(ctx, producerID, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load producer ledger", slog.String("producer_id", producerID))
		return nil, fmt.Errorf("failed to load line items for producer %s: %w", producerID, err)
	}
	return items, nil
}

func (s *settlementService) summary(ctx context.Context, producerID string) (*dto.SettlementSummaryResponse, error) {
	items, err := s.loadLedger(ctx, producerID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToSettlementSummaryResponse(producerID, settlement.Partition(items))
	return &resp, nil
}

func (s *settlementService) GetSummary(ctx context.Context, caller domain.Caller, producerID string) (*dto.SettlementSummaryResponse, error) {
	if _, err := s.AuthorizeProducer(ctx, caller, producerID, access.ActionView); err != nil {
		return nil, err
	}
	return s.summary(ctx, producerID)
}

func (s *settlementService) PreviewSettlement(ctx context.Context, caller domain.Caller, producerID string, req dto.PreviewSettlementRequest) (*domain.SettlementCandidate, error) {
	if _, err := s.AuthorizeProducer(ctx, caller, producerID, access.ActionSettle); err != nil {
		return nil, err
	}
	items, err := s.loadLedger(ctx, producerID)
	if err != nil {
		return nil, err
	}
	selected, err := settlement.Select(items, req.Selection())
	if err != nil {
		return nil, err
	}
	candidate := settlement.BuildCandidate(producerID, selected)
	if !candidate.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, settlement.ErrNonPositiveAmount)
	}
	return &candidate, nil
}

func (s *settlementService) SettleLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string, req dto.SettleLineItemRequest) (*dto.SettleResponse, error) {
	return s.SettleItems(ctx, caller, producerID, req.ToSettleItemsRequest(lineItemID))
}

// SettleItems validates the selection against the current ledger and, only if
// every precondition holds, hands the item ids to the repository which
// re-checks them under lock and commits everything in one transaction.
func (s *settlementService) SettleItems(ctx context.Context, caller domain.Caller, producerID string, req dto.SettleItemsRequest) (*dto.SettleResponse, error) {
	logger := s.GetLogger(ctx).With(slog.String("producer_id", producerID))

	if _, err := s.AuthorizeProducer(ctx, caller, producerID, access.ActionSettle); err != nil {
		metrics.RecordSettlementFailure(failureReason(err))
		return nil, err
	}

	items, err := s.loadLedger(ctx, producerID)
	if err != nil {
		metrics.RecordSettlementFailure(failureReason(err))
		return nil, err
	}
	selected, err := settlement.Select(items, req.Selection())
	if err != nil {
		logger.Warn("Settlement selection rejected", slog.String("error", err.Error()))
		metrics.RecordSettlementFailure(failureReason(err))
		return nil, err
	}
	proof := strings.TrimSpace(req.ProofImageRef)
	if err := settlement.ValidateCandidate(settlement.BuildCandidate(producerID, selected), proof); err != nil {
		logger.Warn("Settlement preconditions failed", slog.String("error", err.Error()))
		metrics.RecordSettlementFailure(failureReason(err))
		return nil, err
	}

	now := s.now()
	batch := domain.SettlementBatch{
		BatchID:          uuid.NewString(),
		ProducerID:       producerID,
		ProofImageRef:    proof,
		SettlementDate:   now,
		SettlementMethod: strings.TrimSpace(req.SettlementMethod),
		Notes:            strings.TrimSpace(req.Notes),
		CreatedBy:        caller.UserID,
		CreatedAt:        now,
	}
	if req.SettlementDate != nil {
		batch.SettlementDate = req.SettlementDate.UTC()
	}

	ids := make([]string, len(selected))
	for i, item := range selected {
		ids[i] = item.LineItemID
	}

	stored, err := s.settlementRepo.RecordSettlement(ctx, batch, ids)
	if err != nil {
		var itemsErr *apperrors.ItemsError
		if errors.As(err, &itemsErr) {
			logger.Warn("Settlement rejected at commit", slog.String("error", err.Error()), slog.Any("item_ids", itemsErr.ItemIDs))
		} else {
			logger.Error("Failed to record settlement", slog.String("error", err.Error()), slog.String("batch_id", batch.BatchID))
		}
		metrics.RecordSettlementFailure(failureReason(err))
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}

	metrics.RecordSettlement(stored.SettledAmount, stored.ProductCount)
	logger.Info("Settlement recorded",
		slog.String("batch_id", stored.BatchID),
		slog.Int("product_count", stored.ProductCount),
		slog.String("settled_amount", utils.FormatAmount(stored.SettledAmount)),
		slog.String("outstanding_before", utils.FormatAmount(stored.TotalAmount)))

	if s.publisher != nil {
		if err := s.publisher.PublishSettlementRecorded(ctx, *stored); err != nil {
			logger.Error("Failed to publish settlement event", slog.String("error", err.Error()), slog.String("batch_id", stored.BatchID))
		}
	}

	summary, err := s.summary(ctx, producerID)
	if err != nil {
		return nil, fmt.Errorf("settlement %s recorded but summary refresh failed: %w", stored.BatchID, err)
	}
	return &dto.SettleResponse{
		Settlement: dto.ToSettlementBatchResponse(stored),
		Summary:    *summary,
	}, nil
}

func (s *settlementService) ListSettlements(ctx context.Context, caller domain.Caller, producerID string, params dto.ListSettlementsParams) (*dto.ListSettlementsResponse, error) {
	if _, err := s.AuthorizeProducer(ctx, caller, producerID, access.ActionView); err != nil {
		return nil, err
	}
	batches, next, err := s.settlementRepo.ListSettlementsByProducer(ctx, producerID, params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list settlements", slog.String("producer_id", producerID))
		}
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	resp := &dto.ListSettlementsResponse{
		Settlements: make([]dto.SettlementBatchResponse, len(batches)),
		NextToken:   next,
	}
	for i := range batches {
		resp.Settlements[i] = dto.ToSettlementBatchResponse(&batches[i])
	}
	return resp, nil
}

func (s *settlementService) GetSettlement(ctx context.Context, caller domain.Caller, batchID string) (*domain.SettlementBatch, error) {
	batch, err := s.settlementRepo.FindSettlementByID(ctx, batchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load settlement", slog.String("batch_id", batchID))
		}
		return nil, err
	}
	if _, err := s.AuthorizeProducer(ctx, caller, batch.ProducerID, access.ActionView); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			return nil, apperrors.NewNotFoundError("settlement " + batchID)
		}
		return nil, err
	}
	return batch, nil
}

func (s *settlementService) settledItems(ctx context.Context, caller domain.Caller, producerID string) ([]domain.LineItem, error) {
	if _, err := s.AuthorizeProducer(ctx, caller, producerID, access.ActionView); err != nil {
		return nil, err
	}
	items, err := s.loadLedger(ctx, producerID)
	if err != nil {
		return nil, err
	}
	return settlement.Partition(items).Settled, nil
}

func (s *settlementService) GetReceiptGroups(ctx context.Context, caller domain.Caller, producerID string) ([]dto.ReceiptGroupResponse, error) {
	settled, err := s.settledItems(ctx, caller, producerID)
	if err != nil {
		return nil, err
	}
	return dto.ToReceiptGroupResponses(settlement.GroupSettledByBatchKey(settled)), nil
}

func (s *settlementService) GetDailyHistory(ctx context.Context, caller domain.Caller, producerID string, params dto.HistoryParams) (*dto.DailyHistoryResponse, error) {
	settled, err := s.settledItems(ctx, caller, producerID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToDailyHistoryResponse(producerID, settlement.GroupByCalendarDate(settled, s.location), params.ExpandedKeys())
	return &resp, nil
}

func (s *settlementService) GetMonthlyHistory(ctx context.Context, caller domain.Caller, producerID string, params dto.HistoryParams) (*dto.MonthlyHistoryResponse, error) {
	if _, err := s.AuthorizeProducer(ctx, caller, producerID, access.ActionView); err != nil {
		return nil, err
	}
	items, err := s.loadLedger(ctx, producerID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToMonthlyHistoryResponse(producerID, settlement.GroupByMonth(items, s.location), params.ExpandedKeys())
	return &resp, nil
}

// failureReason maps a settlement error to a low-cardinality metrics label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, settlement.ErrProofRequired):
		return "proof_required"
	case errors.Is(err, settlement.ErrEmptySelection):
		return "empty_selection"
	case errors.Is(err, settlement.ErrNonPositiveAmount):
		return "non_positive_amount"
	case errors.Is(err, settlement.ErrItemAlreadySettled):
		return "already_settled"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrForbidden):
		return "forbidden"
	}
	return "internal"
}
