package services

import (
	"context"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
)

// SettlementReaderSvc defines read operations around a producer's settlements
type SettlementReaderSvc interface {
	// GetSummary partitions the producer's ledger and totals both sides.
	GetSummary(ctx context.Context, caller domain.Caller, producerID string) (*dto.SettlementSummaryResponse, error)

	// PreviewSettlement builds the candidate for a selection without writing anything.
	PreviewSettlement(ctx context.Context, caller domain.Caller, producerID string, req dto.PreviewSettlementRequest) (*domain.SettlementCandidate, error)

	ListSettlements(ctx context.Context, caller domain.Caller, producerID string, params dto.ListSettlementsParams) (*dto.ListSettlementsResponse, error)
	GetSettlement(ctx context.Context, caller domain.Caller, batchID string) (*domain.SettlementBatch, error)

	// GetReceiptGroups groups the producer's settled items by the receipt they were paid under.
	GetReceiptGroups(ctx context.Context, caller domain.Caller, producerID string) ([]dto.ReceiptGroupResponse, error)
}

// SettlementRecorderSvc records settlements
type SettlementRecorderSvc interface {
	// SettleItems settles a subset of, or all, the producer's unsettled items.
	SettleItems(ctx context.Context, caller domain.Caller, producerID string, req dto.SettleItemsRequest) (*dto.SettleResponse, error)

	// SettleLineItem settles exactly one item.
	SettleLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string, req dto.SettleLineItemRequest) (*dto.SettleResponse, error)
}

// SettlementHistorySvc defines the grouped history views
type SettlementHistorySvc interface {
	GetDailyHistory(ctx context.Context, caller domain.Caller, producerID string, params dto.HistoryParams) (*dto.DailyHistoryResponse, error)
	GetMonthlyHistory(ctx context.Context, caller domain.Caller, producerID string, params dto.HistoryParams) (*dto.MonthlyHistoryResponse, error)
}

// SettlementSvcFacade combines all settlement service interfaces
type SettlementSvcFacade interface {
	SettlementReaderSvc
	SettlementRecorderSvc
	SettlementHistorySvc
}

// SettlementEventPublisher announces recorded settlements to other systems.
type SettlementEventPublisher interface {
	PublishSettlementRecorded(ctx context.Context, batch domain.SettlementBatch) error
}
