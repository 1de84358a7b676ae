package services

import (
	"context"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
)

// LineItemReaderSvc defines read operations for the product ledger
type LineItemReaderSvc interface {
	GetLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string) (*domain.LineItem, error)
	ListLineItems(ctx context.Context, caller domain.Caller, producerID string, params dto.ListLineItemsParams) ([]domain.LineItem, error)
}

// LineItemWriterSvc defines write operations for the product ledger.
// Payment status is never changed here; only settlements flip it.
type LineItemWriterSvc interface {
	CreateLineItem(ctx context.Context, caller domain.Caller, producerID string, req dto.CreateLineItemRequest) (*domain.LineItem, error)

	// UpdateLineItem corrects an unsettled item; settled items yield apperrors.ErrConflict.
	UpdateLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string, req dto.UpdateLineItemRequest) (*domain.LineItem, error)

	DeleteLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string) error
}

// LineItemSvcFacade combines all line-item service interfaces
type LineItemSvcFacade interface {
	LineItemReaderSvc
	LineItemWriterSvc
}
