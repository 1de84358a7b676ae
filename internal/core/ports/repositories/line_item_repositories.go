package repositories

import (
	"context"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
)

// LineItemReader defines read operations for the product ledger
type LineItemReader interface {
	// FindLineItemByID retrieves a specific line item by its unique identifier.
	FindLineItemByID(ctx context.Context, lineItemID string) (*domain.LineItem, error)

	// ListLineItemsByProducer retrieves a producer's line items in the order they were recorded.
	// When status is non-nil only items with that payment status are returned.
	ListLineItemsByProducer(ctx context.Context, producerID string, status *domain.PaymentStatus) ([]domain.LineItem, error)
}

// LineItemWriter defines write operations for the product ledger
type LineItemWriter interface {
	// SaveLineItem persists a new line item.
	SaveLineItem(ctx context.Context, item domain.LineItem) error

	// UpdateLineItem updates an unsettled line item. Settled items are immutable
	// and yield apperrors.ErrConflict.
	UpdateLineItem(ctx context.Context, item domain.LineItem) error

	// DeleteLineItem removes a line item. Settlement snapshots keep their copy.
	DeleteLineItem(ctx context.Context, lineItemID string) error
}

// LineItemRepositoryFacade combines all line-item repository interfaces
type LineItemRepositoryFacade interface {
	LineItemReader
	LineItemWriter
}
