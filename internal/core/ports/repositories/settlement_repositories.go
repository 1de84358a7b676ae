package repositories

import (
	"context"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
)

// SettlementReader defines read operations for settlement batches
type SettlementReader interface {
	// FindSettlementByID retrieves a batch together with its snapshots.
	FindSettlementByID(ctx context.Context, batchID string) (*domain.SettlementBatch, error)

	// ListSettlementsByProducer retrieves a page of a producer's batches, newest first,
	// using token-based pagination. It returns the batches, a token for the next page, and an error.
	ListSettlementsByProducer(ctx context.Context, producerID string, limit int, nextToken *string) ([]domain.SettlementBatch, *string, error)
}

// SettlementWriter defines write operations for settlement batches
type SettlementWriter interface {
	// RecordSettlement settles the given line items of batch.ProducerID in a single
	// database transaction: it locks the items, checks every one is still unsettled,
	// inserts the batch and one snapshot per item, and flips the items to settled
	// with the batch's proof reference. Either everything is written or nothing is.
	// Amounts, product count and snapshots are computed from the locked rows and
	// returned on the stored batch. Items that are missing or already settled are
	// reported with an *apperrors.ItemsError.
	RecordSettlement(ctx context.Context, batch domain.SettlementBatch, lineItemIDs []string) (*domain.SettlementBatch, error)
}

// SettlementRepositoryFacade combines all settlement repository interfaces
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}
