package repositories

import (
	"context"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
)

// ProducerReader defines read operations for producer data
type ProducerReader interface {
	// FindProducerByID retrieves a specific producer by its unique identifier.
	FindProducerByID(ctx context.Context, producerID string) (*domain.Producer, error)

	// ListProducers retrieves a page of producers ordered by name.
	// A nil branchIDs slice means every branch; an empty one matches nothing.
	ListProducers(ctx context.Context, branchIDs []string, limit int, offset int) ([]domain.Producer, error)
}

// ProducerWriter defines write operations for producer data
type ProducerWriter interface {
	// SaveProducer persists a new producer.
	SaveProducer(ctx context.Context, producer domain.Producer) error

	// UpdateProducer updates the mutable fields of an existing producer.
	UpdateProducer(ctx context.Context, producer domain.Producer) error
}

// ProducerRepositoryFacade combines all producer-related repository interfaces
type ProducerRepositoryFacade interface {
	ProducerReader
	ProducerWriter
}
