package services

import (
	"context"

	"github.com/SscSPs/produce_settlement_app/internal/core/access"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
)

// ProducerReaderSvc defines read operations for producers
type ProducerReaderSvc interface {
	// GetProducer retrieves a producer the caller may view.
	GetProducer(ctx context.Context, caller domain.Caller, producerID string) (*domain.Producer, error)

	// ListProducers retrieves the producers visible to the caller.
	ListProducers(ctx context.Context, caller domain.Caller, params dto.ListProducersParams) ([]domain.Producer, error)
}

// ProducerWriterSvc defines write operations for producers
type ProducerWriterSvc interface {
	CreateProducer(ctx context.Context, caller domain.Caller, req dto.CreateProducerRequest) (*domain.Producer, error)
	UpdateProducer(ctx context.Context, caller domain.Caller, producerID string, req dto.UpdateProducerRequest) (*domain.Producer, error)
}

// ProducerAuthorizerSvc loads a producer and checks the caller may perform an action on it.
// It returns apperrors.ErrNotFound for unknown producers and apperrors.ErrForbidden otherwise.
type ProducerAuthorizerSvc interface {
	AuthorizeProducerAction(ctx context.Context, caller domain.Caller, producerID string, action access.Action) (*domain.Producer, error)
}

// ProducerSvcFacade combines all producer-related service interfaces
type ProducerSvcFacade interface {
	ProducerReaderSvc
	ProducerWriterSvc
	ProducerAuthorizerSvc
}
