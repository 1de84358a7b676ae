package services

import (
	portsrepo "github.com/SscSPs/produce_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.SettlementEventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Producer service first: the others authorize through it
	container.Producer = NewProducerService(repos.ProducerRepo)

	container.LineItem = NewLineItemService(repos.LineItemRepo, container.Producer)
	container.Settlement = NewSettlementService(
		repos.LineItemRepo,
		repos.SettlementRepo,
		container.Producer,
		WithEventPublisher(publisher),
		WithDisplayLocation(cfg.DisplayLocation),
	)
	container.User = NewUserService(repos.UserRepo, repos.ProducerRepo)
	container.Token = NewTokenService(cfg)

	return container
}
