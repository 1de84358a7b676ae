package pgsql

import (
	portsrepo "github.com/SscSPs/produce_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProducerRepo:   newPgxProducerRepository(dbPool),
		LineItemRepo:   newPgxLineItemRepository(dbPool),
		SettlementRepo: newPgxSettlementRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
