//go:build integration

package pgsql_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/produce_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/produce_settlement_app/internal/core/settlement"
	"github.com/SscSPs/produce_settlement_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/produce_settlement_app/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

type PgsqlRepositorySuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
}

func (s *PgsqlRepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("settlements"),
		tcpostgres.WithUsername("settlements"),
		tcpostgres.WithPassword("settlements"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(database.RunMigrations(dsn, "file://../../../../migrations", logger))

	s.pool, err = database.NewPgxPool(s.ctx, dsn, true)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
}

func (s *PgsqlRepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.NoError(testcontainers.TerminateContainer(s.container))
	}
}

func (s *PgsqlRepositorySuite) newProducer() domain.Producer {
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.Producer{
		ProducerID:  uuid.NewString(),
		BranchID:    "branch-north",
		Name:        "Ravi Farms",
		IsActive:    true,
		AuditFields: domain.NewAuditFields(now, "admin-1"),
	}
	s.Require().NoError(s.repos.ProducerRepo.SaveProducer(s.ctx, p))
	return p
}

func (s *PgsqlRepositorySuite) newItem(producerID, name string, qty, price int64, offset time.Duration) domain.LineItem {
	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC).Add(offset)
	li := domain.LineItem{
		LineItemID:    uuid.NewString(),
		ProducerID:    producerID,
		Name:          name,
		Quantity:      decimal.NewFromInt(qty),
		Unit:          domain.UnitKilogram,
		PricePerUnit:  decimal.NewFromInt(price),
		PaymentStatus: domain.PaymentUnsettled,
		AuditFields:   domain.NewAuditFields(created, "manager-1"),
	}
	s.Require().NoError(s.repos.LineItemRepo.SaveLineItem(s.ctx, li))
	return li
}

func (s *PgsqlRepositorySuite) batchFor(producerID string) domain.SettlementBatch {
	return domain.SettlementBatch{
		BatchID:       uuid.NewString(),
		ProducerID:    producerID,
		ProofImageRef: "proofs/" + uuid.NewString() + ".jpg",
		CreatedBy:     "manager-1",
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PgsqlRepositorySuite) TestRecordSettlement_PartialSelectionIsAtomic() {
	p := s.newProducer()
	a := s.newItem(p.ProducerID, "Tomatoes", 10, 10, 0)
	b := s.newItem(p.ProducerID, "Onions", 10, 15, time.Minute)
	c := s.newItem(p.ProducerID, "Potatoes", 25, 10, 2*time.Minute)

	stored, err := s.repos.SettlementRepo.RecordSettlement(s.ctx, s.batchFor(p.ProducerID), []string{a.LineItemID, b.LineItemID})
	s.Require().NoError(err)
	s.True(stored.SettledAmount.Equal(decimal.NewFromInt(250)))
	s.True(stored.TotalAmount.Equal(decimal.NewFromInt(500)))

	unsettled := domain.PaymentUnsettled
	remaining, err := s.repos.LineItemRepo.ListLineItemsByProducer(s.ctx, p.ProducerID, &unsettled)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal(c.LineItemID, remaining[0].LineItemID)

	settledA, err := s.repos.LineItemRepo.FindLineItemByID(s.ctx, a.LineItemID)
	s.Require().NoError(err)
	s.Equal(domain.PaymentSettled, settledA.PaymentStatus)
	s.Require().NotNil(settledA.SettlementBatchID)
	s.Equal(stored.BatchID, *settledA.SettlementBatchID)

	fetched, err := s.repos.SettlementRepo.FindSettlementByID(s.ctx, stored.BatchID)
	s.Require().NoError(err)
	s.Len(fetched.Snapshots, 2)
	s.Equal(2, fetched.ProductCount)
}

func (s *PgsqlRepositorySuite) TestRecordSettlement_AlreadySettledRollsBack() {
	p := s.newProducer()
	a := s.newItem(p.ProducerID, "Tomatoes", 10, 20, 0)
	b := s.newItem(p.ProducerID, "Onions", 5, 30, time.Minute)

	_, err := s.repos.SettlementRepo.RecordSettlement(s.ctx, s.batchFor(p.ProducerID), []string{a.LineItemID})
	s.Require().NoError(err)

	failed := s.batchFor(p.ProducerID)
	_, err = s.repos.SettlementRepo.RecordSettlement(s.ctx, failed, []string{a.LineItemID, b.LineItemID})
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)

	var itemsErr *apperrors.ItemsError
	s.Require().True(errors.As(err, &itemsErr))
	s.Equal([]string{a.LineItemID}, itemsErr.ItemIDs)

	stillOpen, err := s.repos.LineItemRepo.FindLineItemByID(s.ctx, b.LineItemID)
	s.Require().NoError(err)
	s.Equal(domain.PaymentUnsettled, stillOpen.PaymentStatus)

	_, err = s.repos.SettlementRepo.FindSettlementByID(s.ctx, failed.BatchID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgsqlRepositorySuite) TestRecordSettlement_ConcurrentSettlesOnlyOneWins() {
	p := s.newProducer()
	a := s.newItem(p.ProducerID, "Tomatoes", 10, 20, 0)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.repos.SettlementRepo.RecordSettlement(s.ctx, s.batchFor(p.ProducerID), []string{a.LineItemID})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, settlement.ErrItemAlreadySettled)
	}
	s.Equal(1, succeeded)
}

func (s *PgsqlRepositorySuite) TestDeleteSettledItemKeepsSnapshot() {
	p := s.newProducer()
	a := s.newItem(p.ProducerID, "Tomatoes", 10, 20, 0)

	stored, err := s.repos.SettlementRepo.RecordSettlement(s.ctx, s.batchFor(p.ProducerID), []string{a.LineItemID})
	s.Require().NoError(err)

	s.Require().NoError(s.repos.LineItemRepo.DeleteLineItem(s.ctx, a.LineItemID))

	fetched, err := s.repos.SettlementRepo.FindSettlementByID(s.ctx, stored.BatchID)
	s.Require().NoError(err)
	s.Require().Len(fetched.Snapshots, 1)
	s.Nil(fetched.Snapshots[0].LineItemID)
	s.Equal("Tomatoes", fetched.Snapshots[0].ProductName)
	s.True(fetched.Snapshots[0].TotalAmount.Equal(decimal.NewFromInt(200)))
}

func (s *PgsqlRepositorySuite) TestUpdateSettledItemConflicts() {
	p := s.newProducer()
	a := s.newItem(p.ProducerID, "Tomatoes", 10, 20, 0)
	_, err := s.repos.SettlementRepo.RecordSettlement(s.ctx, s.batchFor(p.ProducerID), []string{a.LineItemID})
	s.Require().NoError(err)

	a.PricePerUnit = decimal.NewFromInt(25)
	err = s.repos.LineItemRepo.UpdateLineItem(s.ctx, a)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *PgsqlRepositorySuite) TestListSettlementsPaginates() {
	p := s.newProducer()
	for i := 0; i < 3; i++ {
		li := s.newItem(p.ProducerID, "Tomatoes", 1, int64(10+i), time.Duration(i)*time.Minute)
		batch := s.batchFor(p.ProducerID)
		batch.SettlementDate = time.Date(2026, 2, 10+i, 0, 0, 0, 0, time.UTC)
		_, err := s.repos.SettlementRepo.RecordSettlement(s.ctx, batch, []string{li.LineItemID})
		s.Require().NoError(err)
	}

	first, next, err := s.repos.SettlementRepo.ListSettlementsByProducer(s.ctx, p.ProducerID, 2, nil)
	s.Require().NoError(err)
	s.Require().Len(first, 2)
	s.Require().NotNil(next)
	s.Equal(12, first[0].SettlementDate.Day())

	second, next, err := s.repos.SettlementRepo.ListSettlementsByProducer(s.ctx, p.ProducerID, 2, next)
	s.Require().NoError(err)
	s.Require().Len(second, 1)
	s.Nil(next)
	s.Equal(10, second[0].SettlementDate.Day())
}

func (s *PgsqlRepositorySuite) TestUsernameIsUnique() {
	now := time.Now().UTC()
	u := domain.User{
		UserID:       uuid.NewString(),
		Username:     "manager-" + uuid.NewString()[:8],
		Name:         "Branch Manager",
		PasswordHash: "hash",
		Role:         domain.RoleBranchManager,
		BranchIDs:    []string{"branch-north"},
		AuditFields:  domain.NewAuditFields(now, "admin-1"),
	}
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, u))

	found, err := s.repos.UserRepo.FindUserByUsername(s.ctx, u.Username)
	s.Require().NoError(err)
	s.Equal([]string{"branch-north"}, found.BranchIDs)

	dup := u
	dup.UserID = uuid.NewString()
	s.ErrorIs(s.repos.UserRepo.SaveUser(s.ctx, dup), apperrors.ErrDuplicate)
}

func TestPgsqlRepositorySuite(t *testing.T) {
	suite.Run(t, new(PgsqlRepositorySuite))
}
