package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/produce_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/produce_settlement_app/internal/core/settlement"
	"github.com/SscSPs/produce_settlement_app/internal/repositories/database/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SQLiteStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *sqlite.Store
	repos portsrepo.RepositoryProvider
	clock time.Time
}

func (s *SQLiteStoreSuite) SetupTest() {
	s.ctx = context.Background()
	store, err := sqlite.New(filepath.Join(s.T().TempDir(), "data", "settlements.db"))
	s.Require().NoError(err)
	s.store = store
	s.repos = sqlite.NewRepositoryProvider(store)
	s.clock = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
}

func (s *SQLiteStoreSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func (s *SQLiteStoreSuite) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *SQLiteStoreSuite) newProducer(branch string) domain.Producer {
	p := domain.Producer{
		ProducerID:  uuid.NewString(),
		BranchID:    branch,
		Name:        "Producer " + branch,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(s.tick(), "admin-1"),
	}
	s.Require().NoError(s.repos.ProducerRepo.SaveProducer(s.ctx, p))
	return p
}

func (s *SQLiteStoreSuite) newItem(producerID, name, qty, price string) domain.LineItem {
	li := domain.LineItem{
		LineItemID:    uuid.NewString(),
		ProducerID:    producerID,
		Name:          name,
		Quantity:      decimal.RequireFromString(qty),
		Unit:          domain.UnitKilogram,
		PricePerUnit:  decimal.RequireFromString(price),
		PaymentStatus: domain.PaymentUnsettled,
		AuditFields:   domain.NewAuditFields(s.tick(), "manager-1"),
	}
	s.Require().NoError(s.repos.LineItemRepo.SaveLineItem(s.ctx, li))
	return li
}

func (s *SQLiteStoreSuite) batchFor(producerID string) domain.SettlementBatch {
	return domain.SettlementBatch{
		BatchID:       uuid.NewString(),
		ProducerID:    producerID,
		ProofImageRef: "proofs/receipt-" + uuid.NewString() + ".jpg",
		CreatedBy:     "manager-1",
		CreatedAt:     s.tick(),
	}
}

func (s *SQLiteStoreSuite) TestLineItemRoundTripKeepsDecimals() {
	p := s.newProducer("north")
	li := s.newItem(p.ProducerID, "Tomatoes", "12.5", "19.99")

	found, err := s.repos.LineItemRepo.FindLineItemByID(s.ctx, li.LineItemID)
	s.Require().NoError(err)
	s.True(found.Quantity.Equal(decimal.RequireFromString("12.5")))
	s.True(found.PricePerUnit.Equal(decimal.RequireFromString("19.99")))
	s.Equal("249.88", found.Amount().StringFixed(2))
	s.True(li.CreatedAt.Equal(found.CreatedAt))
	s.Nil(found.ProofImageRef)
}

func (s *SQLiteStoreSuite) TestRecordSettlement_FullSettlement() {
	p := s.newProducer("north")
	li := s.newItem(p.ProducerID, "Tomatoes", "10", "20")

	stored, err := s.repos.SettlementRepo.RecordSettlement(s.ctx, s.batchFor(p.ProducerID), []string{li.LineItemID})
	s.Require().NoError(err)
	s.Equal("200.00", stored.SettledAmount.StringFixed(2))
	s.Equal("200.00", stored.TotalAmount.StringFixed(2))

	found, err := s.repos.LineItemRepo.FindLineItemByID(s.ctx, li.LineItemID)
	s.Require().NoError(err)
	s.Equal(domain.PaymentSettled, found.PaymentStatus)
	s.Require().NotNil(found.ProofImageRef)
	s.Equal(stored.ProofImageRef, *found.ProofImageRef)

	fetched, err := s.repos.SettlementRepo.FindSettlementByID(s.ctx, stored.BatchID)
	s.Require().NoError(err)
	s.Require().Len(fetched.Snapshots, 1)
	s.Equal("Tomatoes", fetched.Snapshots[0].ProductName)
	s.Equal(1, fetched.ProductCount)
}

func (s *SQLiteStoreSuite) TestRecordSettlement_PartialLeavesRestUnsettled() {
	p := s.newProducer("north")
	a := s.newItem(p.ProducerID, "Tomatoes", "10", "10")
	b := s.newItem(p.ProducerID, "Onions", "10", "15")
	c := s.newItem(p.ProducerID, "Potatoes", "25", "10")

	stored, err := s.repos.SettlementRepo.RecordSettlement(s.ctx, s.batchFor(p.ProducerID), []string{a.LineItemID, b.LineItemID})
	s.Require().NoError(err)
	s.Equal("250.00", stored.SettledAmount.StringFixed(2))
	s.Equal("500.00", stored.TotalAmount.StringFixed(2))

	unsettled := domain.PaymentUnsettled
	remaining, err := s.repos.LineItemRepo.ListLineItemsByProducer(s.ctx, p.ProducerID, &unsettled)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal(c.LineItemID, remaining[0].LineItemID)
}

func (s *SQLiteStoreSuite) TestRecordSettlement_ConflictWritesNothing() {
	p := s.newProducer("north")
	a := s.newItem(p.ProducerID, "Tomatoes", "10", "20")
	b := s.newItem(p.ProducerID, "Onions", "5", "30")

	_, err := s.repos.SettlementRepo.RecordSettlement(s.ctx, s.batchFor(p.ProducerID), []string{a.LineItemID})
	s.Require().NoError(err)

	failed := s.batchFor(p.ProducerID)
	_, err = s.repos.SettlementRepo.RecordSettlement(s.ctx, failed, []string{a.LineItemID, b.LineItemID})
	s.Require().Error(err)
	s.ErrorIs(err, settlement.ErrItemAlreadySettled)

	var itemsErr *apperrors.ItemsError
	s.Require().True(errors.As(err, &itemsErr))
	s.Equal([]string{a.LineItemID}, itemsErr.ItemIDs)

	stillOpen, err := s.repos.LineItemRepo.FindLineItemByID(s.ctx, b.LineItemID)
	s.Require().NoError(err)
	s.Equal(domain.PaymentUnsettled, stillOpen.PaymentStatus)

	_, err = s.repos.SettlementRepo.FindSettlementByID(s.ctx, failed.BatchID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SQLiteStoreSuite) TestRecordSettlement_ConcurrentSettlementsOneWins() {
	p := s.newProducer("north")
	li := s.newItem(p.ProducerID, "Tomatoes", "10", "20")
	batches := []domain.SettlementBatch{s.batchFor(p.ProducerID), s.batchFor(p.ProducerID)}

	errs := make([]error, len(batches))
	var wg sync.WaitGroup
	for i, b := range batches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.repos.SettlementRepo.RecordSettlement(s.ctx, b, []string{li.LineItemID})
		}()
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var itemsErr *apperrors.ItemsError
		s.Require().True(errors.As(err, &itemsErr), "unexpected error: %v", err)
		s.Equal([]string{li.LineItemID}, itemsErr.ItemIDs)
		s.ErrorIs(err, apperrors.ErrConflict)
	}
	s.Equal(1, wins)

	batchesPage, _, err := s.repos.SettlementRepo.ListSettlementsByProducer(s.ctx, p.ProducerID, 10, nil)
	s.Require().NoError(err)
	s.Len(batchesPage, 1)
}

func (s *SQLiteStoreSuite) TestRecordSettlement_OtherProducersItemIsNotFound() {
	p := s.newProducer("north")
	other := s.newProducer("south")
	foreign := s.newItem(other.ProducerID, "Tomatoes", "10", "20")
	s.newItem(p.ProducerID, "Onions", "5", "30")

	_, err := s.repos.SettlementRepo.RecordSettlement(s.ctx, s.batchFor(p.ProducerID), []string{foreign.LineItemID})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SQLiteStoreSuite) TestRecordSettlement_MissingProofRejected() {
	p := s.newProducer("north")
	a := s.newItem(p.ProducerID, "Tomatoes", "10", "20")

	batch := s.batchFor(p.ProducerID)
	batch.ProofImageRef = ""
	_, err := s.repos.SettlementRepo.RecordSettlement(s.ctx, batch, []string{a.LineItemID})
	s.ErrorIs(err, settlement.ErrProofRequired)

	found, err := s.repos.LineItemRepo.FindLineItemByID(s.ctx, a.LineItemID)
	s.Require().NoError(err)
	s.Equal(domain.PaymentUnsettled, found.PaymentStatus)
}

func (s *SQLiteStoreSuite) TestDeleteSettledItemKeepsSnapshot() {
	p := s.newProducer("north")
	a := s.newItem(p.ProducerID, "Tomatoes", "10", "20")
	stored, err := s.repos.SettlementRepo.RecordSettlement(s.ctx, s.batchFor(p.ProducerID), []string{a.LineItemID})
	s.Require().NoError(err)

	s.Require().NoError(s.repos.LineItemRepo.DeleteLineItem(s.ctx, a.LineItemID))
	_, err = s.repos.LineItemRepo.FindLineItemByID(s.ctx, a.LineItemID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	fetched, err := s.repos.SettlementRepo.FindSettlementByID(s.ctx, stored.BatchID)
	s.Require().NoError(err)
	s.Require().Len(fetched.Snapshots, 1)
	s.Nil(fetched.Snapshots[0].LineItemID)
	s.Equal("200.00", fetched.Snapshots[0].TotalAmount.StringFixed(2))
}

func (s *SQLiteStoreSuite) TestUpdateLineItem() {
	p := s.newProducer("north")
	a := s.newItem(p.ProducerID, "Tomatoes", "10", "20")

	a.PricePerUnit = decimal.RequireFromString("22.50")
	a.LastUpdatedAt = s.tick()
	s.Require().NoError(s.repos.LineItemRepo.UpdateLineItem(s.ctx, a))

	found, err := s.repos.LineItemRepo.FindLineItemByID(s.ctx, a.LineItemID)
	s.Require().NoError(err)
	s.Equal("225.00", found.Amount().StringFixed(2))

	_, err = s.repos.SettlementRepo.RecordSettlement(s.ctx, s.batchFor(p.ProducerID), []string{a.LineItemID})
	s.Require().NoError(err)

	a.PricePerUnit = decimal.RequireFromString("1")
	s.ErrorIs(s.repos.LineItemRepo.UpdateLineItem(s.ctx, a), apperrors.ErrConflict)
}

func (s *SQLiteStoreSuite) TestListSettlementsPaginates() {
	p := s.newProducer("north")
	for i := 0; i < 3; i++ {
		li := s.newItem(p.ProducerID, "Tomatoes", "1", "10")
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
	s.Equal(11, first[1].SettlementDate.Day())

	second, next, err := s.repos.SettlementRepo.ListSettlementsByProducer(s.ctx, p.ProducerID, 2, next)
	s.Require().NoError(err)
	s.Require().Len(second, 1)
	s.Nil(next)
	s.Equal(10, second[0].SettlementDate.Day())

	bad := "%%%"
	_, _, err = s.repos.SettlementRepo.ListSettlementsByProducer(s.ctx, p.ProducerID, 2, &bad)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SQLiteStoreSuite) TestListProducersByBranch() {
	s.newProducer("north")
	s.newProducer("south")
	s.newProducer("east")

	all, err := s.repos.ProducerRepo.ListProducers(s.ctx, nil, 10, 0)
	s.Require().NoError(err)
	s.Len(all, 3)

	scoped, err := s.repos.ProducerRepo.ListProducers(s.ctx, []string{"north", "east"}, 10, 0)
	s.Require().NoError(err)
	s.Len(scoped, 2)

	none, err := s.repos.ProducerRepo.ListProducers(s.ctx, []string{}, 10, 0)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *SQLiteStoreSuite) TestUsers() {
	u := domain.User{
		UserID:       uuid.NewString(),
		Username:     "north-manager",
		Name:         "North Manager",
		PasswordHash: "hash",
		Role:         domain.RoleBranchManager,
		BranchIDs:    []string{"north", "east"},
		AuditFields:  domain.NewAuditFields(s.tick(), "admin-1"),
	}
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, u))

	found, err := s.repos.UserRepo.FindUserByUsername(s.ctx, "north-manager")
	s.Require().NoError(err)
	s.Equal(u.UserID, found.UserID)
	s.Equal([]string{"north", "east"}, found.BranchIDs)
	s.Equal(domain.RoleBranchManager, found.Role)

	dup := u
	dup.UserID = uuid.NewString()
	s.ErrorIs(s.repos.UserRepo.SaveUser(s.ctx, dup), apperrors.ErrDuplicate)

	_, err = s.repos.UserRepo.FindUserByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}
