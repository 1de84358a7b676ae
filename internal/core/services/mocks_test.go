package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockProducerRepository is a mock type for the ProducerRepositoryFacade interface
type MockProducerRepository struct {
	mock.Mock
}

func (m *MockProducerRepository) FindProducerByID(ctx context.Context, producerID string) (*domain.Producer, error) {
	args := m.Called(ctx, producerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Producer), args.Error(1)
}

func (m *MockProducerRepository) ListProducers(ctx context.Context, branchIDs []string, limit int, offset int) ([]domain.Producer, error) {
	args := m.Called(ctx, branchIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Producer), args.Error(1)
}

func (m *MockProducerRepository) SaveProducer(ctx context.Context, producer domain.Producer) error {
	return m.Called(ctx, producer).Error(0)
}

func (m *MockProducerRepository) UpdateProducer(ctx context.Context, producer domain.Producer) error {
	return m.Called(ctx, producer).Error(0)
}

// MockLineItemRepository is a mock type for the LineItemRepositoryFacade interface
type MockLineItemRepository struct {
	mock.Mock
}

func (m *MockLineItemRepository) FindLineItemByID(ctx context.Context, lineItemID string) (*domain.LineItem, error) {
	args := m.Called(ctx, lineItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}

func (m *MockLineItemRepository) ListLineItemsByProducer(ctx context.Context, producerID string, status *domain.PaymentStatus) ([]domain.LineItem, error) {
	args := m.Called(ctx, producerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockLineItemRepository) SaveLineItem(ctx context.Context, item domain.LineItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockLineItemRepository) UpdateLineItem(ctx context.Context, item domain.LineItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockLineItemRepository) DeleteLineItem(ctx context.Context, lineItemID string) error {
	return m.Called(ctx, lineItemID).Error(0)
}

// MockSettlementRepository is a mock type for the SettlementRepositoryFacade interface
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) FindSettlementByID(ctx context.Context, batchID string) (*domain.SettlementBatch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementBatch), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsByProducer(ctx context.Context, producerID string, limit int, nextToken *string) ([]domain.SettlementBatch, *string, error) {
	args := m.Called(ctx, producerID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.SettlementBatch), next, args.Error(2)
}

func (m *MockSettlementRepository) RecordSettlement(ctx context.Context, batch domain.SettlementBatch, lineItemIDs []string) (*domain.SettlementBatch, error) {
	args := m.Called(ctx, batch, lineItemIDs)
	if fn, ok := args.Get(0).(func(context.Context, domain.SettlementBatch, []string) *domain.SettlementBatch); ok {
		return fn(ctx, batch, lineItemIDs), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementBatch), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// MockPublisher is a mock type for the SettlementEventPublisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishSettlementRecorded(ctx context.Context, batch domain.SettlementBatch) error {
	return m.Called(ctx, batch).Error(0)
}

// --- fixtures ---

var fixedNow = time.Date(2026, 3, 12, 10, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func producerFixture(id, branchID string) *domain.Producer {
	return &domain.Producer{
		ProducerID:  id,
		BranchID:    branchID,
		Name:        "Ravi Farms",
		IsActive:    true,
		AuditFields: domain.NewAuditFields(fixedNow, "admin-1"),
	}
}

func lineItemFixture(id, producerID, name, qty, price string, status domain.PaymentStatus) domain.LineItem {
	return domain.LineItem{
		LineItemID:    id,
		ProducerID:    producerID,
		Name:          name,
		Quantity:      dec(qty),
		Unit:          domain.UnitKilogram,
		PricePerUnit:  dec(price),
		PaymentStatus: status,
		AuditFields:   domain.NewAuditFields(fixedNow, "manager-1"),
	}
}

func adminCaller() domain.Caller {
	return domain.Caller{UserID: "admin-1", Role: domain.RoleAdmin}
}

func managerCaller(branches ...string) domain.Caller {
	return domain.Caller{UserID: "manager-1", Role: domain.RoleBranchManager, BranchIDs: branches}
}

func producerCaller(producerID string) domain.Caller {
	return domain.Caller{UserID: "farmer-1", Role: domain.RoleProducer, ProducerID: producerID}
}
