package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/access"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock ProducerService ---
type MockProducerService struct {
	mock.Mock
}

func (m *MockProducerService) GetProducer(ctx context.Context, caller domain.Caller, producerID string) (*domain.Producer, error) {
	args := m.Called(ctx, caller, producerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Producer), args.Error(1)
}

func (m *MockProducerService) ListProducers(ctx context.Context, caller domain.Caller, params dto.ListProducersParams) ([]domain.Producer, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Producer), args.Error(1)
}

func (m *MockProducerService) CreateProducer(ctx context.Context, caller domain.Caller, req dto.CreateProducerRequest) (*domain.Producer, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Producer), args.Error(1)
}

func (m *MockProducerService) UpdateProducer(ctx context.Context, caller domain.Caller, producerID string, req dto.UpdateProducerRequest) (*domain.Producer, error) {
	args := m.Called(ctx, caller, producerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Producer), args.Error(1)
}

func (m *MockProducerService) AuthorizeProducerAction(ctx context.Context, caller domain.Caller, producerID string, action access.Action) (*domain.Producer, error) {
	args := m.Called(ctx, caller, producerID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Producer), args.Error(1)
}

var _ portssvc.ProducerSvcFacade = (*MockProducerService)(nil)

// --- Mock LineItemService ---
type MockLineItemService struct {
	mock.Mock
}

func (m *MockLineItemService) GetLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string) (*domain.LineItem, error) {
	args := m.Called(ctx, caller, producerID, lineItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}

func (m *MockLineItemService) ListLineItems(ctx context.Context, caller domain.Caller, producerID string, params dto.ListLineItemsParams) ([]domain.LineItem, error) {
	args := m.Called(ctx, caller, producerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockLineItemService) CreateLineItem(ctx context.Context, caller domain.Caller, producerID string, req dto.CreateLineItemRequest) (*domain.LineItem, error) {
	args := m.Called(ctx, caller, producerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}

func (m *MockLineItemService) UpdateLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string, req dto.UpdateLineItemRequest) (*domain.LineItem, error) {
	args := m.Called(ctx, caller, producerID, lineItemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}

func (m *MockLineItemService) DeleteLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string) error {
	return m.Called(ctx, caller, producerID, lineItemID).Error(0)
}

var _ portssvc.LineItemSvcFacade = (*MockLineItemService)(nil)

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) GetSummary(ctx context.Context, caller domain.Caller, producerID string) (*dto.SettlementSummaryResponse, error) {
	args := m.Called(ctx, caller, producerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SettlementSummaryResponse), args.Error(1)
}

func (m *MockSettlementService) PreviewSettlement(ctx context.Context, caller domain.Caller, producerID string, req dto.PreviewSettlementRequest) (*domain.SettlementCandidate, error) {
	args := m.Called(ctx, caller, producerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementCandidate), args.Error(1)
}

func (m *MockSettlementService) ListSettlements(ctx context.Context, caller domain.Caller, producerID string, params dto.ListSettlementsParams) (*dto.ListSettlementsResponse, error) {
	args := m.Called(ctx, caller, producerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListSettlementsResponse), args.Error(1)
}

func (m *MockSettlementService) GetSettlement(ctx context.Context, caller domain.Caller, batchID string) (*domain.SettlementBatch, error) {
	args := m.Called(ctx, caller, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementBatch), args.Error(1)
}

func (m *MockSettlementService) GetReceiptGroups(ctx context.Context, caller domain.Caller, producerID string) ([]dto.ReceiptGroupResponse, error) {
	args := m.Called(ctx, caller, producerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ReceiptGroupResponse), args.Error(1)
}

func (m *MockSettlementService) SettleItems(ctx context.Context, caller domain.Caller, producerID string, req dto.SettleItemsRequest) (*dto.SettleResponse, error) {
	args := m.Called(ctx, caller, producerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SettleResponse), args.Error(1)
}

func (m *MockSettlementService) SettleLineItem(ctx context.Context, caller domain.Caller, producerID, lineItemID string, req dto.SettleLineItemRequest) (*dto.SettleResponse, error) {
	args := m.Called(ctx, caller, producerID, lineItemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SettleResponse), args.Error(1)
}

func (m *MockSettlementService) GetDailyHistory(ctx context.Context, caller domain.Caller, producerID string, params dto.HistoryParams) (*dto.DailyHistoryResponse, error) {
	args := m.Called(ctx, caller, producerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DailyHistoryResponse), args.Error(1)
}

func (m *MockSettlementService) GetMonthlyHistory(ctx context.Context, caller domain.Caller, producerID string, params dto.HistoryParams) (*dto.MonthlyHistoryResponse, error) {
	args := m.Called(ctx, caller, producerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MonthlyHistoryResponse), args.Error(1)
}

var _ portssvc.SettlementSvcFacade = (*MockSettlementService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, caller domain.Caller, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)
