package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/handlers"
	"github.com/SscSPs/produce_settlement_app/internal/middleware"
	"github.com/SscSPs/produce_settlement_app/internal/platform/config"
	"github.com/SscSPs/produce_settlement_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-for-handlers"

// handlerSuite wires the real router and auth middleware around mocked services.
type handlerSuite struct {
	suite.Suite
	router     *gin.Engine
	producers  *MockProducerService
	lineItems  *MockLineItemService
	settlement *MockSettlementService
	users      *MockUserService
	tokens     *MockTokenService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.producers = new(MockProducerService)
	s.lineItems = new(MockLineItemService)
	s.settlement = new(MockSettlementService)
	s.users = new(MockUserService)
	s.tokens = new(MockTokenService)

	loginLimiter, err := middleware.NewLoginRateLimiter("2-M")
	require.NoError(s.T(), err)

	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, loginLimiter, &portssvc.ServiceContainer{
		Producer:   s.producers,
		LineItem:   s.lineItems,
		Settlement: s.settlement,
		User:       s.users,
		Token:      s.tokens,
	})
}

func (s *handlerSuite) TearDownTest() {
	s.producers.AssertExpectations(s.T())
	s.lineItems.AssertExpectations(s.T())
	s.settlement.AssertExpectations(s.T())
	s.users.AssertExpectations(s.T())
	s.tokens.AssertExpectations(s.T())
}

func (s *handlerSuite) token(user domain.User) string {
	token, _, err := utils.GenerateJWT(user, testJWTSecret, time.Hour, "test")
	require.NoError(s.T(), err)
	return token
}

func (s *handlerSuite) managerToken() string {
	return s.token(domain.User{UserID: "manager-1", Role: domain.RoleBranchManager, BranchIDs: []string{"branch-1"}})
}

// do sends body as JSON (when non-nil) and returns the recorder.
func (s *handlerSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var body handlers.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}
