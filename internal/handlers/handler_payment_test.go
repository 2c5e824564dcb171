package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anatoliatours/cashledger/internal/apperrors"
	"github.com/anatoliatours/cashledger/internal/core/domain"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/anatoliatours/cashledger/internal/dto"
	"github.com/anatoliatours/cashledger/internal/handlers"
	"github.com/anatoliatours/cashledger/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RegisterPayment(ctx context.Context, req dto.RegisterPaymentRequest, creatorUserID string) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Error(1)
}
func (m *MockPaymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Error(1)
}
func (m *MockPaymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPaymentsResponse), args.Error(1)
}
func (m *MockPaymentService) MarkCollected(ctx context.Context, paymentID string, userID string) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, paymentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Test Suite ---
type PaymentHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPaymentService *MockPaymentService
}

func (suite *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockPaymentService = new(MockPaymentService)

	cfg := &config.Config{IsProduction: true} // no swagger routes in tests
	services := &portssvc.ServiceContainer{Payment: suite.mockPaymentService}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *PaymentHandlerTestSuite) TestRegisterPayment_Success() {
	userID := uuid.NewString()
	body := map[string]any{
		"cariID":       "cari-42",
		"method":       "CASH",
		"currencyCode": "TRY",
		"amount":       "2500",
	}
	raw, err := json.Marshal(body)
	suite.Require().NoError(err)

	expected := &domain.PaymentRecord{
		PaymentID:     uuid.NewString(),
		CariID:        "cari-42",
		Method:        domain.MethodCash,
		CurrencyCode:  domain.TRY,
		Amount:        decimal.NewFromInt(2500),
		NetAmount:     decimal.NewFromInt(2500),
		TransactionAt: time.Now().UTC(),
	}

	suite.mockPaymentService.On("RegisterPayment",
		mock.Anything,
		mock.MatchedBy(func(req dto.RegisterPaymentRequest) bool {
			return req.CariID == "cari-42" && req.Method == domain.MethodCash
		}),
		userID,
	).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.PaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.PaymentID, resp.PaymentID)
	suite.Require().NotNil(resp.Settlement)
	suite.Equal(domain.SettlementAvailable, resp.Settlement.Status)

	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestRegisterPayment_BadBody() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader([]byte(`{"method":"WIRE"}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "RegisterPayment")
}

func (suite *PaymentHandlerTestSuite) TestGetPayment_NotFound() {
	paymentID := uuid.NewString()
	suite.mockPaymentService.On("GetPaymentByID", mock.Anything, paymentID).
		Return(nil, fmt.Errorf("payment: %w", apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/payments/"+paymentID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestMarkCollected_Conflict() {
	paymentID := uuid.NewString()
	suite.mockPaymentService.On("MarkCollected", mock.Anything, paymentID, "system").
		Return(nil, fmt.Errorf("%w: already collected", apperrors.ErrConflict)).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/payments/"+paymentID+"/collect", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}
