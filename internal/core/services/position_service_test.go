package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/anatoliatours/cashledger/internal/apperrors"
	"github.com/anatoliatours/cashledger/internal/core/domain"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/anatoliatours/cashledger/internal/core/services"
	"github.com/anatoliatours/cashledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PositionServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	rateSvc         portssvc.RateSvcFacade
	service         portssvc.PositionSvcFacade
}

func (suite *PositionServiceTestSuite) SetupTest() {
	ctx := context.Background()
	suite.mockPaymentRepo = new(MockPaymentRepository)

	rateRepo := new(MockRateRepository)
	rateRepo.On("LatestRates", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.rateSvc = services.NewRateService(ctx, new(MockRateSource), rateRepo)

	suite.service = services.NewPositionService(suite.mockPaymentRepo, suite.rateSvc)
}

func (suite *PositionServiceTestSuite) setRates(ctx context.Context, eur, usd float64) {
	rateRepo := new(MockRateRepository)
	rateRepo.On("LatestRates", ctx).Return(nil, apperrors.ErrNotFound).Once()
	rateRepo.On("SaveRates", ctx, mock.AnythingOfType("domain.RateTable"), "ops").Return(nil).Once()
	suite.rateSvc = services.NewRateService(ctx, new(MockRateSource), rateRepo)
	_, err := suite.rateSvc.SetRates(ctx, dto.UpdateRatesRequest{
		Rates: map[domain.CurrencyCode]decimal.Decimal{
			domain.EUR: decimal.NewFromFloat(eur),
			domain.USD: decimal.NewFromFloat(usd),
		},
	}, "ops")
	suite.Require().NoError(err)
	suite.service = services.NewPositionService(suite.mockPaymentRepo, suite.rateSvc)
}

func (suite *PositionServiceTestSuite) TestGetPosition_Empty() {
	ctx := context.Background()
	asOf := time.Now().UTC()

	suite.mockPaymentRepo.On("ListPaymentsUpTo", ctx, asOf).Return([]domain.PaymentRecord{}, nil).Once()

	report, err := suite.service.GetPosition(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.TotalTRY.IsZero())
	suite.Len(report.Buckets, len(domain.MethodBuckets))
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PositionServiceTestSuite) TestGetPosition_FoldsWithRateSnapshot() {
	ctx := context.Background()
	asOf := time.Now().UTC()
	suite.setRates(ctx, 40.0, 35.0)

	records := []domain.PaymentRecord{
		{
			PaymentID:     "p1",
			Method:        domain.MethodCash,
			CurrencyCode:  domain.TRY,
			Amount:        decimal.NewFromInt(10000),
			NetAmount:     decimal.NewFromInt(10000),
			TransactionAt: asOf.Add(-48 * time.Hour),
		},
		{
			PaymentID:     "p2",
			Method:        domain.MethodCash,
			CurrencyCode:  domain.EUR,
			Amount:        decimal.NewFromInt(100),
			NetAmount:     decimal.NewFromInt(100),
			TransactionAt: asOf.Add(-24 * time.Hour),
		},
	}
	suite.mockPaymentRepo.On("ListPaymentsUpTo", ctx, asOf).Return(records, nil).Once()

	report, err := suite.service.GetPosition(ctx, asOf)

	suite.Require().NoError(err)
	// 10000 TRY + 100 EUR * 40 = 14000 TRY, all available.
	suite.True(report.AvailableTRY.Equal(decimal.NewFromInt(14000)))
	suite.True(report.PendingTRY.IsZero())
	suite.True(report.TotalTRY.Equal(decimal.NewFromInt(14000)))
	suite.True(report.RatesUsed[domain.EUR].Equal(decimal.NewFromInt(40)))
}

func TestPositionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PositionServiceTestSuite))
}
