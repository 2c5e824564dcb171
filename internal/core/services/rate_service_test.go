package services_test

import (
	"context"
	"errors"
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

type RateServiceTestSuite struct {
	suite.Suite
	mockSource   *MockRateSource
	mockRateRepo *MockRateRepository
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockRateSource)
	suite.mockRateRepo = new(MockRateRepository)
}

func (suite *RateServiceTestSuite) newService(ctx context.Context) portssvc.RateSvcFacade {
	return services.NewRateService(ctx, suite.mockSource, suite.mockRateRepo)
}

func (suite *RateServiceTestSuite) TestNewRateService_SeedsFromRepository() {
	ctx := context.Background()
	persisted := &domain.RateTable{
		Rates: map[domain.CurrencyCode]decimal.Decimal{
			domain.EUR: decimal.NewFromFloat(47.85),
			domain.USD: decimal.NewFromFloat(41.20),
		},
		FetchedAt: time.Now().UTC(),
	}
	suite.mockRateRepo.On("LatestRates", ctx).Return(persisted, nil).Once()

	svc := suite.newService(ctx)

	table := svc.Snapshot()
	suite.True(table.Rates[domain.EUR].Equal(persisted.Rates[domain.EUR]))
	suite.True(table.Rates[domain.USD].Equal(persisted.Rates[domain.USD]))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestSnapshot_IsIndependentCopy() {
	ctx := context.Background()
	suite.mockRateRepo.On("LatestRates", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("SaveRates", ctx, mock.AnythingOfType("domain.RateTable"), "ops").Return(nil).Once()

	svc := suite.newService(ctx)
	_, err := svc.SetRates(ctx, dto.UpdateRatesRequest{
		Rates: map[domain.CurrencyCode]decimal.Decimal{domain.EUR: decimal.NewFromInt(47)},
	}, "ops")
	suite.Require().NoError(err)

	first := svc.Snapshot()
	first.Rates[domain.EUR] = decimal.NewFromInt(1)

	second := svc.Snapshot()
	suite.True(second.Rates[domain.EUR].Equal(decimal.NewFromInt(47)), "mutating a snapshot must not affect the service")
}

func (suite *RateServiceTestSuite) TestSetRates_RejectsTRY() {
	ctx := context.Background()
	suite.mockRateRepo.On("LatestRates", ctx).Return(nil, apperrors.ErrNotFound).Once()

	svc := suite.newService(ctx)
	_, err := svc.SetRates(ctx, dto.UpdateRatesRequest{
		Rates: map[domain.CurrencyCode]decimal.Decimal{domain.TRY: decimal.NewFromInt(1)},
	}, "ops")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestSetRates_RejectsNonPositive() {
	ctx := context.Background()
	suite.mockRateRepo.On("LatestRates", ctx).Return(nil, apperrors.ErrNotFound).Once()

	svc := suite.newService(ctx)
	_, err := svc.SetRates(ctx, dto.UpdateRatesRequest{
		Rates: map[domain.CurrencyCode]decimal.Decimal{domain.EUR: decimal.Zero},
	}, "ops")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestRefresh_SwapsSnapshot() {
	ctx := context.Background()
	suite.mockRateRepo.On("LatestRates", ctx).Return(nil, apperrors.ErrNotFound).Once()
	fetched := map[domain.CurrencyCode]decimal.Decimal{
		domain.EUR: decimal.NewFromFloat(48.10),
		domain.USD: decimal.NewFromFloat(41.55),
	}
	suite.mockSource.On("FetchRates", ctx).Return(fetched, nil).Once()
	suite.mockRateRepo.On("SaveRates", ctx, mock.AnythingOfType("domain.RateTable"), mock.AnythingOfType("string")).Return(nil).Once()

	svc := suite.newService(ctx)
	err := svc.Refresh(ctx)

	suite.Require().NoError(err)
	table := svc.Snapshot()
	suite.True(table.Rates[domain.EUR].Equal(fetched[domain.EUR]))
	suite.False(table.FetchedAt.IsZero())
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestRefresh_SourceFailureKeepsSnapshot() {
	ctx := context.Background()
	persisted := &domain.RateTable{
		Rates:     map[domain.CurrencyCode]decimal.Decimal{domain.EUR: decimal.NewFromInt(47)},
		FetchedAt: time.Now().UTC(),
	}
	suite.mockRateRepo.On("LatestRates", ctx).Return(persisted, nil).Once()
	suite.mockSource.On("FetchRates", ctx).Return(nil, errors.New("provider down")).Once()

	svc := suite.newService(ctx)
	err := svc.Refresh(ctx)

	suite.Require().Error(err)
	table := svc.Snapshot()
	suite.True(table.Rates[domain.EUR].Equal(decimal.NewFromInt(47)), "a failed refresh must keep the previous snapshot")
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
