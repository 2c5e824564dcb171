package services_test

import (
	"context"
	"testing"

	"github.com/anatoliatours/cashledger/internal/apperrors"
	"github.com/anatoliatours/cashledger/internal/core/domain"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/anatoliatours/cashledger/internal/core/services"
	"github.com/anatoliatours/cashledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransferServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockTransferRepo *MockTransferRepository
	service          portssvc.TransferSvcFacade
	cashTRY          domain.CashAccount
	bankTRY          domain.CashAccount
	bankEUR          domain.CashAccount
	userID           string
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTransferRepo = new(MockTransferRepository)
	suite.service = services.NewTransferService(suite.mockAccountRepo, suite.mockTransferRepo)
	suite.userID = uuid.NewString()

	suite.cashTRY = domain.CashAccount{
		AccountID:    uuid.NewString(),
		Name:         "Merkez Kasa",
		Kind:         domain.KindCash,
		CurrencyCode: domain.TRY,
		IsActive:     true,
	}
	suite.bankTRY = domain.CashAccount{
		AccountID:    uuid.NewString(),
		Name:         "Ziraat TRY",
		Kind:         domain.KindBank,
		CurrencyCode: domain.TRY,
		IsActive:     true,
	}
	suite.bankEUR = domain.CashAccount{
		AccountID:    uuid.NewString(),
		Name:         "Ziraat EUR",
		Kind:         domain.KindBank,
		CurrencyCode: domain.EUR,
		IsActive:     true,
	}
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(20000)
	req := dto.CreateTransferRequest{
		SourceAccountID: suite.cashTRY.AccountID,
		TargetAccountID: suite.bankTRY.AccountID,
		Amount:          amount,
		Description:     "daily cash deposit",
	}
	accounts := map[string]domain.CashAccount{
		suite.cashTRY.AccountID: suite.cashTRY,
		suite.bankTRY.AccountID: suite.bankTRY,
	}

	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, []string{req.SourceAccountID, req.TargetAccountID}).Return(accounts, nil).Once()

	var appliedChanges map[string]decimal.Decimal
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", ctx, mock.Anything, mock.AnythingOfType("map[string]decimal.Decimal"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			appliedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()
	suite.mockTransferRepo.On("SaveTransferInTx", ctx, mock.Anything, mock.AnythingOfType("domain.TransferRecord")).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	record, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.Equal(domain.TRY, record.CurrencyCode)
	suite.True(record.Amount.Equal(amount))

	suite.Require().Len(appliedChanges, 2)
	suite.True(appliedChanges[suite.cashTRY.AccountID].Equal(amount.Neg()))
	suite.True(appliedChanges[suite.bankTRY.AccountID].Equal(amount))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_CrossCurrencyRejected() {
	ctx := context.Background()
	req := dto.CreateTransferRequest{
		SourceAccountID: suite.cashTRY.AccountID,
		TargetAccountID: suite.bankEUR.AccountID,
		Amount:          decimal.NewFromInt(1000),
	}
	accounts := map[string]domain.CashAccount{
		suite.cashTRY.AccountID: suite.cashTRY,
		suite.bankEUR.AccountID: suite.bankEUR,
	}

	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCurrencyMismatch)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalancesInTx")
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "SaveTransferInTx")
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_SameAccount() {
	ctx := context.Background()
	req := dto.CreateTransferRequest{
		SourceAccountID: suite.cashTRY.AccountID,
		TargetAccountID: suite.cashTRY.AccountID,
		Amount:          decimal.NewFromInt(100),
	}

	_, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Begin")
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_MissingAccount() {
	ctx := context.Background()
	req := dto.CreateTransferRequest{
		SourceAccountID: suite.cashTRY.AccountID,
		TargetAccountID: suite.bankTRY.AccountID,
		Amount:          decimal.NewFromInt(100),
	}
	// Target row does not exist.
	accounts := map[string]domain.CashAccount{
		suite.cashTRY.AccountID: suite.cashTRY,
	}

	suite.mockAccountRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.CreateTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
