package services_test

import (
	"context"
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	portsrepo "github.com/anatoliatours/cashledger/internal/core/ports/repositories"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/anatoliatours/cashledger/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.CashAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.CashAccount, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.CashAccount), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.CashAccount, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashAccount), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.CashAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.CashAccount, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.CashAccount), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, limit int, nextToken *string) ([]domain.PaymentRecord, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.PaymentRecord), returnedNextToken, args.Error(2)
}

func (m *MockPaymentRepository) ListPaymentsUpTo(ctx context.Context, asOf time.Time) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.PaymentRecord) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) MarkCollected(ctx context.Context, paymentID string, userID string, now time.Time) error {
	args := m.Called(ctx, paymentID, userID, now)
	return args.Error(0)
}

// --- Mock ExchangeRepository ---
type MockExchangeRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRepositoryFacade = (*MockExchangeRepository)(nil)

func (m *MockExchangeRepository) FindExchangeByID(ctx context.Context, exchangeID string) (*domain.ExchangeRecord, error) {
	args := m.Called(ctx, exchangeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRecord), args.Error(1)
}

func (m *MockExchangeRepository) ListExchanges(ctx context.Context, limit int, offset int) ([]domain.ExchangeRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRecord), args.Error(1)
}

func (m *MockExchangeRepository) SaveExchangeInTx(ctx context.Context, tx pgx.Tx, record domain.ExchangeRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockExchangeRepository) DeleteExchangeInTx(ctx context.Context, tx pgx.Tx, exchangeID string) error {
	args := m.Called(ctx, tx, exchangeID)
	return args.Error(0)
}

// --- Mock TransferRepository ---
type MockTransferRepository struct {
	mock.Mock
}

var _ portsrepo.TransferRepositoryFacade = (*MockTransferRepository)(nil)

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.TransferRecord, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRecord), args.Error(1)
}

func (m *MockTransferRepository) ListTransfers(ctx context.Context, limit int, offset int) ([]domain.TransferRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRecord), args.Error(1)
}

func (m *MockTransferRepository) SaveTransferInTx(ctx context.Context, tx pgx.Tx, record domain.TransferRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

var _ portsrepo.RateRepositoryFacade = (*MockRateRepository)(nil)

func (m *MockRateRepository) LatestRates(ctx context.Context) (*domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

func (m *MockRateRepository) SaveRates(ctx context.Context, rates domain.RateTable, userID string) error {
	args := m.Called(ctx, rates, userID)
	return args.Error(0)
}

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

var _ portssvc.RateSource = (*MockRateSource)(nil)

func (m *MockRateSource) FetchRates(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.CurrencyCode]decimal.Decimal), args.Error(1)
}

// --- Mock AccountService (as used by PaymentService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateCashAccountRequest, creatorUserID string) (*domain.CashAccount, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.CashAccount, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashAccount), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}
