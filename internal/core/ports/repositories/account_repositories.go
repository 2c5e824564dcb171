package repositories

import (
	"context"
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for cash account data
type AccountReader interface {
	// FindAccountByID retrieves a specific cash account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error)

	// FindAccountsByIDs retrieves multiple cash accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.CashAccount, error)

	// ListAccounts retrieves a paginated list of cash accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.CashAccount, error)
}

// AccountWriter defines write operations for cash account data
type AccountWriter interface {
	// SaveAccount persists a new cash account.
	SaveAccount(ctx context.Context, account domain.CashAccount) error

	// UpdateAccount updates an existing cash account's details.
	UpdateAccount(ctx context.Context, account domain.CashAccount) error

	// DeactivateAccount marks a cash account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountBalanceSupport defines the balance operations used by the two-leg
// effectful operations (exchange, transfer). Both legs run inside one
// database transaction against row-locked accounts.
type AccountBalanceSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.CashAccount, error)

	// UpdateAccountBalancesInTx applies signed balance deltas to multiple accounts within a transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
