package services

import (
	"context"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/anatoliatours/cashledger/internal/dto"
)

// AccountSvcFacade defines the business operations on cash accounts.
type AccountSvcFacade interface {
	// CreateAccount creates a new cash account.
	CreateAccount(ctx context.Context, req dto.CreateCashAccountRequest, creatorUserID string) (*domain.CashAccount, error)

	// GetAccountByID retrieves a cash account by its identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error)

	// ListAccounts retrieves a paginated list of cash accounts.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.CashAccount, error)

	// DeactivateAccount marks a cash account as inactive. History referencing
	// the account remains untouched.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}
