package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatoliatours/cashledger/internal/apperrors"
	"github.com/anatoliatours/cashledger/internal/core/domain"
	portsrepo "github.com/anatoliatours/cashledger/internal/core/ports/repositories"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/anatoliatours/cashledger/internal/dto"
	"github.com/anatoliatours/cashledger/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountInactive  = errors.New("account is inactive")
	ErrCurrencyMismatch = errors.New("account currency does not match")
	ErrSameAccount      = errors.New("source and target accounts must be distinct")
)

var hundred = decimal.NewFromInt(100)

// accountService provides business logic for cash accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new cash account after validation.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateCashAccountRequest, creatorUserID string) (*domain.CashAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CommissionRate != nil {
		if req.Kind != domain.KindCreditCard {
			return nil, fmt.Errorf("%w: commission rate only applies to credit card accounts", apperrors.ErrValidation)
		}
		if req.CommissionRate.IsNegative() || req.CommissionRate.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: commission rate must be between 0 and 100", apperrors.ErrValidation)
		}
	}

	now := time.Now().UTC()
	account := domain.CashAccount{
		AccountID:      uuid.NewString(),
		Name:           req.Name,
		Kind:           req.Kind,
		CurrencyCode:   req.CurrencyCode,
		IsActive:       true,
		CommissionRate: req.CommissionRate,
		Balance:        decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Cash account created", slog.String("account_id", account.AccountID), slog.String("kind", string(account.Kind)))
	return &account, nil
}

// GetAccountByID retrieves a cash account by its identifier.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of cash accounts.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.CashAccount, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks a cash account as inactive. Payment history against
// the account is immutable and stays visible to the aggregator.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	logger.Info("Cash account deactivated", slog.String("account_id", accountID))
	return nil
}
