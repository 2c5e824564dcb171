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
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidRate   = errors.New("rate must be positive")
)

// exchangeService provides the two-leg currency exchange operations.
// Both legs and the record append run inside one database transaction against
// row-locked accounts, so an exchange appears atomic to any other exchange or
// transfer touching the same accounts.
type exchangeService struct {
	accountRepo  portsrepo.AccountRepositoryWithTx
	exchangeRepo portsrepo.ExchangeRepositoryFacade
}

// NewExchangeService creates a new ExchangeService.
func NewExchangeService(accountRepo portsrepo.AccountRepositoryWithTx, exchangeRepo portsrepo.ExchangeRepositoryFacade) portssvc.ExchangeSvcFacade {
	return &exchangeService{
		accountRepo:  accountRepo,
		exchangeRepo: exchangeRepo,
	}
}

var _ portssvc.ExchangeSvcFacade = (*exchangeService)(nil)

// CreateExchange converts an amount from the source account's currency into the
// target account's currency at the supplied rate. The target leg is always
// amount * rate; the rate is stored on the record so the operation can later be
// reversed exactly.
func (s *exchangeService) CreateExchange(ctx context.Context, req dto.CreateExchangeRequest, creatorUserID string) (*domain.ExchangeRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvalidAmount)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvalidRate)
	}
	if req.SourceAccountID == req.TargetAccountID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameAccount)
	}
	if req.SourceCurrency == req.TargetCurrency {
		return nil, fmt.Errorf("%w: source and target currencies must differ", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	exchangedAt := now
	if req.ExchangedAt != nil {
		exchangedAt = *req.ExchangedAt
	}

	record := domain.ExchangeRecord{
		ExchangeID:      uuid.NewString(),
		SourceAccountID: req.SourceAccountID,
		TargetAccountID: req.TargetAccountID,
		SourceCurrency:  req.SourceCurrency,
		TargetCurrency:  req.TargetCurrency,
		SourceAmount:    req.Amount,
		TargetAmount:    req.Amount.Mul(req.Rate),
		Rate:            req.Rate,
		ExchangedAt:     exchangedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.accountRepo.Rollback(ctx, tx)
	}()

	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{req.SourceAccountID, req.TargetAccountID})
	if err != nil {
		logger.Error("Failed to lock accounts for exchange", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts for exchange: %w", err)
	}
	source, target, err := validateAccountPair(accounts, req.SourceAccountID, req.TargetAccountID)
	if err != nil {
		return nil, err
	}
	if source.CurrencyCode != req.SourceCurrency {
		return nil, fmt.Errorf("%w: source account holds %s, not %s", ErrCurrencyMismatch, source.CurrencyCode, req.SourceCurrency)
	}
	if target.CurrencyCode != req.TargetCurrency {
		return nil, fmt.Errorf("%w: target account holds %s, not %s", ErrCurrencyMismatch, target.CurrencyCode, req.TargetCurrency)
	}

	balanceChanges := map[string]decimal.Decimal{
		req.SourceAccountID: record.SourceAmount.Neg(),
		req.TargetAccountID: record.TargetAmount,
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, creatorUserID, now); err != nil {
		logger.Error("Failed to apply exchange balance legs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update balances for exchange: %w", err)
	}
	if err := s.exchangeRepo.SaveExchangeInTx(ctx, tx, record); err != nil {
		logger.Error("Failed to save exchange record", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save exchange record: %w", err)
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit exchange: %w", err)
	}

	logger.Info("Exchange recorded",
		slog.String("exchange_id", record.ExchangeID),
		slog.String("source_currency", string(record.SourceCurrency)),
		slog.String("target_currency", string(record.TargetCurrency)),
	)
	return &record, nil
}

// GetExchangeByID retrieves an exchange record by its identifier.
func (s *exchangeService) GetExchangeByID(ctx context.Context, exchangeID string) (*domain.ExchangeRecord, error) {
	record, err := s.exchangeRepo.FindExchangeByID(ctx, exchangeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find exchange by ID", slog.String("error", err.Error()), slog.String("exchange_id", exchangeID))
		}
		return nil, fmt.Errorf("failed to find exchange %s: %w", exchangeID, err)
	}
	return record, nil
}

// ListExchanges retrieves a paginated list of exchange records.
func (s *exchangeService) ListExchanges(ctx context.Context, params dto.ListExchangesParams) ([]domain.ExchangeRecord, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	records, err := s.exchangeRepo.ListExchanges(ctx, limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list exchanges", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list exchanges: %w", err)
	}
	return records, nil
}

// DeleteExchange removes an exchange record and restores both account balances
// exactly as stored on the record. The reversal never consults a current rate.
func (s *exchangeService) DeleteExchange(ctx context.Context, exchangeID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.exchangeRepo.FindExchangeByID(ctx, exchangeID)
	if err != nil {
		return fmt.Errorf("failed to find exchange %s: %w", exchangeID, err)
	}

	now := time.Now().UTC()
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.accountRepo.Rollback(ctx, tx)
	}()

	// Lock both accounts before touching balances. The accounts may have been
	// deactivated since the exchange; the reversal still applies, only the
	// existence of the rows matters here.
	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{record.SourceAccountID, record.TargetAccountID})
	if err != nil {
		return fmt.Errorf("failed to lock accounts for exchange reversal: %w", err)
	}
	if _, ok := accounts[record.SourceAccountID]; !ok {
		return fmt.Errorf("%w: ID %s", ErrAccountNotFound, record.SourceAccountID)
	}
	if _, ok := accounts[record.TargetAccountID]; !ok {
		return fmt.Errorf("%w: ID %s", ErrAccountNotFound, record.TargetAccountID)
	}

	balanceChanges := map[string]decimal.Decimal{
		record.SourceAccountID: record.SourceAmount,
		record.TargetAccountID: record.TargetAmount.Neg(),
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		logger.Error("Failed to reverse exchange balance legs", slog.String("error", err.Error()), slog.String("exchange_id", exchangeID))
		return fmt.Errorf("failed to reverse balances for exchange %s: %w", exchangeID, err)
	}
	if err := s.exchangeRepo.DeleteExchangeInTx(ctx, tx, exchangeID); err != nil {
		logger.Error("Failed to delete exchange record", slog.String("error", err.Error()), slog.String("exchange_id", exchangeID))
		return fmt.Errorf("failed to delete exchange %s: %w", exchangeID, err)
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit exchange reversal: %w", err)
	}

	logger.Info("Exchange deleted and reversed", slog.String("exchange_id", exchangeID))
	return nil
}

// validateAccountPair checks that both locked accounts exist and are active.
func validateAccountPair(accounts map[string]domain.CashAccount, sourceID, targetID string) (*domain.CashAccount, *domain.CashAccount, error) {
	source, ok := accounts[sourceID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, sourceID)
	}
	target, ok := accounts[targetID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, targetID)
	}
	if !source.IsActive {
		return nil, nil, fmt.Errorf("%w: account %s", ErrAccountInactive, sourceID)
	}
	if !target.IsActive {
		return nil, nil, fmt.Errorf("%w: account %s", ErrAccountInactive, targetID)
	}
	return &source, &target, nil
}
