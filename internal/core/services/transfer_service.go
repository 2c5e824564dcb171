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

// transferService moves amounts between two same-currency cash accounts.
// Cross-currency transfers are rejected outright: moving an amount between
// accounts of different currencies without a rate silently changes its value,
// so such movements must go through the exchange operation instead.
type transferService struct {
	accountRepo  portsrepo.AccountRepositoryWithTx
	transferRepo portsrepo.TransferRepositoryFacade
}

// NewTransferService creates a new TransferService.
func NewTransferService(accountRepo portsrepo.AccountRepositoryWithTx, transferRepo portsrepo.TransferRepositoryFacade) portssvc.TransferSvcFacade {
	return &transferService{
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// CreateTransfer debits the source account and credits the target account by
// the same amount in their shared currency, appending one transfer record.
// No commission and no settlement delay apply.
func (s *transferService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.TransferRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvalidAmount)
	}
	if req.SourceAccountID == req.TargetAccountID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameAccount)
	}

	now := time.Now().UTC()
	transferredAt := now
	if req.TransferredAt != nil {
		transferredAt = *req.TransferredAt
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
		logger.Error("Failed to lock accounts for transfer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts for transfer: %w", err)
	}
	source, target, err := validateAccountPair(accounts, req.SourceAccountID, req.TargetAccountID)
	if err != nil {
		return nil, err
	}
	if source.CurrencyCode != target.CurrencyCode {
		return nil, fmt.Errorf("%w: cannot transfer between %s and %s accounts without an exchange", ErrCurrencyMismatch, source.CurrencyCode, target.CurrencyCode)
	}

	record := domain.TransferRecord{
		TransferID:      uuid.NewString(),
		SourceAccountID: req.SourceAccountID,
		TargetAccountID: req.TargetAccountID,
		CurrencyCode:    target.CurrencyCode,
		Amount:          req.Amount,
		Description:     req.Description,
		TransferredAt:   transferredAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	balanceChanges := map[string]decimal.Decimal{
		req.SourceAccountID: req.Amount.Neg(),
		req.TargetAccountID: req.Amount,
	}
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, creatorUserID, now); err != nil {
		logger.Error("Failed to apply transfer balance legs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update balances for transfer: %w", err)
	}
	if err := s.transferRepo.SaveTransferInTx(ctx, tx, record); err != nil {
		logger.Error("Failed to save transfer record", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transfer record: %w", err)
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}

	logger.Info("Transfer recorded",
		slog.String("transfer_id", record.TransferID),
		slog.String("currency", string(record.CurrencyCode)),
	)
	return &record, nil
}

// GetTransferByID retrieves a transfer record by its identifier.
func (s *transferService) GetTransferByID(ctx context.Context, transferID string) (*domain.TransferRecord, error) {
	record, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find transfer by ID", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		}
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	return record, nil
}

// ListTransfers retrieves a paginated list of transfer records.
func (s *transferService) ListTransfers(ctx context.Context, params dto.ListTransfersParams) ([]domain.TransferRecord, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	records, err := s.transferRepo.ListTransfers(ctx, limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transfers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return records, nil
}
