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
	"github.com/anatoliatours/cashledger/internal/utils/cashcalc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotACheck        = errors.New("payment is not a check/promissory record")
	ErrAlreadyCollected = errors.New("check is already marked collected")
	ErrDueDateMissing   = errors.New("check/promissory payment requires a due date")
)

// paymentService provides business logic for payment records.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RegisterPayment validates and persists a new payment record. For card
// payments the commission rate is taken from the request when present,
// otherwise snapshotted from the card account's configured rate; commission
// and net amounts are derived once here and stored on the record.
func (s *paymentService) RegisterPayment(ctx context.Context, req dto.RegisterPaymentRequest, creatorUserID string) (*domain.PaymentRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.Method)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if req.Method == domain.MethodCheckPromissory && req.DueDate == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDueDateMissing)
	}

	commissionRate := req.CommissionRate
	if req.Method.RequiresAccount() {
		if req.AccountID == nil || *req.AccountID == "" {
			return nil, fmt.Errorf("%w: payment method %s requires an account", apperrors.ErrValidation, req.Method)
		}
		account, err := s.accountSvc.GetAccountByID(ctx, *req.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, *req.AccountID)
			}
			return nil, fmt.Errorf("failed to fetch account for payment: %w", err)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s", ErrAccountInactive, account.AccountID)
		}
		if account.CurrencyCode != req.CurrencyCode {
			return nil, fmt.Errorf("%w: account holds %s, payment is %s", ErrCurrencyMismatch, account.CurrencyCode, req.CurrencyCode)
		}
		if req.Method == domain.MethodCreditCard {
			if account.Kind != domain.KindCreditCard {
				return nil, fmt.Errorf("%w: account %s is not a credit card account", apperrors.ErrValidation, account.AccountID)
			}
			if commissionRate == nil {
				commissionRate = account.CommissionRate
			}
		}
	}

	commission, net, err := cashcalc.ComputeNet(req.Amount, req.Method, commissionRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	if req.Method == domain.MethodCreditCard && req.ValorDate == nil {
		// Data-quality signal: the record will classify as immediately available.
		logger.Warn("Credit card payment registered without a valor date", slog.String("cari_id", req.CariID))
	}

	now := time.Now().UTC()
	transactionAt := now
	if req.TransactionAt != nil {
		transactionAt = *req.TransactionAt
	}

	payment := domain.PaymentRecord{
		PaymentID:        uuid.NewString(),
		CariID:           req.CariID,
		Method:           req.Method,
		CurrencyCode:     req.CurrencyCode,
		Amount:           req.Amount,
		CommissionRate:   commissionRate,
		CommissionAmount: commission,
		NetAmount:        net,
		AccountID:        req.AccountID,
		ValorDate:        req.ValorDate,
		DueDate:          req.DueDate,
		IsCollected:      false,
		Description:      req.Description,
		TransactionAt:    transactionAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := payment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	logger.Info("Payment registered",
		slog.String("payment_id", payment.PaymentID),
		slog.String("method", string(payment.Method)),
		slog.String("currency", string(payment.CurrencyCode)),
	)
	return &payment, nil
}

// GetPaymentByID retrieves a payment record by its identifier.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find payment by ID", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	return payment, nil
}

// ListPayments retrieves a token-paginated list of payment records.
func (s *paymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	payments, nextToken, err := s.paymentRepo.ListPayments(ctx, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list payments", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}

	resp := &dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments),
		NextToken: nextToken,
	}
	logger.Debug("Payments listed", slog.Int("count", len(payments)))
	return resp, nil
}

// MarkCollected performs the explicit collected transition on a check/promissory
// record. No other mutation of a payment record is ever permitted.
func (s *paymentService) MarkCollected(ctx context.Context, paymentID string, userID string) (*domain.PaymentRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	if payment.Method != domain.MethodCheckPromissory {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNotACheck)
	}
	if payment.IsCollected {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyCollected)
	}

	now := time.Now().UTC()
	if err := s.paymentRepo.MarkCollected(ctx, paymentID, userID, now); err != nil {
		logger.Error("Failed to mark check collected", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to mark payment %s collected: %w", paymentID, err)
	}

	payment.IsCollected = true
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = userID

	logger.Info("Check marked collected", slog.String("payment_id", paymentID))
	return payment, nil
}
