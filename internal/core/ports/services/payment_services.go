package services

import (
	"context"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/anatoliatours/cashledger/internal/dto"
)

// PaymentSvcFacade defines the business operations on payment records.
type PaymentSvcFacade interface {
	// RegisterPayment validates and persists a new payment record, computing
	// its commission and net amounts.
	RegisterPayment(ctx context.Context, req dto.RegisterPaymentRequest, creatorUserID string) (*domain.PaymentRecord, error)

	// GetPaymentByID retrieves a payment record by its identifier.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error)

	// ListPayments retrieves a token-paginated list of payment records.
	ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)

	// MarkCollected performs the explicit collected transition on a
	// check/promissory record.
	MarkCollected(ctx context.Context, paymentID string, userID string) (*domain.PaymentRecord, error)
}
