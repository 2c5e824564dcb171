package repositories

import (
	"context"
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
)

// PaymentReader defines read operations for payment records
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment record by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error)

	// ListPayments retrieves payment records ordered by transaction time, newest first,
	// using token pagination.
	ListPayments(ctx context.Context, limit int, nextToken *string) ([]domain.PaymentRecord, *string, error)

	// ListPaymentsUpTo retrieves every payment record transacted up to and including
	// the given date, for the cash-position fold.
	ListPaymentsUpTo(ctx context.Context, asOf time.Time) ([]domain.PaymentRecord, error)
}

// PaymentWriter defines write operations for payment records
type PaymentWriter interface {
	// SavePayment persists a new payment record.
	SavePayment(ctx context.Context, payment domain.PaymentRecord) error

	// MarkCollected flips the collected flag of a check/promissory record.
	// This is the only permitted mutation of a payment record after creation.
	MarkCollected(ctx context.Context, paymentID string, userID string, now time.Time) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
