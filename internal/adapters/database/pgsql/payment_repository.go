package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anatoliatours/cashledger/internal/apperrors"
	"github.com/anatoliatours/cashledger/internal/core/domain"
	portsrepo "github.com/anatoliatours/cashledger/internal/core/ports/repositories"
	"github.com/anatoliatours/cashledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPaymentRepository persists payment records in PostgreSQL.
type PgxPaymentRepository struct {
	BaseRepository
}

// NewPgxPaymentRepository creates a new repository for payment record data.
func NewPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository{pool: pool}}
}

const paymentColumns = `payment_id, cari_id, method, currency_code, amount, commission_rate, commission_amount, net_amount, account_id, valor_date, due_date, is_collected, description, transaction_at, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*domain.PaymentRecord, error) {
	var payment domain.PaymentRecord
	err := row.Scan(
		&payment.PaymentID,
		&payment.CariID,
		&payment.Method,
		&payment.CurrencyCode,
		&payment.Amount,
		&payment.CommissionRate,
		&payment.CommissionAmount,
		&payment.NetAmount,
		&payment.AccountID,
		&payment.ValorDate,
		&payment.DueDate,
		&payment.IsCollected,
		&payment.Description,
		&payment.TransactionAt,
		&payment.CreatedAt,
		&payment.CreatedBy,
		&payment.LastUpdatedAt,
		&payment.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// SavePayment persists a new payment record.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.PaymentRecord) error {
	query := `
		INSERT INTO payment_records (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.pool.Exec(ctx, query,
		payment.PaymentID,
		payment.CariID,
		payment.Method,
		payment.CurrencyCode,
		payment.Amount,
		payment.CommissionRate,
		payment.CommissionAmount,
		payment.NetAmount,
		payment.AccountID,
		payment.ValorDate,
		payment.DueDate,
		payment.IsCollected,
		payment.Description,
		payment.TransactionAt,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a payment record by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records WHERE payment_id = $1;`
	payment, err := scanPayment(r.pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	return payment, nil
}

// ListPayments retrieves payment records newest first using token pagination.
// The cursor pairs transaction time with the record ID so records sharing a
// timestamp never repeat or drop across pages.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, limit int, nextToken *string) ([]domain.PaymentRecord, *string, error) {
	var (
		query string
		args  []any
	)
	// Fetch one extra row to know whether a next page exists.
	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query = `
			SELECT ` + paymentColumns + ` FROM payment_records
			WHERE (transaction_at, payment_id) < ($1, $2)
			ORDER BY transaction_at DESC, payment_id DESC
			LIMIT $3;
		`
		args = []any{cursorAt, cursorID, limit + 1}
	} else {
		query = `
			SELECT ` + paymentColumns + ` FROM payment_records
			ORDER BY transaction_at DESC, payment_id DESC
			LIMIT $1;
		`
		args = []any{limit + 1}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.PaymentRecord{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	var newNextToken *string
	if len(payments) > limit {
		payments = payments[:limit]
		last := payments[limit-1]
		token := pagination.EncodeToken(last.TransactionAt, last.PaymentID)
		newNextToken = &token
	}
	return payments, newNextToken, nil
}

// ListPaymentsUpTo retrieves every payment record transacted up to and
// including the given time, oldest first.
func (r *PgxPaymentRepository) ListPaymentsUpTo(ctx context.Context, asOf time.Time) ([]domain.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + ` FROM payment_records
		WHERE transaction_at <= $1
		ORDER BY transaction_at ASC, payment_id ASC;
	`
	rows, err := r.pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments up to %s: %w", asOf, err)
	}
	defer rows.Close()

	payments := []domain.PaymentRecord{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// MarkCollected flips the collected flag of a check/promissory record.
func (r *PgxPaymentRepository) MarkCollected(ctx context.Context, paymentID string, userID string, now time.Time) error {
	query := `
		UPDATE payment_records
		SET is_collected = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, paymentID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark payment %s collected: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
