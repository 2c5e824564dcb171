package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anatoliatours/cashledger/internal/apperrors"
	"github.com/anatoliatours/cashledger/internal/core/domain"
	portsrepo "github.com/anatoliatours/cashledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxAccountRepository persists cash accounts in PostgreSQL.
type PgxAccountRepository struct {
	BaseRepository
}

// NewPgxAccountRepository creates a new repository for cash account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository{pool: pool}}
}

const accountColumns = `account_id, name, kind, currency_code, is_active, commission_rate, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.CashAccount, error) {
	var account domain.CashAccount
	err := row.Scan(
		&account.AccountID,
		&account.Name,
		&account.Kind,
		&account.CurrencyCode,
		&account.IsActive,
		&account.CommissionRate,
		&account.Balance,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// SaveAccount persists a new cash account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.CashAccount) error {
	query := `
		INSERT INTO cash_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.Kind,
		account.CurrencyCode,
		account.IsActive,
		account.CommissionRate,
		account.Balance,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account %s: %w", account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a cash account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM cash_accounts WHERE account_id = $1;`
	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// FindAccountsByIDs retrieves multiple cash accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.CashAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.CashAccount{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM cash_accounts WHERE account_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// ListAccounts retrieves a paginated list of cash accounts, newest first.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.CashAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM cash_accounts ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.CashAccount{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates an existing cash account's editable details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.CashAccount) error {
	query := `
		UPDATE cash_accounts
		SET name = $2, commission_rate = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.CommissionRate,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks a cash account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE cash_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindAccountByID(ctx, accountID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		// The account exists but was already inactive.
		return apperrors.ErrConflict
	}
	return nil
}

// FindAccountsByIDsForUpdate retrieves accounts by IDs and locks the rows for
// update. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.CashAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.CashAccount{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM cash_accounts WHERE account_id = ANY($1) FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// UpdateAccountBalancesInTx applies signed balance deltas to multiple accounts
// within a given transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE cash_accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	for accountID, delta := range balanceChanges {
		cmdTag, err := tx.Exec(ctx, query, accountID, delta, now, userID)
		if err != nil {
			return fmt.Errorf("failed to apply balance change to account %s: %w", accountID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
	}
	return nil
}

func collectAccounts(rows pgx.Rows) (map[string]domain.CashAccount, error) {
	accounts := make(map[string]domain.CashAccount)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}
