package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/anatoliatours/cashledger/internal/apperrors"
	"github.com/anatoliatours/cashledger/internal/core/domain"
	portsrepo "github.com/anatoliatours/cashledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRepository persists exchange records in PostgreSQL.
type PgxExchangeRepository struct {
	BaseRepository
}

// NewPgxExchangeRepository creates a new repository for exchange record data.
func NewPgxExchangeRepository(pool *pgxpool.Pool) portsrepo.ExchangeRepositoryWithTx {
	return &PgxExchangeRepository{BaseRepository{pool: pool}}
}

const exchangeColumns = `exchange_id, source_account_id, target_account_id, source_currency, target_currency, source_amount, target_amount, rate, exchanged_at, created_at, created_by, last_updated_at, last_updated_by`

func scanExchange(row pgx.Row) (*domain.ExchangeRecord, error) {
	var record domain.ExchangeRecord
	err := row.Scan(
		&record.ExchangeID,
		&record.SourceAccountID,
		&record.TargetAccountID,
		&record.SourceCurrency,
		&record.TargetCurrency,
		&record.SourceAmount,
		&record.TargetAmount,
		&record.Rate,
		&record.ExchangedAt,
		&record.CreatedAt,
		&record.CreatedBy,
		&record.LastUpdatedAt,
		&record.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindExchangeByID retrieves an exchange record by its ID.
func (r *PgxExchangeRepository) FindExchangeByID(ctx context.Context, exchangeID string) (*domain.ExchangeRecord, error) {
	query := `SELECT ` + exchangeColumns + ` FROM exchange_records WHERE exchange_id = $1;`
	record, err := scanExchange(r.pool.QueryRow(ctx, query, exchangeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange by ID %s: %w", exchangeID, err)
	}
	return record, nil
}

// ListExchanges retrieves a paginated list of exchange records, newest first.
func (r *PgxExchangeRepository) ListExchanges(ctx context.Context, limit int, offset int) ([]domain.ExchangeRecord, error) {
	query := `SELECT ` + exchangeColumns + ` FROM exchange_records ORDER BY exchanged_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()

	records := []domain.ExchangeRecord{}
	for rows.Next() {
		record, err := scanExchange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange row: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rows: %w", err)
	}
	return records, nil
}

// SaveExchangeInTx persists a new exchange record within a transaction.
func (r *PgxExchangeRepository) SaveExchangeInTx(ctx context.Context, tx pgx.Tx, record domain.ExchangeRecord) error {
	query := `
		INSERT INTO exchange_records (` + exchangeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		record.ExchangeID,
		record.SourceAccountID,
		record.TargetAccountID,
		record.SourceCurrency,
		record.TargetCurrency,
		record.SourceAmount,
		record.TargetAmount,
		record.Rate,
		record.ExchangedAt,
		record.CreatedAt,
		record.CreatedBy,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exchange %s: %w", record.ExchangeID, err)
	}
	return nil
}

// DeleteExchangeInTx removes an exchange record within a transaction.
func (r *PgxExchangeRepository) DeleteExchangeInTx(ctx context.Context, tx pgx.Tx, exchangeID string) error {
	query := `DELETE FROM exchange_records WHERE exchange_id = $1;`
	cmdTag, err := tx.Exec(ctx, query, exchangeID)
	if err != nil {
		return fmt.Errorf("failed to delete exchange %s: %w", exchangeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
