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

// PgxTransferRepository persists transfer records in PostgreSQL.
type PgxTransferRepository struct {
	BaseRepository
}

// NewPgxTransferRepository creates a new repository for transfer record data.
func NewPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryWithTx {
	return &PgxTransferRepository{BaseRepository{pool: pool}}
}

const transferColumns = `transfer_id, source_account_id, target_account_id, currency_code, amount, description, transferred_at, created_at, created_by, last_updated_at, last_updated_by`

func scanTransfer(row pgx.Row) (*domain.TransferRecord, error) {
	var record domain.TransferRecord
	err := row.Scan(
		&record.TransferID,
		&record.SourceAccountID,
		&record.TargetAccountID,
		&record.CurrencyCode,
		&record.Amount,
		&record.Description,
		&record.TransferredAt,
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

// FindTransferByID retrieves a transfer record by its ID.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.TransferRecord, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_records WHERE transfer_id = $1;`
	record, err := scanTransfer(r.pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transfer by ID %s: %w", transferID, err)
	}
	return record, nil
}

// ListTransfers retrieves a paginated list of transfer records, newest first.
func (r *PgxTransferRepository) ListTransfers(ctx context.Context, limit int, offset int) ([]domain.TransferRecord, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_records ORDER BY transferred_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	records := []domain.TransferRecord{}
	for rows.Next() {
		record, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer row: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer rows: %w", err)
	}
	return records, nil
}

// SaveTransferInTx persists a new transfer record within a transaction.
func (r *PgxTransferRepository) SaveTransferInTx(ctx context.Context, tx pgx.Tx, record domain.TransferRecord) error {
	query := `
		INSERT INTO transfer_records (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		record.TransferID,
		record.SourceAccountID,
		record.TargetAccountID,
		record.CurrencyCode,
		record.Amount,
		record.Description,
		record.TransferredAt,
		record.CreatedAt,
		record.CreatedBy,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer %s: %w", record.TransferID, err)
	}
	return nil
}
