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

// PgxRateRepository persists exchange-rate snapshots in PostgreSQL. Each
// snapshot stores one row per non-pivot currency under a shared fetch time.
type PgxRateRepository struct {
	BaseRepository
}

// NewPgxRateRepository creates a new repository for rate snapshot data.
func NewPgxRateRepository(pool *pgxpool.Pool) portsrepo.RateRepositoryFacade {
	return &PgxRateRepository{BaseRepository{pool: pool}}
}

// LatestRates retrieves the most recently persisted rate-table snapshot.
// Returns apperrors.ErrNotFound when no snapshot has been stored yet.
func (r *PgxRateRepository) LatestRates(ctx context.Context) (*domain.RateTable, error) {
	// MAX over an empty table yields a NULL row, not zero rows.
	var fetchedAt *time.Time
	err := r.pool.QueryRow(ctx, `SELECT MAX(fetched_at) FROM exchange_rates;`).Scan(&fetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest rate snapshot: %w", err)
	}
	if fetchedAt == nil {
		return nil, apperrors.ErrNotFound
	}

	rows, err := r.pool.Query(ctx, `SELECT currency_code, rate_to_try FROM exchange_rates WHERE fetched_at = $1;`, *fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate snapshot: %w", err)
	}
	defer rows.Close()

	rates := make(map[domain.CurrencyCode]decimal.Decimal)
	for rows.Next() {
		var code domain.CurrencyCode
		var rate decimal.Decimal
		if err := rows.Scan(&code, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		rates[code] = rate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate rows: %w", err)
	}
	if len(rates) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &domain.RateTable{Rates: rates, FetchedAt: *fetchedAt}, nil
}

// SaveRates persists a rate-table snapshot.
func (r *PgxRateRepository) SaveRates(ctx context.Context, rates domain.RateTable, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO exchange_rates (currency_code, rate_to_try, fetched_at, created_by)
		VALUES ($1, $2, $3, $4);
	`
	for code, rate := range rates.Rates {
		if _, err := tx.Exec(ctx, query, code, rate, rates.FetchedAt, userID); err != nil {
			return fmt.Errorf("failed to insert rate for %s: %w", code, err)
		}
	}
	return r.Commit(ctx, tx)
}
