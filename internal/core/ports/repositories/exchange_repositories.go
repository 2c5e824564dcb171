package repositories

import (
	"context"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExchangeReader defines read operations for exchange records
type ExchangeReader interface {
	// FindExchangeByID retrieves a specific exchange record by its unique identifier.
	FindExchangeByID(ctx context.Context, exchangeID string) (*domain.ExchangeRecord, error)

	// ListExchanges retrieves a paginated list of exchange records, newest first.
	ListExchanges(ctx context.Context, limit int, offset int) ([]domain.ExchangeRecord, error)
}

// ExchangeWriter defines write operations for exchange records.
// Both methods run inside a caller-owned transaction so the record append
// and the two balance legs commit or roll back together.
type ExchangeWriter interface {
	// SaveExchangeInTx persists a new exchange record within a transaction.
	SaveExchangeInTx(ctx context.Context, tx pgx.Tx, record domain.ExchangeRecord) error

	// DeleteExchangeInTx removes an exchange record within a transaction.
	DeleteExchangeInTx(ctx context.Context, tx pgx.Tx, exchangeID string) error
}

// ExchangeRepositoryFacade combines all exchange-related repository interfaces
type ExchangeRepositoryFacade interface {
	ExchangeReader
	ExchangeWriter
}

// ExchangeRepositoryWithTx extends ExchangeRepositoryFacade with transaction capabilities
type ExchangeRepositoryWithTx interface {
	ExchangeRepositoryFacade
	TransactionManager
}
