package repositories

import (
	"context"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransferReader defines read operations for transfer records
type TransferReader interface {
	// FindTransferByID retrieves a specific transfer record by its unique identifier.
	FindTransferByID(ctx context.Context, transferID string) (*domain.TransferRecord, error)

	// ListTransfers retrieves a paginated list of transfer records, newest first.
	ListTransfers(ctx context.Context, limit int, offset int) ([]domain.TransferRecord, error)
}

// TransferWriter defines write operations for transfer records.
type TransferWriter interface {
	// SaveTransferInTx persists a new transfer record within a caller-owned transaction.
	SaveTransferInTx(ctx context.Context, tx pgx.Tx, record domain.TransferRecord) error
}

// TransferRepositoryFacade combines all transfer-related repository interfaces
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}

// TransferRepositoryWithTx extends TransferRepositoryFacade with transaction capabilities
type TransferRepositoryWithTx interface {
	TransferRepositoryFacade
	TransactionManager
}
