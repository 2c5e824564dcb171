package services

import (
	"context"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/anatoliatours/cashledger/internal/dto"
)

// TransferSvcFacade defines the same-currency transfer operations between accounts.
type TransferSvcFacade interface {
	// CreateTransfer moves an amount between two same-currency accounts and
	// appends a transfer record, atomically.
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.TransferRecord, error)

	// GetTransferByID retrieves a transfer record by its identifier.
	GetTransferByID(ctx context.Context, transferID string) (*domain.TransferRecord, error)

	// ListTransfers retrieves a paginated list of transfer records.
	ListTransfers(ctx context.Context, params dto.ListTransfersParams) ([]domain.TransferRecord, error)
}
