package services

import (
	"context"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/anatoliatours/cashledger/internal/dto"
)

// ExchangeSvcFacade defines the two-leg currency exchange operations.
type ExchangeSvcFacade interface {
	// CreateExchange debits the source account, credits the target account at
	// the given rate and appends an exchange record, atomically.
	CreateExchange(ctx context.Context, req dto.CreateExchangeRequest, creatorUserID string) (*domain.ExchangeRecord, error)

	// GetExchangeByID retrieves an exchange record by its identifier.
	GetExchangeByID(ctx context.Context, exchangeID string) (*domain.ExchangeRecord, error)

	// ListExchanges retrieves a paginated list of exchange records.
	ListExchanges(ctx context.Context, params dto.ListExchangesParams) ([]domain.ExchangeRecord, error)

	// DeleteExchange removes an exchange record and reverses both legs exactly
	// as stored, never from a current rate.
	DeleteExchange(ctx context.Context, exchangeID string, userID string) error
}
