package repositories

import (
	"context"

	"github.com/anatoliatours/cashledger/internal/core/domain"
)

// RateReader defines read operations for rate-table snapshots
type RateReader interface {
	// LatestRates retrieves the most recently persisted rate-table snapshot.
	LatestRates(ctx context.Context) (*domain.RateTable, error)
}

// RateWriter defines write operations for rate-table snapshots
type RateWriter interface {
	// SaveRates persists a rate-table snapshot.
	SaveRates(ctx context.Context, rates domain.RateTable, userID string) error
}

// RateRepositoryFacade combines all rate-related repository interfaces
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
