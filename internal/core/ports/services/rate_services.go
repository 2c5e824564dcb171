package services

import (
	"context"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/anatoliatours/cashledger/internal/dto"
	"github.com/shopspring/decimal"
)

// RateSource is the outbound port to an external currency-rate provider.
type RateSource interface {
	// FetchRates retrieves the current rates of the foreign currencies against TRY.
	FetchRates(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error)
}

// RateSvcFacade owns the current rate-table snapshot. Computations never read
// a mutable global; they take a snapshot obtained here and pass it along.
type RateSvcFacade interface {
	// Snapshot returns an independent copy of the current rate table.
	Snapshot() domain.RateTable

	// Refresh pulls fresh rates from the external source and swaps the snapshot.
	Refresh(ctx context.Context) error

	// SetRates replaces the snapshot with manually supplied rates.
	SetRates(ctx context.Context, req dto.UpdateRatesRequest, userID string) (domain.RateTable, error)
}
