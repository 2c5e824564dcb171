package dto

import (
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateRatesRequest defines the structure for manually setting the rate table.
// Rates are quoted against TRY; TRY itself must not appear.
type UpdateRatesRequest struct {
	Rates map[domain.CurrencyCode]decimal.Decimal `json:"rates" binding:"required"`
}

// RateTableResponse defines the structure for API responses containing the rate snapshot.
type RateTableResponse struct {
	Rates     map[domain.CurrencyCode]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                               `json:"fetchedAt"`
}

// ToRateTableResponse converts a domain.RateTable to RateTableResponse DTO
func ToRateTableResponse(table domain.RateTable) RateTableResponse {
	return RateTableResponse{
		Rates:     table.Rates,
		FetchedAt: table.FetchedAt,
	}
}
