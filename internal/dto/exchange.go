package dto

import (
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRequest defines the structure for a two-leg currency exchange
// between two cash accounts.
type CreateExchangeRequest struct {
	SourceAccountID string              `json:"sourceAccountID" binding:"required"`
	TargetAccountID string              `json:"targetAccountID" binding:"required"`
	SourceCurrency  domain.CurrencyCode `json:"sourceCurrency" binding:"required,oneof=TRY EUR USD"`
	TargetCurrency  domain.CurrencyCode `json:"targetCurrency" binding:"required,oneof=TRY EUR USD"`
	Amount          decimal.Decimal     `json:"amount" binding:"required"`
	Rate            decimal.Decimal     `json:"rate" binding:"required"`
	ExchangedAt     *time.Time          `json:"exchangedAt,omitempty"` // defaults to now
}

// ListExchangesParams holds pagination parameters for listing exchange records.
type ListExchangesParams struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ExchangeResponse defines the structure for API responses containing exchange details.
type ExchangeResponse struct {
	ExchangeID      string              `json:"exchangeID"`
	SourceAccountID string              `json:"sourceAccountID"`
	TargetAccountID string              `json:"targetAccountID"`
	SourceCurrency  domain.CurrencyCode `json:"sourceCurrency"`
	TargetCurrency  domain.CurrencyCode `json:"targetCurrency"`
	SourceAmount    decimal.Decimal     `json:"sourceAmount"`
	TargetAmount    decimal.Decimal     `json:"targetAmount"`
	Rate            decimal.Decimal     `json:"rate"`
	ExchangedAt     time.Time           `json:"exchangedAt"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
}

// ToExchangeResponse converts a domain.ExchangeRecord to ExchangeResponse DTO
func ToExchangeResponse(record *domain.ExchangeRecord) ExchangeResponse {
	return ExchangeResponse{
		ExchangeID:      record.ExchangeID,
		SourceAccountID: record.SourceAccountID,
		TargetAccountID: record.TargetAccountID,
		SourceCurrency:  record.SourceCurrency,
		TargetCurrency:  record.TargetCurrency,
		SourceAmount:    record.SourceAmount,
		TargetAmount:    record.TargetAmount,
		Rate:            record.Rate,
		ExchangedAt:     record.ExchangedAt,
		CreatedAt:       record.CreatedAt,
		CreatedBy:       record.CreatedBy,
	}
}

// ToExchangeResponses converts a slice of domain.ExchangeRecord to response DTOs.
func ToExchangeResponses(records []domain.ExchangeRecord) []ExchangeResponse {
	responses := make([]ExchangeResponse, len(records))
	for i := range records {
		responses[i] = ToExchangeResponse(&records[i])
	}
	return responses
}
