package dto

import (
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the structure for moving an amount between two
// same-currency cash accounts.
type CreateTransferRequest struct {
	SourceAccountID string          `json:"sourceAccountID" binding:"required"`
	TargetAccountID string          `json:"targetAccountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description"`
	TransferredAt   *time.Time      `json:"transferredAt,omitempty"` // defaults to now
}

// ListTransfersParams holds pagination parameters for listing transfer records.
type ListTransfersParams struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// TransferResponse defines the structure for API responses containing transfer details.
type TransferResponse struct {
	TransferID      string              `json:"transferID"`
	SourceAccountID string              `json:"sourceAccountID"`
	TargetAccountID string              `json:"targetAccountID"`
	CurrencyCode    domain.CurrencyCode `json:"currencyCode"`
	Amount          decimal.Decimal     `json:"amount"`
	Description     string              `json:"description"`
	TransferredAt   time.Time           `json:"transferredAt"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
}

// ToTransferResponse converts a domain.TransferRecord to TransferResponse DTO
func ToTransferResponse(record *domain.TransferRecord) TransferResponse {
	return TransferResponse{
		TransferID:      record.TransferID,
		SourceAccountID: record.SourceAccountID,
		TargetAccountID: record.TargetAccountID,
		CurrencyCode:    record.CurrencyCode,
		Amount:          record.Amount,
		Description:     record.Description,
		TransferredAt:   record.TransferredAt,
		CreatedAt:       record.CreatedAt,
		CreatedBy:       record.CreatedBy,
	}
}

// ToTransferResponses converts a slice of domain.TransferRecord to response DTOs.
func ToTransferResponses(records []domain.TransferRecord) []TransferResponse {
	responses := make([]TransferResponse, len(records))
	for i := range records {
		responses[i] = ToTransferResponse(&records[i])
	}
	return responses
}
