package dto

import (
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCashAccountRequest defines the structure for creating a new cash account.
type CreateCashAccountRequest struct {
	Name           string              `json:"name" binding:"required"`
	Kind           domain.AccountKind  `json:"kind" binding:"required,oneof=CASH BANK CREDIT_CARD"`
	CurrencyCode   domain.CurrencyCode `json:"currencyCode" binding:"required,oneof=TRY EUR USD"`
	CommissionRate *decimal.Decimal    `json:"commissionRate,omitempty"` // percent, credit card accounts only
}

// ListAccountsParams holds pagination parameters for listing cash accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// CashAccountResponse defines the structure for API responses containing account details.
type CashAccountResponse struct {
	AccountID      string              `json:"accountID"`
	Name           string              `json:"name"`
	Kind           domain.AccountKind  `json:"kind"`
	CurrencyCode   domain.CurrencyCode `json:"currencyCode"`
	IsActive       bool                `json:"isActive"`
	CommissionRate *decimal.Decimal    `json:"commissionRate,omitempty"`
	Balance        decimal.Decimal     `json:"balance"`
	CreatedAt      time.Time           `json:"createdAt"`
	LastUpdatedAt  time.Time           `json:"lastUpdatedAt"`
}

// ToCashAccountResponse converts a domain.CashAccount to CashAccountResponse DTO
func ToCashAccountResponse(account *domain.CashAccount) CashAccountResponse {
	return CashAccountResponse{
		AccountID:      account.AccountID,
		Name:           account.Name,
		Kind:           account.Kind,
		CurrencyCode:   account.CurrencyCode,
		IsActive:       account.IsActive,
		CommissionRate: account.CommissionRate,
		Balance:        account.Balance,
		CreatedAt:      account.CreatedAt,
		LastUpdatedAt:  account.LastUpdatedAt,
	}
}

// ToCashAccountResponses converts a slice of domain.CashAccount to response DTOs.
func ToCashAccountResponses(accounts []domain.CashAccount) []CashAccountResponse {
	responses := make([]CashAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToCashAccountResponse(&accounts[i])
	}
	return responses
}
