package dto

import (
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterPaymentRequest defines the structure for registering a payment against a cari.
type RegisterPaymentRequest struct {
	CariID         string               `json:"cariID" binding:"required"`
	Method         domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CREDIT_CARD CHECK_PROMISSORY TRANSFER_TO_CARI WRITE_OFF"`
	CurrencyCode   domain.CurrencyCode  `json:"currencyCode" binding:"required,oneof=TRY EUR USD"`
	Amount         decimal.Decimal      `json:"amount" binding:"required"`
	CommissionRate *decimal.Decimal     `json:"commissionRate,omitempty"` // percent override; defaults to the card account's rate
	AccountID      *string              `json:"accountID,omitempty"`      // required for BANK_TRANSFER and CREDIT_CARD
	ValorDate      *time.Time           `json:"valorDate,omitempty"`      // CREDIT_CARD only
	DueDate        *time.Time           `json:"dueDate,omitempty"`        // CHECK_PROMISSORY only
	Description    string               `json:"description"`
	TransactionAt  *time.Time           `json:"transactionAt,omitempty"` // defaults to now
}

// ListPaymentsParams holds token-pagination parameters for listing payments.
type ListPaymentsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// PaymentResponse defines the structure for API responses containing payment details.
type PaymentResponse struct {
	PaymentID        string               `json:"paymentID"`
	CariID           string               `json:"cariID"`
	Method           domain.PaymentMethod `json:"method"`
	CurrencyCode     domain.CurrencyCode  `json:"currencyCode"`
	Amount           decimal.Decimal      `json:"amount"`
	CommissionRate   *decimal.Decimal     `json:"commissionRate,omitempty"`
	CommissionAmount decimal.Decimal      `json:"commissionAmount"`
	NetAmount        decimal.Decimal      `json:"netAmount"`
	AccountID        *string              `json:"accountID,omitempty"`
	ValorDate        *time.Time           `json:"valorDate,omitempty"`
	DueDate          *time.Time           `json:"dueDate,omitempty"`
	IsCollected      bool                 `json:"isCollected"`
	Description      string               `json:"description"`
	TransactionAt    time.Time            `json:"transactionAt"`
	Settlement       *domain.Settlement   `json:"settlement,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	CreatedBy        string               `json:"createdBy"`
}

// ListPaymentsResponse wraps a page of payments plus the token for the next page.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPaymentResponse converts a domain.PaymentRecord to PaymentResponse DTO.
// The settlement classification is attached by the caller when relevant.
func ToPaymentResponse(p *domain.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.PaymentID,
		CariID:           p.CariID,
		Method:           p.Method,
		CurrencyCode:     p.CurrencyCode,
		Amount:           p.Amount,
		CommissionRate:   p.CommissionRate,
		CommissionAmount: p.CommissionAmount,
		NetAmount:        p.NetAmount,
		AccountID:        p.AccountID,
		ValorDate:        p.ValorDate,
		DueDate:          p.DueDate,
		IsCollected:      p.IsCollected,
		Description:      p.Description,
		TransactionAt:    p.TransactionAt,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
	}
}

// ToPaymentResponses converts a slice of domain.PaymentRecord to response DTOs.
func ToPaymentResponses(payments []domain.PaymentRecord) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
