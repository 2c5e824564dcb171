package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind defines what sort of money-holding bucket a cash account is.
type AccountKind string

const (
	KindCash       AccountKind = "CASH"
	KindBank       AccountKind = "BANK"
	KindCreditCard AccountKind = "CREDIT_CARD"
)

// CashAccount represents a named money-holding bucket within the back office.
// The ledger only ever reads active accounts; creation and editing belong to
// account management.
type CashAccount struct {
	AccountID      string           `json:"accountID"` // Primary Key (UUID)
	Name           string           `json:"name"`
	Kind           AccountKind      `json:"kind"`
	CurrencyCode   CurrencyCode     `json:"currencyCode"`
	IsActive       bool             `json:"isActive"`
	CommissionRate *decimal.Decimal `json:"commissionRate,omitempty"` // percent, credit card accounts only
	Balance        decimal.Decimal  `json:"balance"`
	AuditFields
}
