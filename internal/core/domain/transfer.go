package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRecord is the immutable audit fact of moving an amount between two
// cash accounts holding the same currency. No commission and no settlement
// delay apply to transfers.
type TransferRecord struct {
	TransferID      string          `json:"transferID"` // Primary Key (UUID)
	SourceAccountID string          `json:"sourceAccountID"`
	TargetAccountID string          `json:"targetAccountID"`
	CurrencyCode    CurrencyCode    `json:"currencyCode"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransferredAt   time.Time       `json:"transferredAt"`
	AuditFields
}
