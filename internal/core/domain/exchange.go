package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRecord is the immutable audit fact of a two-leg currency conversion
// between two cash accounts. TargetAmount = SourceAmount * Rate; both legs and
// the rate are stored so that deleting the record can reverse the operation
// exactly, without ever consulting a current rate.
type ExchangeRecord struct {
	ExchangeID      string          `json:"exchangeID"` // Primary Key (UUID)
	SourceAccountID string          `json:"sourceAccountID"`
	TargetAccountID string          `json:"targetAccountID"`
	SourceCurrency  CurrencyCode    `json:"sourceCurrency"`
	TargetCurrency  CurrencyCode    `json:"targetCurrency"`
	SourceAmount    decimal.Decimal `json:"sourceAmount"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	Rate            decimal.Decimal `json:"rate"`
	ExchangedAt     time.Time       `json:"exchangedAt"`
	AuditFields
}
