// Package cashcalc holds the pure calculation core of the cash ledger:
// currency conversion, commission, settlement classification and the
// cash-position fold. Nothing here performs I/O or mutates shared state,
// so every function may be called concurrently.
package cashcalc

import (
	"errors"
	"fmt"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownCurrency is returned when a non-TRY currency is absent from the rate table.
	ErrUnknownCurrency = errors.New("currency not present in rate table")
	// ErrInvalidAmount is returned for non-positive amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidCommissionRate is returned for commission rates outside [0,100].
	ErrInvalidCommissionRate = errors.New("commission rate must be between 0 and 100")
)

// Convert converts an amount between two supported currencies through the
// TRY-pivoted rate table. Same-currency conversion is the identity; a
// foreign-to-foreign conversion crosses through TRY.
func Convert(amount decimal.Decimal, from, to domain.CurrencyCode, rates domain.RateTable) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	fromRate, ok := rates.RateToTRY(from)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, from)
	}
	toRate, ok := rates.RateToTRY(to)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
	}

	if to == domain.TRY {
		return amount.Mul(fromRate), nil
	}
	if from == domain.TRY {
		return amount.Div(toRate), nil
	}
	return amount.Mul(fromRate).Div(toRate), nil
}
