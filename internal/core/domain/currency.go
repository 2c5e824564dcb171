package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyCode identifies one of the supported back-office currencies.
type CurrencyCode string

const (
	TRY CurrencyCode = "TRY"
	EUR CurrencyCode = "EUR"
	USD CurrencyCode = "USD"
)

// SupportedCurrencies lists every currency the ledger aggregates over, base currency first.
var SupportedCurrencies = []CurrencyCode{TRY, EUR, USD}

// IsSupported reports whether the code is one of the three ledger currencies.
func (c CurrencyCode) IsSupported() bool {
	switch c {
	case TRY, EUR, USD:
		return true
	}
	return false
}

// RateTable is a point-in-time snapshot of exchange rates against the base currency (TRY).
// TRY itself is implicitly rate 1 and never stored. Every computation treats a RateTable
// as immutable for its whole duration; refreshing produces a new snapshot.
type RateTable struct {
	Rates     map[CurrencyCode]decimal.Decimal `json:"rates"` // currency -> rate to TRY
	FetchedAt time.Time                        `json:"fetchedAt"`
}

// RateToTRY returns the rate of the given currency against TRY.
// TRY always resolves to 1, whether or not it appears in the map.
func (t RateTable) RateToTRY(code CurrencyCode) (decimal.Decimal, bool) {
	if code == TRY {
		return decimal.NewFromInt(1), true
	}
	rate, ok := t.Rates[code]
	return rate, ok
}

// Clone returns an independent copy of the snapshot so concurrent refreshes
// can never be observed mid-computation.
func (t RateTable) Clone() RateTable {
	rates := make(map[CurrencyCode]decimal.Decimal, len(t.Rates))
	for code, rate := range t.Rates {
		rates[code] = rate
	}
	return RateTable{Rates: rates, FetchedAt: t.FetchedAt}
}
