package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MethodBucket groups payment methods for the cash-position report.
// Transfer-to-cari and write-off records carry no cash and have no bucket.
type MethodBucket string

const (
	BucketCash       MethodBucket = "CASH"
	BucketBank       MethodBucket = "BANK"
	BucketCreditCard MethodBucket = "CREDIT_CARD"
	BucketCheck      MethodBucket = "CHECK_PROMISSORY"
)

// MethodBuckets lists the report buckets in display order.
var MethodBuckets = []MethodBucket{BucketCash, BucketBank, BucketCreditCard, BucketCheck}

// BucketTotals holds the per-currency available/pending sums of one method bucket.
// Cash, bank and card buckets sum net amounts; the check bucket sums gross amounts
// since no commission applies to checks.
type BucketTotals struct {
	Available map[CurrencyCode]decimal.Decimal `json:"available"`
	Pending   map[CurrencyCode]decimal.Decimal `json:"pending"`
}

// PositionReport is the multi-currency cash position at a reference date:
// per-bucket per-currency available/pending amounts plus TRY-equivalent
// grand totals computed through a rate-table snapshot.
type PositionReport struct {
	AsOf         time.Time                       `json:"asOf"`
	Buckets      map[MethodBucket]BucketTotals   `json:"buckets"`
	AvailableTRY decimal.Decimal                 `json:"availableTRY"`
	PendingTRY   decimal.Decimal                 `json:"pendingTRY"`
	TotalTRY     decimal.Decimal                 `json:"totalTRY"`
	RatesUsed    map[CurrencyCode]decimal.Decimal `json:"ratesUsed"`
}

// NewPositionReport returns an empty report with every bucket/currency cell zeroed.
func NewPositionReport(asOf time.Time) PositionReport {
	buckets := make(map[MethodBucket]BucketTotals, len(MethodBuckets))
	for _, b := range MethodBuckets {
		totals := BucketTotals{
			Available: make(map[CurrencyCode]decimal.Decimal, len(SupportedCurrencies)),
			Pending:   make(map[CurrencyCode]decimal.Decimal, len(SupportedCurrencies)),
		}
		for _, c := range SupportedCurrencies {
			totals.Available[c] = decimal.Zero
			totals.Pending[c] = decimal.Zero
		}
		buckets[b] = totals
	}
	return PositionReport{
		AsOf:         asOf,
		Buckets:      buckets,
		AvailableTRY: decimal.Zero,
		PendingTRY:   decimal.Zero,
		TotalTRY:     decimal.Zero,
		RatesUsed:    make(map[CurrencyCode]decimal.Decimal),
	}
}
