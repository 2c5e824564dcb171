package cashcalc

import (
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
)

// bucketFor maps a payment method to its report bucket. Transfer-to-cari and
// write-off records move no cash and are excluded from the position.
func bucketFor(method domain.PaymentMethod) (domain.MethodBucket, bool) {
	switch method {
	case domain.MethodCash:
		return domain.BucketCash, true
	case domain.MethodBankTransfer:
		return domain.BucketBank, true
	case domain.MethodCreditCard:
		return domain.BucketCreditCard, true
	case domain.MethodCheckPromissory:
		return domain.BucketCheck, true
	}
	return "", false
}

// Aggregate folds a set of payment records into the multi-currency cash position
// at the given reference date: per-bucket per-currency available/pending sums plus
// TRY-equivalent grand totals converted through the rate-table snapshot.
//
// Cash, bank and card records contribute their net amount; checks contribute
// gross since no commission applies to them. Records against inactive accounts
// are still included: history is immutable and filtering is a display concern.
// The fold is deterministic; identical inputs always produce identical output.
func Aggregate(records []domain.PaymentRecord, rates domain.RateTable, today time.Time) (domain.PositionReport, error) {
	report := domain.NewPositionReport(truncateToDay(today))

	for _, rec := range records {
		bucket, ok := bucketFor(rec.Method)
		if !ok {
			continue
		}

		value := rec.NetAmount
		if rec.Method == domain.MethodCheckPromissory {
			value = rec.Amount
		}

		totals := report.Buckets[bucket]
		if Classify(rec, today).Status == domain.SettlementAvailable {
			totals.Available[rec.CurrencyCode] = totals.Available[rec.CurrencyCode].Add(value)
		} else {
			totals.Pending[rec.CurrencyCode] = totals.Pending[rec.CurrencyCode].Add(value)
		}
		report.Buckets[bucket] = totals
	}

	// Grand totals: convert every per-currency cell into TRY through the snapshot.
	for _, bucket := range domain.MethodBuckets {
		totals := report.Buckets[bucket]
		for _, code := range domain.SupportedCurrencies {
			if !totals.Available[code].IsZero() {
				availableTRY, err := Convert(totals.Available[code], code, domain.TRY, rates)
				if err != nil {
					return domain.PositionReport{}, err
				}
				report.AvailableTRY = report.AvailableTRY.Add(availableTRY)
			}
			if !totals.Pending[code].IsZero() {
				pendingTRY, err := Convert(totals.Pending[code], code, domain.TRY, rates)
				if err != nil {
					return domain.PositionReport{}, err
				}
				report.PendingTRY = report.PendingTRY.Add(pendingTRY)
			}
		}
	}
	report.TotalTRY = report.AvailableTRY.Add(report.PendingTRY)

	for code, rate := range rates.Rates {
		report.RatesUsed[code] = rate
	}
	return report, nil
}
