package cashcalc

import (
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
)

// Classify decides whether a payment record's net value is usable funds at the
// given reference date. It is a pure read of record state; the mark-collected
// transition on checks belongs to the payment service, never to the classifier.
//
// Rules per method:
//   - cash, bank transfer, transfer-to-cari, write-off: available immediately.
//   - credit card: available once the valor date has passed; a record without a
//     valor date is treated as immediately available (callers log the missing
//     field as a data-quality signal upstream).
//   - check/promissory: available only when the check is collected AND its due
//     date has passed; every other combination is pending.
func Classify(p domain.PaymentRecord, today time.Time) domain.Settlement {
	switch p.Method {
	case domain.MethodCreditCard:
		if p.ValorDate == nil || !dateAfter(*p.ValorDate, today) {
			return domain.Settlement{Status: domain.SettlementAvailable}
		}
		return domain.Settlement{
			Status:        domain.SettlementPending,
			DaysRemaining: daysBetween(today, *p.ValorDate),
		}
	case domain.MethodCheckPromissory:
		if p.IsCollected && p.DueDate != nil && !dateAfter(*p.DueDate, today) {
			return domain.Settlement{Status: domain.SettlementAvailable}
		}
		pending := domain.Settlement{Status: domain.SettlementPending}
		if p.DueDate != nil {
			pending.DaysRemaining = daysBetween(today, *p.DueDate)
		}
		return pending
	default:
		// Cash, bank transfer, transfer-to-cari and write-off have no deferred settlement.
		return domain.Settlement{Status: domain.SettlementAvailable}
	}
}

// truncateToDay drops the time-of-day component; settlement is day-granular.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dateAfter(a, b time.Time) bool {
	return truncateToDay(a).After(truncateToDay(b))
}

func daysBetween(from, to time.Time) int {
	return int(truncateToDay(to).Sub(truncateToDay(from)).Hours() / 24)
}
