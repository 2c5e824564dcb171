package cashcalc_test

import (
	"testing"
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/anatoliatours/cashledger/internal/utils/cashcalc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentFixture(method domain.PaymentMethod, currency domain.CurrencyCode, amount, net float64) domain.PaymentRecord {
	a := decimal.NewFromFloat(amount)
	n := decimal.NewFromFloat(net)
	return domain.PaymentRecord{
		Method:           method,
		CurrencyCode:     currency,
		Amount:           a,
		NetAmount:        n,
		CommissionAmount: a.Sub(n),
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	report, err := cashcalc.Aggregate(nil, domain.RateTable{}, time.Now())
	require.NoError(t, err)

	assert.True(t, report.AvailableTRY.IsZero())
	assert.True(t, report.PendingTRY.IsZero())
	assert.True(t, report.TotalTRY.IsZero())
	for _, bucket := range domain.MethodBuckets {
		for _, code := range domain.SupportedCurrencies {
			assert.True(t, report.Buckets[bucket].Available[code].IsZero())
			assert.True(t, report.Buckets[bucket].Pending[code].IsZero())
		}
	}
}

func TestAggregate_BucketsAndTotals(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rates := testRates() // EUR 36.50, USD 34.20

	pendingCard := paymentFixture(domain.MethodCreditCard, domain.TRY, 1000, 980)
	pendingCard.ValorDate = datePtr(today.AddDate(0, 0, 3))

	availableCard := paymentFixture(domain.MethodCreditCard, domain.TRY, 500, 490)
	availableCard.ValorDate = datePtr(today.AddDate(0, 0, -1))

	collectedCheck := paymentFixture(domain.MethodCheckPromissory, domain.USD, 500, 500)
	collectedCheck.DueDate = datePtr(today)
	collectedCheck.IsCollected = true

	uncollectedCheck := paymentFixture(domain.MethodCheckPromissory, domain.USD, 200, 200)
	uncollectedCheck.DueDate = datePtr(today.AddDate(0, 0, -2))

	records := []domain.PaymentRecord{
		paymentFixture(domain.MethodCash, domain.TRY, 300, 300),
		paymentFixture(domain.MethodCash, domain.EUR, 100, 100),
		paymentFixture(domain.MethodBankTransfer, domain.EUR, 50, 50),
		pendingCard,
		availableCard,
		collectedCheck,
		uncollectedCheck,
		// Excluded from the cash position entirely.
		paymentFixture(domain.MethodTransferToCari, domain.TRY, 900, 900),
		paymentFixture(domain.MethodWriteOff, domain.TRY, 400, 400),
	}

	report, err := cashcalc.Aggregate(records, rates, today)
	require.NoError(t, err)

	cash := report.Buckets[domain.BucketCash]
	assert.True(t, decimal.NewFromInt(300).Equal(cash.Available[domain.TRY]))
	assert.True(t, decimal.NewFromInt(100).Equal(cash.Available[domain.EUR]))

	bank := report.Buckets[domain.BucketBank]
	assert.True(t, decimal.NewFromInt(50).Equal(bank.Available[domain.EUR]))

	card := report.Buckets[domain.BucketCreditCard]
	assert.True(t, decimal.NewFromInt(490).Equal(card.Available[domain.TRY]))
	assert.True(t, decimal.NewFromInt(980).Equal(card.Pending[domain.TRY]))

	check := report.Buckets[domain.BucketCheck]
	assert.True(t, decimal.NewFromInt(500).Equal(check.Available[domain.USD]), "checks sum gross amounts")
	assert.True(t, decimal.NewFromInt(200).Equal(check.Pending[domain.USD]))

	// Grand totals: every cell converted to TRY and summed.
	eurRate := decimal.NewFromFloat(36.50)
	usdRate := decimal.NewFromFloat(34.20)
	wantAvailable := decimal.NewFromInt(300).
		Add(decimal.NewFromInt(150).Mul(eurRate)). // 100 cash + 50 bank EUR
		Add(decimal.NewFromInt(490)).
		Add(decimal.NewFromInt(500).Mul(usdRate))
	wantPending := decimal.NewFromInt(980).
		Add(decimal.NewFromInt(200).Mul(usdRate))

	assert.True(t, wantAvailable.Equal(report.AvailableTRY), "want %s got %s", wantAvailable, report.AvailableTRY)
	assert.True(t, wantPending.Equal(report.PendingTRY), "want %s got %s", wantPending, report.PendingTRY)
	assert.True(t, wantAvailable.Add(wantPending).Equal(report.TotalTRY))
}

// Partition completeness: available + pending equals the bucket's full value
// per currency, whichever side of the settlement boundary records land on.
func TestAggregate_PartitionCompleteness(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rates := testRates()

	var records []domain.PaymentRecord
	grossByCurrency := map[domain.CurrencyCode]decimal.Decimal{}
	offsets := []int{-10, -1, 0, 1, 5, 30}
	for i, off := range offsets {
		currency := domain.SupportedCurrencies[i%len(domain.SupportedCurrencies)]
		rec := paymentFixture(domain.MethodCreditCard, currency, float64(100*(i+1)), float64(98*(i+1)))
		rec.ValorDate = datePtr(today.AddDate(0, 0, off))
		records = append(records, rec)
		grossByCurrency[currency] = grossByCurrency[currency].Add(rec.NetAmount)
	}

	report, err := cashcalc.Aggregate(records, rates, today)
	require.NoError(t, err)

	card := report.Buckets[domain.BucketCreditCard]
	for code, want := range grossByCurrency {
		got := card.Available[code].Add(card.Pending[code])
		assert.True(t, want.Equal(got), "%s: want %s got %s", code, want, got)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rates := testRates()

	rec := paymentFixture(domain.MethodCreditCard, domain.EUR, 1000, 980)
	rec.ValorDate = datePtr(today.AddDate(0, 0, 2))
	records := []domain.PaymentRecord{
		rec,
		paymentFixture(domain.MethodCash, domain.USD, 120, 120),
	}

	first, err := cashcalc.Aggregate(records, rates, today)
	require.NoError(t, err)
	second, err := cashcalc.Aggregate(records, rates, today)
	require.NoError(t, err)

	assert.True(t, first.AvailableTRY.Equal(second.AvailableTRY))
	assert.True(t, first.PendingTRY.Equal(second.PendingTRY))
	assert.True(t, first.TotalTRY.Equal(second.TotalTRY))
	for _, bucket := range domain.MethodBuckets {
		for _, code := range domain.SupportedCurrencies {
			assert.True(t, first.Buckets[bucket].Available[code].Equal(second.Buckets[bucket].Available[code]))
			assert.True(t, first.Buckets[bucket].Pending[code].Equal(second.Buckets[bucket].Pending[code]))
		}
	}
}

func TestAggregate_UnknownCurrencyInRecords(t *testing.T) {
	today := time.Now()
	rates := domain.RateTable{Rates: map[domain.CurrencyCode]decimal.Decimal{}}

	records := []domain.PaymentRecord{
		paymentFixture(domain.MethodCash, domain.EUR, 100, 100),
	}

	_, err := cashcalc.Aggregate(records, rates, today)
	assert.ErrorIs(t, err, cashcalc.ErrUnknownCurrency)
}
