package cashcalc

import (
	"fmt"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeNet derives the commission and net (settleable) amounts of a gross payment.
// Commission applies only to credit-card payments carrying a rate; every other
// method settles gross. net = amount - commission, commission = amount * rate / 100.
func ComputeNet(amount decimal.Decimal, method domain.PaymentMethod, ratePercent *decimal.Decimal) (commission, net decimal.Decimal, err error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	if ratePercent != nil && (ratePercent.IsNegative() || ratePercent.GreaterThan(oneHundred)) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: got %s", ErrInvalidCommissionRate, ratePercent)
	}

	commission = decimal.Zero
	if method == domain.MethodCreditCard && ratePercent != nil {
		commission = amount.Mul(*ratePercent).Div(oneHundred)
	}
	return commission, amount.Sub(commission), nil
}
