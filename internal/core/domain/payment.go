package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod classifies how money came in against a counterparty ("cari").
type PaymentMethod string

const (
	MethodCash            PaymentMethod = "CASH"
	MethodBankTransfer    PaymentMethod = "BANK_TRANSFER"
	MethodCreditCard      PaymentMethod = "CREDIT_CARD"
	MethodCheckPromissory PaymentMethod = "CHECK_PROMISSORY"
	MethodTransferToCari  PaymentMethod = "TRANSFER_TO_CARI"
	MethodWriteOff        PaymentMethod = "WRITE_OFF"
)

// IsValid reports whether the method is one of the six known payment methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCreditCard, MethodCheckPromissory, MethodTransferToCari, MethodWriteOff:
		return true
	}
	return false
}

// RequiresAccount reports whether records of this method must reference a cash account.
func (m PaymentMethod) RequiresAccount() bool {
	return m == MethodBankTransfer || m == MethodCreditCard
}

// PaymentRecord is an immutable fact representing money received against a cari
// or other reference. The only permitted mutation after creation is the explicit
// mark-collected transition on a check/promissory record.
type PaymentRecord struct {
	PaymentID        string           `json:"paymentID"` // Primary Key (UUID)
	CariID           string           `json:"cariID"`    // counterparty reference, owned externally
	Method           PaymentMethod    `json:"method"`
	CurrencyCode     CurrencyCode     `json:"currencyCode"`
	Amount           decimal.Decimal  `json:"amount"`                   // gross, positive
	CommissionRate   *decimal.Decimal `json:"commissionRate,omitempty"` // percent snapshot, credit card only
	CommissionAmount decimal.Decimal  `json:"commissionAmount"`
	NetAmount        decimal.Decimal  `json:"netAmount"`
	AccountID        *string          `json:"accountID,omitempty"` // bank/card methods
	ValorDate        *time.Time       `json:"valorDate,omitempty"` // credit card: funds usable after this date
	DueDate          *time.Time       `json:"dueDate,omitempty"`   // check/promissory
	IsCollected      bool             `json:"isCollected"`         // check/promissory
	Description      string           `json:"description"`
	TransactionAt    time.Time        `json:"transactionAt"`
	AuditFields
}

// Validate checks the structural invariants of a payment record:
// positive gross amount, a known method, the method-specific field requirements,
// and net = amount - commission.
func (p PaymentRecord) Validate() error {
	if !p.Method.IsValid() {
		return fmt.Errorf("unknown payment method %q", p.Method)
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("payment amount must be positive")
	}
	if p.Method.RequiresAccount() && (p.AccountID == nil || *p.AccountID == "") {
		return fmt.Errorf("payment method %s requires an account reference", p.Method)
	}
	if p.Method == MethodCheckPromissory && p.DueDate == nil {
		return fmt.Errorf("check/promissory payment requires a due date")
	}
	if !p.NetAmount.Add(p.CommissionAmount).Equal(p.Amount) {
		return fmt.Errorf("net amount plus commission must equal gross amount")
	}
	return nil
}

// SettlementStatus classifies whether a payment's net value is usable funds at a given "today".
type SettlementStatus string

const (
	SettlementAvailable SettlementStatus = "AVAILABLE"
	SettlementPending   SettlementStatus = "PENDING"
)

// Settlement is the result of classifying a payment record against a reference date.
// DaysRemaining is only meaningful while the status is Pending.
type Settlement struct {
	Status        SettlementStatus `json:"status"`
	DaysRemaining int              `json:"daysRemaining,omitempty"`
}
