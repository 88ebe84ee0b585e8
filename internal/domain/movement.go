package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement represents a single signed ledger movement ("movimiento") on an
// account. Amount ("valor") is negative for debits and positive for
// credits; Balance ("saldo") is the account's running balance immediately
// after this movement was applied, derived rather than authoritative.
type Movement struct {
	ID        int64
	AccountID int64
	Date      time.Time
	Type      string
	Amount    decimal.Decimal
	Balance   decimal.Decimal
}

// IsDebit reports whether the movement takes money out of the account.
func (m *Movement) IsDebit() bool {
	return m.Amount.IsNegative()
}

// IsCredit reports whether the movement puts money into the account.
func (m *Movement) IsCredit() bool {
	return m.Amount.IsPositive()
}
