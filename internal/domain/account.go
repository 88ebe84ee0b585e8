package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a client bank account ("cuenta"). The balance is
// authoritative; per-movement running balances are derived from it.
type Account struct {
	ID        int64
	Type      string
	Balance   decimal.Decimal
	Status    string
	ClientID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateApply checks whether applying amount would leave the account
// with a negative balance.
func (a *Account) ValidateApply(amount decimal.Decimal) error {
	if a.Balance.Add(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// Apply returns the balance after applying amount. Amount is signed:
// negative for debits, positive for credits.
func (a *Account) Apply(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
