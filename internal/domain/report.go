package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is a per-client account statement over a date range.
type Report struct {
	ID          string
	ClientID    string
	From        time.Time
	To          time.Time
	GeneratedAt time.Time
	Accounts    []*AccountStatement
}

// AccountStatement summarizes one account inside a report: its movements in
// the requested range plus debit/credit totals.
type AccountStatement struct {
	AccountID      int64
	AccountType    string
	Status         string
	Balance        decimal.Decimal
	Movements      []*Movement
	TotalMovements int
	TotalDebits    decimal.Decimal
	TotalCredits   decimal.Decimal
}

// BuildStatement assembles the statement for one account. Debits are summed
// as absolute values; movements with a zero amount count toward neither
// total.
func BuildStatement(account *Account, movements []*Movement) *AccountStatement {
	debits := decimal.Zero
	credits := decimal.Zero

	for _, m := range movements {
		switch {
		case m.IsDebit():
			debits = debits.Add(m.Amount.Abs())
		case m.IsCredit():
			credits = credits.Add(m.Amount)
		}
	}

	return &AccountStatement{
		AccountID:      account.ID,
		AccountType:    account.Type,
		Status:         account.Status,
		Balance:        account.Balance,
		Movements:      movements,
		TotalMovements: len(movements),
		TotalDebits:    debits,
		TotalCredits:   credits,
	}
}
