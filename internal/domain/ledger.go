package domain

import "github.com/shopspring/decimal"

// Running-balance recomputation. An account's balance is the only
// authoritative figure; the opening balance the account held before any
// movement existed is reconstructed from it on every edit instead of being
// cached, so repeated edits cannot make it drift.

// OpeningBalance reconstructs the balance the account held before any of
// its movements were applied. movements is the full history in date order
// (stable id tie-break); oldAmount is substituted for the movement with
// targetID wherever it appears, so the reconstruction stays exact even
// while the target carries an edited amount in memory.
func OpeningBalance(currentBalance decimal.Decimal, movements []*Movement, targetID int64, oldAmount decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		if m.ID == targetID {
			sum = sum.Add(oldAmount)
		} else {
			sum = sum.Add(m.Amount)
		}
	}

	return currentBalance.Sub(sum)
}

// RunningBalanceThrough accumulates movement amounts in order starting
// from opening, up to and including the movement with targetID, for which
// newAmount is used in place of its stored amount. Movements after the
// target are not touched; the caller adjusts the account balance itself by
// the amount delta.
func RunningBalanceThrough(opening decimal.Decimal, movements []*Movement, targetID int64, newAmount decimal.Decimal) decimal.Decimal {
	running := opening
	for _, m := range movements {
		if m.ID == targetID {
			return running.Add(newAmount)
		}
		running = running.Add(m.Amount)
	}

	return running
}

// RecomputedBalance returns the running balance ("saldo") the movement with
// targetID holds after its amount changes from oldAmount to newAmount.
//
// Known limitation, kept for compatibility with the service this replaces:
// only the target's saldo is recomputed. Movements dated after the target
// keep their stored saldo, which no longer lines up with the edited
// sequence; the account balance itself remains exact.
func RecomputedBalance(currentBalance decimal.Decimal, movements []*Movement, targetID int64, oldAmount, newAmount decimal.Decimal) decimal.Decimal {
	opening := OpeningBalance(currentBalance, movements, targetID, oldAmount)

	return RunningBalanceThrough(opening, movements, targetID, newAmount)
}
