package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/cuentas/internal/domain"
)

func TestAccountValidateApply(t *testing.T) {
	account := &domain.Account{Balance: decimal.NewFromInt(100)}

	if err := account.ValidateApply(decimal.NewFromInt(-100)); err != nil {
		t.Errorf("draining to exactly zero should be allowed, got %v", err)
	}

	if err := account.ValidateApply(decimal.NewFromInt(-150)); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}

	if err := account.ValidateApply(decimal.NewFromInt(50)); err != nil {
		t.Errorf("credit should be allowed, got %v", err)
	}
}

func TestAccountApply(t *testing.T) {
	account := &domain.Account{Balance: decimal.RequireFromString("100.50")}

	got := account.Apply(decimal.RequireFromString("-0.50"))
	if !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected 100, got %s", got)
	}

	// Apply does not mutate the account.
	if !account.Balance.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("balance mutated to %s", account.Balance)
	}
}
