package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/cuentas/internal/domain"
)

func TestBuildStatement(t *testing.T) {
	account := &domain.Account{
		ID:       7,
		Type:     "ahorro",
		Status:   "activa",
		Balance:  decimal.NewFromInt(120),
		ClientID: "cliente-1",
	}

	movements := []*domain.Movement{
		mov(1, 1, 100),
		mov(2, 2, -30),
		mov(3, 3, 50),
		mov(4, 4, 0),
	}

	stmt := domain.BuildStatement(account, movements)

	if stmt.AccountID != 7 {
		t.Errorf("expected account id 7, got %d", stmt.AccountID)
	}

	if stmt.TotalMovements != 4 {
		t.Errorf("expected 4 movements, got %d", stmt.TotalMovements)
	}

	if !stmt.TotalDebits.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected total debits 30, got %s", stmt.TotalDebits)
	}

	if !stmt.TotalCredits.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected total credits 150, got %s", stmt.TotalCredits)
	}

	if !stmt.Balance.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected balance 120, got %s", stmt.Balance)
	}
}

func TestBuildStatement_NoMovements(t *testing.T) {
	account := &domain.Account{ID: 1, Balance: decimal.NewFromInt(50)}

	stmt := domain.BuildStatement(account, nil)

	if stmt.TotalMovements != 0 {
		t.Errorf("expected 0 movements, got %d", stmt.TotalMovements)
	}

	if !stmt.TotalDebits.IsZero() || !stmt.TotalCredits.IsZero() {
		t.Errorf("expected zero totals, got debits=%s credits=%s", stmt.TotalDebits, stmt.TotalCredits)
	}
}
