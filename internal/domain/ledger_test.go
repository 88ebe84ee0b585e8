package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cuentas/internal/domain"
)

func mov(id int64, day int, amount int64) *domain.Movement {
	return &domain.Movement{
		ID:     id,
		Date:   time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(amount),
	}
}

func TestOpeningBalance(t *testing.T) {
	tests := []struct {
		name      string
		balance   int64
		movements []*domain.Movement
		targetID  int64
		oldAmount int64
		expected  int64
	}{
		{
			name:      "no movements",
			balance:   100,
			movements: nil,
			targetID:  1,
			oldAmount: 0,
			expected:  100,
		},
		{
			name:      "single movement",
			balance:   150,
			movements: []*domain.Movement{mov(1, 1, 50)},
			targetID:  1,
			oldAmount: 50,
			expected:  100,
		},
		{
			name:      "target substituted with old amount",
			balance:   70,
			movements: []*domain.Movement{mov(1, 1, 40), mov(2, 2, -30)},
			targetID:  1,
			oldAmount: 100,
			expected:  0,
		},
		{
			name:      "mixed debits and credits",
			balance:   25,
			movements: []*domain.Movement{mov(1, 1, 100), mov(2, 2, -80), mov(3, 3, 5)},
			targetID:  3,
			oldAmount: 5,
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.OpeningBalance(
				decimal.NewFromInt(tt.balance),
				tt.movements,
				tt.targetID,
				decimal.NewFromInt(tt.oldAmount),
			)

			if !got.Equal(decimal.NewFromInt(tt.expected)) {
				t.Errorf("expected opening balance %d, got %s", tt.expected, got)
			}
		})
	}
}

func TestRecomputedBalance_MiddleEdit(t *testing.T) {
	// Account started at 0: [+100 at day 1, -30 at day 2], balance 70.
	// Editing the first movement to +40 must yield saldo 40 for it.
	movements := []*domain.Movement{mov(1, 1, 100), mov(2, 2, -30)}

	saldo := domain.RecomputedBalance(
		decimal.NewFromInt(70),
		movements,
		1,
		decimal.NewFromInt(100),
		decimal.NewFromInt(40),
	)

	if !saldo.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected recomputed saldo 40, got %s", saldo)
	}
}

func TestRecomputedBalance_LastMovement(t *testing.T) {
	movements := []*domain.Movement{mov(1, 1, 100), mov(2, 2, -30), mov(3, 3, 10)}

	// Opening balance is 80 - 100 + 30 - 10 = 0; editing the last movement
	// to +25 accumulates 100 - 30 + 25 = 95.
	saldo := domain.RecomputedBalance(
		decimal.NewFromInt(80),
		movements,
		3,
		decimal.NewFromInt(10),
		decimal.NewFromInt(25),
	)

	if !saldo.Equal(decimal.NewFromInt(95)) {
		t.Errorf("expected recomputed saldo 95, got %s", saldo)
	}
}

func TestRecomputedBalance_NonZeroOpeningBalance(t *testing.T) {
	// Account opened with 500, then [-200, +100]; current balance 400.
	movements := []*domain.Movement{mov(1, 1, -200), mov(2, 2, 100)}

	saldo := domain.RecomputedBalance(
		decimal.NewFromInt(400),
		movements,
		1,
		decimal.NewFromInt(-200),
		decimal.NewFromInt(-50),
	)

	// Opening 500, first movement edited to -50 => saldo 450.
	if !saldo.Equal(decimal.NewFromInt(450)) {
		t.Errorf("expected recomputed saldo 450, got %s", saldo)
	}
}

func TestRecomputedBalance_Deterministic(t *testing.T) {
	movements := []*domain.Movement{mov(1, 1, 10), mov(2, 1, 20), mov(3, 1, 30)}

	first := domain.RecomputedBalance(decimal.NewFromInt(60), movements, 2, decimal.NewFromInt(20), decimal.NewFromInt(5))
	second := domain.RecomputedBalance(decimal.NewFromInt(60), movements, 2, decimal.NewFromInt(20), decimal.NewFromInt(5))

	if !first.Equal(second) {
		t.Errorf("recomputation not reproducible: %s vs %s", first, second)
	}

	// Same-date movements resolve by slice order: opening 0, +10, then target.
	if !first.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected saldo 15, got %s", first)
	}
}

func TestRunningBalanceThrough_TargetAbsent(t *testing.T) {
	movements := []*domain.Movement{mov(1, 1, 10), mov(2, 2, 20)}

	got := domain.RunningBalanceThrough(decimal.Zero, movements, 99, decimal.NewFromInt(5))

	// The whole history accumulates when the target is not in the list.
	if !got.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected 30, got %s", got)
	}
}
