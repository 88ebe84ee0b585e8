package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cuentas/internal/domain"
	"github.com/iho/cuentas/internal/usecase"
	"github.com/iho/cuentas/internal/usecase/mocks"
)

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestMovementUseCase_CreateMovement(t *testing.T) {
	t.Run("missing amount", func(t *testing.T) {
		uc := usecase.NewMovementUseCase(mocks.NewMockTransactionManager(), mocks.NewMockAccountRepository(), mocks.NewMockMovementRepository(), nil, nil)

		_, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{AccountID: 1})
		if !errors.Is(err, domain.ErrMissingAmount) {
			t.Fatalf("expected ErrMissingAmount, got %v", err)
		}
	})

	t.Run("account not found", func(t *testing.T) {
		uc := usecase.NewMovementUseCase(mocks.NewMockTransactionManager(), mocks.NewMockAccountRepository(), mocks.NewMockMovementRepository(), nil, nil)

		_, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
			AccountID: 99,
			Amount:    decimalPtr(10),
		})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("withdrawal beyond balance is rejected", func(t *testing.T) {
		// Balance 100, valor -150: rejected, balance untouched.
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(100)})
		movementRepo := mocks.NewMockMovementRepository()
		txManager := mocks.NewMockTransactionManager()

		uc := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, nil, nil)

		_, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
			AccountID: 1,
			Amount:    decimalPtr(-150),
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		account, _ := accountRepo.GetByID(context.Background(), 1)
		if !account.Balance.Equal(decimal.NewFromInt(100)) {
			t.Errorf("balance must remain 100, got %s", account.Balance)
		}

		if txManager.LastTx == nil || txManager.LastTx.Committed {
			t.Error("transaction must not be committed")
		}
	})

	t.Run("deposit is accepted", func(t *testing.T) {
		// Balance 100, valor +50: saldo 150, balance 150.
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(100)})
		movementRepo := mocks.NewMockMovementRepository()
		txManager := mocks.NewMockTransactionManager()

		uc := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, nil, nil)

		movement, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
			AccountID: 1,
			Amount:    decimalPtr(50),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !movement.Balance.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected saldo 150, got %s", movement.Balance)
		}

		if movement.ID == 0 {
			t.Error("expected movement id to be assigned")
		}

		account, _ := accountRepo.GetByID(context.Background(), 1)
		if !account.Balance.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected balance 150, got %s", account.Balance)
		}

		if !txManager.LastTx.Committed {
			t.Error("expected transaction to be committed")
		}
	})

	t.Run("date and type default", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(100)})

		uc := usecase.NewMovementUseCase(mocks.NewMockTransactionManager(), accountRepo, mocks.NewMockMovementRepository(), nil, nil)

		before := time.Now().UTC()
		movement, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
			AccountID: 1,
			Amount:    decimalPtr(-20),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if movement.Date.Before(before) {
			t.Errorf("expected date to default to now, got %s", movement.Date)
		}

		if movement.Type != "retiro" {
			t.Errorf("expected type retiro for a debit, got %q", movement.Type)
		}
	})

	t.Run("explicit date and type are kept", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(100)})

		uc := usecase.NewMovementUseCase(mocks.NewMockTransactionManager(), accountRepo, mocks.NewMockMovementRepository(), nil, nil)

		date := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
		movement, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
			AccountID: 1,
			Amount:    decimalPtr(30),
			Type:      "transferencia",
			Date:      &date,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !movement.Date.Equal(date) {
			t.Errorf("expected date %s, got %s", date, movement.Date)
		}

		if movement.Type != "transferencia" {
			t.Errorf("expected explicit type, got %q", movement.Type)
		}
	})
}

func TestMovementUseCase_UpdateMovement(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("movement not found", func(t *testing.T) {
		uc := usecase.NewMovementUseCase(mocks.NewMockTransactionManager(), mocks.NewMockAccountRepository(), mocks.NewMockMovementRepository(), nil, nil)

		_, err := uc.UpdateMovement(context.Background(), usecase.UpdateMovementInput{MovementID: 404})
		if !errors.Is(err, domain.ErrMovementNotFound) {
			t.Fatalf("expected ErrMovementNotFound, got %v", err)
		}
	})

	t.Run("amount edit recomputes saldo and balance", func(t *testing.T) {
		// Account started at 0: [+100 at t1, -30 at t2], balance 70.
		// Editing the first movement to +40 gives balance 10, saldo 40.
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(70)})
		movementRepo := mocks.NewMockMovementRepository()
		movementRepo.Seed(&domain.Movement{ID: 1, AccountID: 1, Date: day(1), Amount: decimal.NewFromInt(100), Balance: decimal.NewFromInt(100)})
		movementRepo.Seed(&domain.Movement{ID: 2, AccountID: 1, Date: day(2), Amount: decimal.NewFromInt(-30), Balance: decimal.NewFromInt(70)})

		uc := usecase.NewMovementUseCase(mocks.NewMockTransactionManager(), accountRepo, movementRepo, nil, nil)

		movement, err := uc.UpdateMovement(context.Background(), usecase.UpdateMovementInput{
			MovementID: 1,
			Amount:     decimalPtr(40),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !movement.Balance.Equal(decimal.NewFromInt(40)) {
			t.Errorf("expected recomputed saldo 40, got %s", movement.Balance)
		}

		account, _ := accountRepo.GetByID(context.Background(), 1)
		if !account.Balance.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected balance 10, got %s", account.Balance)
		}
	})

	t.Run("amount edit that overdraws is rolled back", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(70)})
		movementRepo := mocks.NewMockMovementRepository()
		movementRepo.Seed(&domain.Movement{ID: 1, AccountID: 1, Date: day(1), Amount: decimal.NewFromInt(100), Balance: decimal.NewFromInt(100)})

		txManager := mocks.NewMockTransactionManager()
		uc := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, nil, nil)

		// 70 + (-120 - 100) would be -150.
		_, err := uc.UpdateMovement(context.Background(), usecase.UpdateMovementInput{
			MovementID: 1,
			Amount:     decimalPtr(-120),
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		movement, _ := movementRepo.GetByID(context.Background(), 1)
		if !movement.Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("movement amount must remain 100, got %s", movement.Amount)
		}

		account, _ := accountRepo.GetByID(context.Background(), 1)
		if !account.Balance.Equal(decimal.NewFromInt(70)) {
			t.Errorf("balance must remain 70, got %s", account.Balance)
		}

		if txManager.LastTx.Committed {
			t.Error("transaction must not be committed")
		}
	})

	t.Run("date and type replaced unconditionally", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(70)})
		movementRepo := mocks.NewMockMovementRepository()
		movementRepo.Seed(&domain.Movement{ID: 1, AccountID: 1, Date: day(1), Type: "deposito", Amount: decimal.NewFromInt(100)})

		uc := usecase.NewMovementUseCase(mocks.NewMockTransactionManager(), accountRepo, movementRepo, nil, nil)

		newDate := day(9)
		newType := "ajuste"
		movement, err := uc.UpdateMovement(context.Background(), usecase.UpdateMovementInput{
			MovementID: 1,
			Date:       &newDate,
			Type:       &newType,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !movement.Date.Equal(newDate) || movement.Type != "ajuste" {
			t.Errorf("expected date/type replaced, got %s %q", movement.Date, movement.Type)
		}

		account, _ := accountRepo.GetByID(context.Background(), 1)
		if !account.Balance.Equal(decimal.NewFromInt(70)) {
			t.Errorf("balance must be untouched, got %s", account.Balance)
		}
	})

	t.Run("reassignment moves money between accounts", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(50)})
		accountRepo.Seed(&domain.Account{ID: 2, Balance: decimal.NewFromInt(30)})
		movementRepo := mocks.NewMockMovementRepository()
		movementRepo.Seed(&domain.Movement{ID: 1, AccountID: 1, Date: day(1), Amount: decimal.NewFromInt(-10), Balance: decimal.NewFromInt(50)})

		uc := usecase.NewMovementUseCase(mocks.NewMockTransactionManager(), accountRepo, movementRepo, nil, nil)

		target := int64(2)
		movement, err := uc.UpdateMovement(context.Background(), usecase.UpdateMovementInput{
			MovementID: 1,
			AccountID:  &target,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if movement.AccountID != 2 {
			t.Errorf("expected movement on account 2, got %d", movement.AccountID)
		}

		// Money is conserved: 50 - (-10) = 60 and 30 + (-10) = 20.
		source, _ := accountRepo.GetByID(context.Background(), 1)
		targetAcc, _ := accountRepo.GetByID(context.Background(), 2)
		if !source.Balance.Equal(decimal.NewFromInt(60)) {
			t.Errorf("expected source balance 60, got %s", source.Balance)
		}
		if !targetAcc.Balance.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected target balance 20, got %s", targetAcc.Balance)
		}

		if !movement.Balance.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected saldo 20 (target post-attach balance), got %s", movement.Balance)
		}
	})

	t.Run("reassignment that overdraws target is fully reverted", func(t *testing.T) {
		// A(50), B(5); moving a -10 movement to B would leave B at -5.
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(50)})
		accountRepo.Seed(&domain.Account{ID: 2, Balance: decimal.NewFromInt(5)})
		movementRepo := mocks.NewMockMovementRepository()
		movementRepo.Seed(&domain.Movement{ID: 1, AccountID: 1, Date: day(1), Amount: decimal.NewFromInt(-10)})

		txManager := mocks.NewMockTransactionManager()
		uc := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, nil, nil)

		target := int64(2)
		_, err := uc.UpdateMovement(context.Background(), usecase.UpdateMovementInput{
			MovementID: 1,
			AccountID:  &target,
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		source, _ := accountRepo.GetByID(context.Background(), 1)
		if !source.Balance.Equal(decimal.NewFromInt(50)) {
			t.Errorf("source balance must be restored to 50, got %s", source.Balance)
		}

		movement, _ := movementRepo.GetByID(context.Background(), 1)
		if movement.AccountID != 1 {
			t.Errorf("movement must remain on account 1, got %d", movement.AccountID)
		}

		if txManager.LastTx.Committed {
			t.Error("transaction must not be committed")
		}
	})

	t.Run("reassignment that overdraws the source is rejected", func(t *testing.T) {
		// A(50), B(100); detaching a +60 credit would leave A at -10.
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(50)})
		accountRepo.Seed(&domain.Account{ID: 2, Balance: decimal.NewFromInt(100)})
		movementRepo := mocks.NewMockMovementRepository()
		movementRepo.Seed(&domain.Movement{ID: 1, AccountID: 1, Date: day(1), Amount: decimal.NewFromInt(60)})

		txManager := mocks.NewMockTransactionManager()
		uc := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, nil, nil)

		target := int64(2)
		_, err := uc.UpdateMovement(context.Background(), usecase.UpdateMovementInput{
			MovementID: 1,
			AccountID:  &target,
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		movement, _ := movementRepo.GetByID(context.Background(), 1)
		if movement.AccountID != 1 {
			t.Errorf("movement must remain on account 1, got %d", movement.AccountID)
		}

		if txManager.LastTx.Committed {
			t.Error("transaction must not be committed")
		}
	})

	t.Run("reassignment to unknown account fails", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(50)})
		movementRepo := mocks.NewMockMovementRepository()
		movementRepo.Seed(&domain.Movement{ID: 1, AccountID: 1, Date: day(1), Amount: decimal.NewFromInt(-10)})

		uc := usecase.NewMovementUseCase(mocks.NewMockTransactionManager(), accountRepo, movementRepo, nil, nil)

		target := int64(404)
		_, err := uc.UpdateMovement(context.Background(), usecase.UpdateMovementInput{
			MovementID: 1,
			AccountID:  &target,
		})
		if !errors.Is(err, domain.ErrTargetAccountNotFound) {
			t.Fatalf("expected ErrTargetAccountNotFound, got %v", err)
		}
	})

	t.Run("amount edit and reassignment combine", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(100)})
		accountRepo.Seed(&domain.Account{ID: 2, Balance: decimal.NewFromInt(10)})
		movementRepo := mocks.NewMockMovementRepository()
		movementRepo.Seed(&domain.Movement{ID: 1, AccountID: 1, Date: day(1), Amount: decimal.NewFromInt(40), Balance: decimal.NewFromInt(100)})

		uc := usecase.NewMovementUseCase(mocks.NewMockTransactionManager(), accountRepo, movementRepo, nil, nil)

		target := int64(2)
		movement, err := uc.UpdateMovement(context.Background(), usecase.UpdateMovementInput{
			MovementID: 1,
			Amount:     decimalPtr(25),
			AccountID:  &target,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Amount edit first: balance 100 + (25-40) = 85; then the updated
		// amount moves: source 85 - 25 = 60, target 10 + 25 = 35.
		source, _ := accountRepo.GetByID(context.Background(), 1)
		targetAcc, _ := accountRepo.GetByID(context.Background(), 2)
		if !source.Balance.Equal(decimal.NewFromInt(60)) {
			t.Errorf("expected source balance 60, got %s", source.Balance)
		}
		if !targetAcc.Balance.Equal(decimal.NewFromInt(35)) {
			t.Errorf("expected target balance 35, got %s", targetAcc.Balance)
		}
		if !movement.Balance.Equal(decimal.NewFromInt(35)) {
			t.Errorf("expected saldo 35, got %s", movement.Balance)
		}
	})
}

func TestMovementUseCase_ListMovementsByAccount(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(&domain.Account{ID: 1, Balance: decimal.NewFromInt(100)})
	movementRepo := mocks.NewMockMovementRepository()
	movementRepo.Seed(&domain.Movement{ID: 2, AccountID: 1, Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)})
	movementRepo.Seed(&domain.Movement{ID: 1, AccountID: 1, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})

	uc := usecase.NewMovementUseCase(mocks.NewMockTransactionManager(), accountRepo, movementRepo, nil, nil)

	movements, err := uc.ListMovementsByAccount(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(movements) != 2 || movements[0].ID != 1 {
		t.Errorf("expected date-ordered movements, got %+v", movements)
	}

	if _, err := uc.ListMovementsByAccount(context.Background(), 404); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
