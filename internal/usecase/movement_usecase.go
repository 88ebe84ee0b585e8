package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cuentas/internal/domain"
	"github.com/iho/cuentas/internal/infrastructure/metrics"
)

// MovementUseCase is the balance ledger engine: it creates, edits, and
// reassigns movements while keeping the account balance and the derived
// running balances consistent. Every mutation runs inside one database
// transaction with row locks on the touched accounts, so a failure at any
// step leaves nothing applied.
type MovementUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	movementRepo MovementRepository
	retrier      Retrier
	metrics      *metrics.Metrics
}

// NewMovementUseCase creates a new MovementUseCase. retrier and m may be
// nil to disable transparent retries and metric recording.
func NewMovementUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	retrier Retrier,
	m *metrics.Metrics,
) *MovementUseCase {
	return &MovementUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		retrier:      retrier,
		metrics:      m,
	}
}

// CreateMovementInput represents input for creating a movement.
type CreateMovementInput struct {
	AccountID int64
	Amount    *decimal.Decimal
	Type      string
	Date      *time.Time
}

// UpdateMovementInput represents input for editing a movement. Nil fields
// are left untouched. AccountID, when set to a different account, moves the
// movement (and its money) there.
type UpdateMovementInput struct {
	MovementID int64
	Date       *time.Time
	Type       *string
	Amount     *decimal.Decimal
	AccountID  *int64
}

// CreateMovement applies a new signed movement to an account.
func (uc *MovementUseCase) CreateMovement(ctx context.Context, input CreateMovementInput) (*domain.Movement, error) {
	if input.Amount == nil {
		return nil, domain.ErrMissingAmount
	}

	var movement *domain.Movement

	err := uc.retry(ctx, func() error {
		m, err := uc.createMovement(ctx, input)
		if err != nil {
			return err
		}

		movement = m

		return nil
	})
	if err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsCreated.Inc()
		uc.metrics.MovementAmount.Observe(movement.Amount.Abs().InexactFloat64())
		uc.metrics.AccountBalance.WithLabelValues(strconv.FormatInt(movement.AccountID, 10)).Set(movement.Balance.InexactFloat64())
	}

	return movement, nil
}

func (uc *MovementUseCase) createMovement(ctx context.Context, input CreateMovementInput) (*domain.Movement, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Balance is read fresh under the row lock on every request.
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateApply(*input.Amount); err != nil {
		return nil, err
	}

	newBalance := account.Apply(*input.Amount)
	now := time.Now().UTC()

	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	movement := &domain.Movement{
		AccountID: account.ID,
		Date:      date,
		Type:      movementType(input.Type, *input.Amount),
		Amount:    *input.Amount,
		Balance:   newBalance,
	}

	if err := uc.movementRepo.Create(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return movement, nil
}

// UpdateMovement edits a movement in place and, when a different account is
// supplied, moves it (and its amount) to that account. Amount edits
// recompute the movement's running balance against the account's full
// ordered history.
func (uc *MovementUseCase) UpdateMovement(ctx context.Context, input UpdateMovementInput) (*domain.Movement, error) {
	var movement *domain.Movement

	err := uc.retry(ctx, func() error {
		m, err := uc.updateMovement(ctx, input)
		if err != nil {
			return err
		}

		movement = m

		return nil
	})
	if err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsUpdated.Inc()
	}

	return movement, nil
}

func (uc *MovementUseCase) updateMovement(ctx context.Context, input UpdateMovementInput) (*domain.Movement, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	movement, err := uc.movementRepo.GetByIDForUpdate(ctx, tx, input.MovementID)
	if err != nil {
		return nil, err
	}

	reassign := input.AccountID != nil && *input.AccountID != movement.AccountID

	// Lock every touched account in sorted id order (deadlock prevention).
	ids := []int64{movement.AccountID}
	if reassign {
		ids = append(ids, *input.AccountID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[int64]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.ID] = a
	}

	source := accountMap[movement.AccountID]
	if source == nil {
		return nil, domain.ErrAccountNotFound
	}

	if reassign && accountMap[*input.AccountID] == nil {
		return nil, domain.ErrTargetAccountNotFound
	}

	now := time.Now().UTC()

	if input.Date != nil {
		movement.Date = input.Date.UTC()
	}

	if input.Type != nil {
		movement.Type = *input.Type
	}

	if input.Amount != nil {
		if err := uc.applyAmountChange(ctx, tx, source, movement, *input.Amount, now); err != nil {
			return nil, err
		}
	}

	if reassign {
		if err := uc.reassign(ctx, tx, source, accountMap[*input.AccountID], movement, now); err != nil {
			return nil, err
		}
	}

	if err := uc.movementRepo.Update(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return movement, nil
}

// applyAmountChange swaps the movement's amount and recomputes its saldo
// against the account's ordered history, then shifts the account balance by
// the delta. A negative resulting balance aborts the whole transaction, so
// no partial mutation is ever visible.
func (uc *MovementUseCase) applyAmountChange(
	ctx context.Context,
	tx Transaction,
	account *domain.Account,
	movement *domain.Movement,
	newAmount decimal.Decimal,
	now time.Time,
) error {
	oldAmount := movement.Amount

	siblings, err := uc.movementRepo.ListByAccountTx(ctx, tx, account.ID)
	if err != nil {
		return err
	}

	delta := newAmount.Sub(oldAmount)
	if err := account.ValidateApply(delta); err != nil {
		return err
	}

	movement.Amount = newAmount
	movement.Balance = domain.RecomputedBalance(account.Balance, siblings, movement.ID, oldAmount, newAmount)

	newBalance := account.Apply(delta)
	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return err
	}

	account.Balance = newBalance

	return nil
}

// reassign detaches the movement's amount from the source account and
// attaches it to the target. The moved movement takes the target's
// post-attach balance as its saldo, as the most recent movement there.
func (uc *MovementUseCase) reassign(
	ctx context.Context,
	tx Transaction,
	source, target *domain.Account,
	movement *domain.Movement,
	now time.Time,
) error {
	detached := source.Balance.Sub(movement.Amount)
	if detached.IsNegative() {
		return domain.ErrInsufficientFunds
	}

	if err := target.ValidateApply(movement.Amount); err != nil {
		return err
	}
	attached := target.Apply(movement.Amount)

	if err := uc.accountRepo.UpdateBalance(ctx, tx, source.ID, detached, now); err != nil {
		return err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, target.ID, attached, now); err != nil {
		return err
	}

	source.Balance = detached
	target.Balance = attached
	movement.AccountID = target.ID
	movement.Balance = attached

	return nil
}

// GetMovement retrieves a movement by ID.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id int64) (*domain.Movement, error) {
	return uc.movementRepo.GetByID(ctx, id)
}

// ListMovementsInput represents input for listing movements.
type ListMovementsInput struct {
	Limit  int
	Offset int
}

// ListMovements lists movements with pagination.
func (uc *MovementUseCase) ListMovements(ctx context.Context, input ListMovementsInput) ([]*domain.Movement, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.movementRepo.List(ctx, limit, offset)
}

// ListMovementsByAccount returns an account's full movement history in
// date order.
func (uc *MovementUseCase) ListMovementsByAccount(ctx context.Context, accountID int64) ([]*domain.Movement, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return uc.movementRepo.ListByAccount(ctx, accountID)
}

func (uc *MovementUseCase) recordRejection(err error) {
	if uc.metrics == nil {
		return
	}

	reason := "error"
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		reason = "insufficient_funds"
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrTargetAccountNotFound):
		reason = "account_not_found"
	case errors.Is(err, domain.ErrMovementNotFound):
		reason = "movement_not_found"
	case errors.Is(err, domain.ErrMissingAmount):
		reason = "missing_amount"
	}

	uc.metrics.MovementsRejected.WithLabelValues(reason).Inc()
}

func (uc *MovementUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

// movementType defaults the kind tag from the amount's sign when the
// caller left it empty.
func movementType(explicit string, amount decimal.Decimal) string {
	if explicit != "" {
		return explicit
	}

	if amount.IsNegative() {
		return "retiro"
	}

	return "deposito"
}
