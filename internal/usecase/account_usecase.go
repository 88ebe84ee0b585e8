package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cuentas/internal/domain"
	"github.com/iho/cuentas/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic. Balances are only ever
// mutated by the movement engine; this use case covers the plain CRUD
// surface around accounts.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. m may be nil to disable
// metric recording.
func NewAccountUseCase(txManager TransactionManager, accountRepo AccountRepository, m *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Type           string
	InitialBalance decimal.Decimal
	Status         string
	ClientID       string
}

// CreateAccount creates an account and registers it in the client->account
// index the clients microservice reads, as one atomic unit.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountType(input.Type); err != nil {
		return nil, err
	}

	if err := domain.ValidateAccountStatus(input.Status); err != nil {
		return nil, err
	}

	if err := domain.ValidateClientID(input.ClientID); err != nil {
		return nil, err
	}

	if err := domain.ValidateInitialBalance(input.InitialBalance); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		Type:      strings.ToLower(strings.TrimSpace(input.Type)),
		Balance:   input.InitialBalance,
		Status:    strings.ToLower(strings.TrimSpace(input.Status)),
		ClientID:  strings.TrimSpace(input.ClientID),
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.RegisterClientAccount(ctx, tx, account.ClientID, account.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
		uc.metrics.AccountBalance.WithLabelValues(strconv.FormatInt(account.ID, 10)).Set(account.Balance.InexactFloat64())
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, limit, offset)
}

// ListAccountsByClient lists all accounts owned by a client.
func (uc *AccountUseCase) ListAccountsByClient(ctx context.Context, clientID string) ([]*domain.Account, error) {
	if err := domain.ValidateClientID(clientID); err != nil {
		return nil, err
	}

	return uc.accountRepo.ListByClient(ctx, strings.TrimSpace(clientID))
}

// AccountIDsByClient returns just the account ids owned by a client.
func (uc *AccountUseCase) AccountIDsByClient(ctx context.Context, clientID string) ([]int64, error) {
	accounts, err := uc.ListAccountsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}

	return ids, nil
}

// UpdateAccountInput represents input for updating an account. Nil fields
// are left untouched; the balance cannot be set here.
type UpdateAccountInput struct {
	AccountID int64
	Type      *string
	Status    *string
	ClientID  *string
}

// UpdateAccount updates an account's descriptive fields.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if err := domain.ValidateAccountType(*input.Type); err != nil {
			return nil, err
		}
		account.Type = strings.ToLower(strings.TrimSpace(*input.Type))
	}

	if input.Status != nil {
		if err := domain.ValidateAccountStatus(*input.Status); err != nil {
			return nil, err
		}
		account.Status = strings.ToLower(strings.TrimSpace(*input.Status))
	}

	if input.ClientID != nil {
		if err := domain.ValidateClientID(*input.ClientID); err != nil {
			return nil, err
		}
		account.ClientID = strings.TrimSpace(*input.ClientID)
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}
