package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cuentas/internal/domain"
	"github.com/iho/cuentas/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository with
// an in-memory account map. Individual methods can be overridden via the
// corresponding Func fields.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]*domain.Account
	nextID   int64

	CreateFunc                func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc               func(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDForUpdateFunc      func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error)
	GetByIDsForUpdateFunc     func(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error)
	ListFunc                  func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByClientFunc          func(ctx context.Context, clientID string) ([]*domain.Account, error)
	UpdateFunc                func(ctx context.Context, account *domain.Account) error
	UpdateBalanceFunc         func(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
	RegisterClientAccountFunc func(ctx context.Context, tx usecase.Transaction, clientID string, accountID int64) error

	RegisteredClientAccounts map[string][]int64
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts:                 make(map[int64]*domain.Account),
		RegisteredClientAccounts: make(map[string][]int64),
		nextID:                   1,
	}
}

// Seed adds an account directly to the in-memory store.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	if account.ID >= m.nextID {
		m.nextID = account.ID + 1
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account.ID = m.nextID
	m.nextID++
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (m *MockAccountRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Account, error) {
	if m.ListByClientFunc != nil {
		return m.ListByClientFunc(ctx, clientID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.ClientID == clientID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) RegisterClientAccount(ctx context.Context, tx usecase.Transaction, clientID string, accountID int64) error {
	if m.RegisterClientAccountFunc != nil {
		return m.RegisterClientAccountFunc(ctx, tx, clientID, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisteredClientAccounts[clientID] = append(m.RegisteredClientAccounts[clientID], accountID)
	return nil
}

// MockMovementRepository is a mock implementation of MovementRepository.
type MockMovementRepository struct {
	mu        sync.RWMutex
	movements map[int64]*domain.Movement
	nextID    int64

	CreateFunc                    func(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error
	GetByIDFunc                   func(ctx context.Context, id int64) (*domain.Movement, error)
	GetByIDForUpdateFunc          func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Movement, error)
	ListFunc                      func(ctx context.Context, limit, offset int) ([]*domain.Movement, error)
	ListByAccountFunc             func(ctx context.Context, accountID int64) ([]*domain.Movement, error)
	ListByAccountTxFunc           func(ctx context.Context, tx usecase.Transaction, accountID int64) ([]*domain.Movement, error)
	ListByAccountAndDateRangeFunc func(ctx context.Context, accountID int64, from, to time.Time) ([]*domain.Movement, error)
	UpdateFunc                    func(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error
}

func NewMockMovementRepository() *MockMovementRepository {
	return &MockMovementRepository{
		movements: make(map[int64]*domain.Movement),
		nextID:    1,
	}
}

// Seed adds a movement directly to the in-memory store.
func (m *MockMovementRepository) Seed(movement *domain.Movement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[movement.ID] = movement
	if movement.ID >= m.nextID {
		m.nextID = movement.ID + 1
	}
}

func (m *MockMovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	movement.ID = m.nextID
	m.nextID++
	m.movements[movement.ID] = movement
	return nil
}

func (m *MockMovementRepository) GetByID(ctx context.Context, id int64) (*domain.Movement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mov, ok := m.movements[id]; ok {
		return mov, nil
	}
	return nil, domain.ErrMovementNotFound
}

func (m *MockMovementRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Movement, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockMovementRepository) List(ctx context.Context, limit, offset int) ([]*domain.Movement, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movements []*domain.Movement
	for _, mov := range m.movements {
		movements = append(movements, mov)
	}
	return movements, nil
}

func (m *MockMovementRepository) ListByAccount(ctx context.Context, accountID int64) ([]*domain.Movement, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	return m.listByAccount(accountID), nil
}

func (m *MockMovementRepository) ListByAccountTx(ctx context.Context, tx usecase.Transaction, accountID int64) ([]*domain.Movement, error) {
	if m.ListByAccountTxFunc != nil {
		return m.ListByAccountTxFunc(ctx, tx, accountID)
	}
	return m.listByAccount(accountID), nil
}

func (m *MockMovementRepository) listByAccount(accountID int64) []*domain.Movement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movements []*domain.Movement
	for _, mov := range m.movements {
		if mov.AccountID == accountID {
			movements = append(movements, mov)
		}
	}
	sortMovements(movements)
	return movements
}

func (m *MockMovementRepository) ListByAccountAndDateRange(ctx context.Context, accountID int64, from, to time.Time) ([]*domain.Movement, error) {
	if m.ListByAccountAndDateRangeFunc != nil {
		return m.ListByAccountAndDateRangeFunc(ctx, accountID, from, to)
	}
	var movements []*domain.Movement
	for _, mov := range m.listByAccount(accountID) {
		if !mov.Date.Before(from) && !mov.Date.After(to) {
			movements = append(movements, mov)
		}
	}
	return movements, nil
}

func (m *MockMovementRepository) Update(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[movement.ID] = movement
	return nil
}

func sortMovements(movements []*domain.Movement) {
	// Date ascending, id as the stable tie-break, matching the repository
	// ordering contract.
	for i := 1; i < len(movements); i++ {
		for j := i; j > 0; j-- {
			a, b := movements[j-1], movements[j]
			if a.Date.After(b.Date) || (a.Date.Equal(b.Date) && a.ID > b.ID) {
				movements[j-1], movements[j] = b, a
			} else {
				break
			}
		}
	}
}

// MockTransaction is a no-op transaction recording commit/rollback calls.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTransaction{}
	return m.LastTx, nil
}

// MockCache is an in-memory Cache implementation.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string

	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (c *MockCache) Get(ctx context.Context, key string) (string, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, key)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key], nil
}

func (c *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.SetFunc != nil {
		return c.SetFunc(ctx, key, value, ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}
