package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cuentas/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// Create inserts the account and fills in its database-assigned ID.
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []int64) ([]*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	UpdateBalance(ctx context.Context, tx Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
	// RegisterClientAccount records the client->account pairing consumed by
	// the clients microservice (cliente_cuentas index).
	RegisterClientAccount(ctx context.Context, tx Transaction, clientID string, accountID int64) error
}

// MovementRepository defines data access for ledger movements.
type MovementRepository interface {
	// Create inserts the movement and fills in its database-assigned ID.
	Create(ctx context.Context, tx Transaction, movement *domain.Movement) error
	GetByID(ctx context.Context, id int64) (*domain.Movement, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Movement, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Movement, error)
	// ListByAccount returns the account's full history ordered by date
	// ascending with id as the stable tie-break.
	ListByAccount(ctx context.Context, accountID int64) ([]*domain.Movement, error)
	// ListByAccountTx is ListByAccount inside a transaction, for the
	// fresh-read recomputation done by the movement engine.
	ListByAccountTx(ctx context.Context, tx Transaction, accountID int64) ([]*domain.Movement, error)
	ListByAccountAndDateRange(ctx context.Context, accountID int64, from, to time.Time) ([]*domain.Movement, error)
	Update(ctx context.Context, tx Transaction, movement *domain.Movement) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient persistence errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations (report cache).
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
