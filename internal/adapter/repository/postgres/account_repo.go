package postgres

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/cuentas/internal/domain"
	"github.com/iho/cuentas/internal/usecase"
)

const accountColumns = `numero_cuenta, tipo_cuenta, saldo, estado, cliente_id, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts the account and fills in its database-assigned number.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	return txQuerier(tx).QueryRow(ctx, `
		INSERT INTO cuenta (tipo_cuenta, saldo, estado, cliente_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING numero_cuenta`,
		account.Type,
		decimalToNumeric(account.Balance),
		account.Status,
		account.ClientID,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	).Scan(&account.ID)
}

// GetByID retrieves an account by its number.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM cuenta
		WHERE numero_cuenta = $1`, id))
}

// GetByIDForUpdate retrieves an account with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error) {
	return scanAccount(txQuerier(tx).QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM cuenta
		WHERE numero_cuenta = $1
		FOR UPDATE`, id))
}

// GetByIDsForUpdate locks multiple accounts. Rows are locked in ascending
// account number order so concurrent multi-account updates cannot deadlock
// on each other.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	rows, err := txQuerier(tx).Query(ctx, `
		SELECT `+accountColumns+`
		FROM cuenta
		WHERE numero_cuenta = ANY($1)
		ORDER BY numero_cuenta
		FOR UPDATE`, sorted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM cuenta
		ORDER BY numero_cuenta
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// ListByClient lists all accounts owned by a client.
func (r *AccountRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM cuenta
		WHERE cliente_id = $1
		ORDER BY numero_cuenta`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// Update persists the account's descriptive fields. The balance is written
// only through UpdateBalance.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE cuenta
		SET tipo_cuenta = $2, estado = $3, cliente_id = $4, updated_at = $5
		WHERE numero_cuenta = $1`,
		account.ID,
		account.Type,
		account.Status,
		account.ClientID,
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// UpdateBalance updates the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
	_, err := txQuerier(tx).Exec(ctx, `
		UPDATE cuenta
		SET saldo = $2, updated_at = $3
		WHERE numero_cuenta = $1`,
		id,
		decimalToNumeric(balance),
		timeToPgTimestamptz(updatedAt),
	)

	return err
}

// RegisterClientAccount records the client->account pairing in the
// cliente_cuentas index. Re-registering the same pair is a no-op.
func (r *AccountRepository) RegisterClientAccount(ctx context.Context, tx usecase.Transaction, clientID string, accountID int64) error {
	_, err := txQuerier(tx).Exec(ctx, `
		INSERT INTO cliente_cuentas (cliente_id, numero_cuenta)
		VALUES ($1, $2)
		ON CONFLICT (cliente_id, numero_cuenta) DO NOTHING`,
		clientID, accountID)

	return err
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		saldo     pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&account.ID, &account.Type, &saldo, &account.Status, &account.ClientID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Balance = numericToDecimal(saldo)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

func collectAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0)

	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
