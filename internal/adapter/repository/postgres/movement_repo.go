package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/cuentas/internal/domain"
	"github.com/iho/cuentas/internal/usecase"
)

const movementColumns = `numero_movimiento, numero_cuenta, fecha_movimiento, tipo_movimiento, valor, saldo`

// movementOrder is the canonical history order: date ascending with the
// movement number as the stable tie-break. The recomputation in the
// movement engine depends on this being deterministic.
const movementOrder = `ORDER BY fecha_movimiento ASC, numero_movimiento ASC`

// MovementRepository implements usecase.MovementRepository.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

// Create inserts the movement and fills in its database-assigned number.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	return txQuerier(tx).QueryRow(ctx, `
		INSERT INTO movimiento (numero_cuenta, fecha_movimiento, tipo_movimiento, valor, saldo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING numero_movimiento`,
		movement.AccountID,
		timeToPgTimestamptz(movement.Date),
		movement.Type,
		decimalToNumeric(movement.Amount),
		decimalToNumeric(movement.Balance),
	).Scan(&movement.ID)
}

// GetByID retrieves a movement by its number.
func (r *MovementRepository) GetByID(ctx context.Context, id int64) (*domain.Movement, error) {
	return scanMovement(r.pool.QueryRow(ctx, `
		SELECT `+movementColumns+`
		FROM movimiento
		WHERE numero_movimiento = $1`, id))
}

// GetByIDForUpdate retrieves a movement with a FOR UPDATE lock.
func (r *MovementRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Movement, error) {
	return scanMovement(txQuerier(tx).QueryRow(ctx, `
		SELECT `+movementColumns+`
		FROM movimiento
		WHERE numero_movimiento = $1
		FOR UPDATE`, id))
}

// List lists movements with pagination, newest first.
func (r *MovementRepository) List(ctx context.Context, limit, offset int) ([]*domain.Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movimiento
		ORDER BY fecha_movimiento DESC, numero_movimiento DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMovements(rows)
}

// ListByAccount returns the account's full history in canonical order.
func (r *MovementRepository) ListByAccount(ctx context.Context, accountID int64) ([]*domain.Movement, error) {
	return r.listByAccount(ctx, r.pool, accountID)
}

// ListByAccountTx is ListByAccount on an open transaction, so the movement
// engine recomputes against the locked state rather than a stale snapshot.
func (r *MovementRepository) ListByAccountTx(ctx context.Context, tx usecase.Transaction, accountID int64) ([]*domain.Movement, error) {
	return r.listByAccount(ctx, txQuerier(tx), accountID)
}

func (r *MovementRepository) listByAccount(ctx context.Context, q querier, accountID int64) ([]*domain.Movement, error) {
	rows, err := q.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movimiento
		WHERE numero_cuenta = $1
		`+movementOrder, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMovements(rows)
}

// ListByAccountAndDateRange returns the account's movements within
// [from, to] in canonical order.
func (r *MovementRepository) ListByAccountAndDateRange(ctx context.Context, accountID int64, from, to time.Time) ([]*domain.Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movimiento
		WHERE numero_cuenta = $1 AND fecha_movimiento BETWEEN $2 AND $3
		`+movementOrder,
		accountID, timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMovements(rows)
}

// Update rewrites all mutable movement fields, including the account it
// belongs to.
func (r *MovementRepository) Update(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	tag, err := txQuerier(tx).Exec(ctx, `
		UPDATE movimiento
		SET numero_cuenta = $2, fecha_movimiento = $3, tipo_movimiento = $4, valor = $5, saldo = $6
		WHERE numero_movimiento = $1`,
		movement.ID,
		movement.AccountID,
		timeToPgTimestamptz(movement.Date),
		movement.Type,
		decimalToNumeric(movement.Amount),
		decimalToNumeric(movement.Balance),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}

	return nil
}

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var (
		movement domain.Movement
		fecha    pgtype.Timestamptz
		valor    pgtype.Numeric
		saldo    pgtype.Numeric
	)

	err := row.Scan(&movement.ID, &movement.AccountID, &fecha, &movement.Type, &valor, &saldo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}

		return nil, err
	}

	movement.Date = fecha.Time
	movement.Amount = numericToDecimal(valor)
	movement.Balance = numericToDecimal(saldo)

	return &movement, nil
}

func collectMovements(rows pgx.Rows) ([]*domain.Movement, error) {
	movements := make([]*domain.Movement, 0)

	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}

		movements = append(movements, movement)
	}

	return movements, rows.Err()
}
