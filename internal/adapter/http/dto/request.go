package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cuentas/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	TipoCuenta   string          `json:"tipoCuenta"`
	SaldoInicial decimal.Decimal `json:"saldoInicial"`
	Estado       string          `json:"estado"`
	ClienteID    string          `json:"clienteId"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Type:           r.TipoCuenta,
		InitialBalance: r.SaldoInicial,
		Status:         r.Estado,
		ClientID:       r.ClienteID,
	}
}

// UpdateAccountRequest represents a partial account update. Absent fields
// are left untouched.
type UpdateAccountRequest struct {
	TipoCuenta *string `json:"tipoCuenta,omitempty"`
	Estado     *string `json:"estado,omitempty"`
	ClienteID  *string `json:"clienteId,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput(accountID int64) usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		AccountID: accountID,
		Type:      r.TipoCuenta,
		Status:    r.Estado,
		ClientID:  r.ClienteID,
	}
}

// CreateMovementRequest represents a request to post a movement. Valor is
// signed: negative for withdrawals, positive for deposits.
type CreateMovementRequest struct {
	NumeroCuenta    int64            `json:"numeroCuenta"`
	FechaMovimiento *time.Time       `json:"fechaMovimiento,omitempty"`
	TipoMovimiento  string           `json:"tipoMovimiento,omitempty"`
	Valor           *decimal.Decimal `json:"valor"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMovementRequest) ToUseCaseInput() usecase.CreateMovementInput {
	return usecase.CreateMovementInput{
		AccountID: r.NumeroCuenta,
		Date:      r.FechaMovimiento,
		Type:      r.TipoMovimiento,
		Amount:    r.Valor,
	}
}

// UpdateMovementRequest represents a partial movement update. Setting
// numeroCuenta reassigns the movement to another account.
type UpdateMovementRequest struct {
	NumeroCuenta    *int64           `json:"numeroCuenta,omitempty"`
	FechaMovimiento *time.Time       `json:"fechaMovimiento,omitempty"`
	TipoMovimiento  *string          `json:"tipoMovimiento,omitempty"`
	Valor           *decimal.Decimal `json:"valor,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateMovementRequest) ToUseCaseInput(movementID int64) usecase.UpdateMovementInput {
	return usecase.UpdateMovementInput{
		MovementID: movementID,
		AccountID:  r.NumeroCuenta,
		Date:       r.FechaMovimiento,
		Type:       r.TipoMovimiento,
		Amount:     r.Valor,
	}
}
