package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cuentas/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	NumeroCuenta int64           `json:"numeroCuenta"`
	TipoCuenta   string          `json:"tipoCuenta"`
	Saldo        decimal.Decimal `json:"saldo"`
	Estado       string          `json:"estado"`
	ClienteID    string          `json:"clienteId"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		NumeroCuenta: a.ID,
		TipoCuenta:   a.Type,
		Saldo:        a.Balance,
		Estado:       a.Status,
		ClienteID:    a.ClientID,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Cuentas []*AccountResponse `json:"cuentas"`
	Total   int64              `json:"total"`
}

// MovementResponse represents a movement in API responses.
type MovementResponse struct {
	NumeroMovimiento int64           `json:"numeroMovimiento"`
	NumeroCuenta     int64           `json:"numeroCuenta"`
	FechaMovimiento  time.Time       `json:"fechaMovimiento"`
	TipoMovimiento   string          `json:"tipoMovimiento"`
	Valor            decimal.Decimal `json:"valor"`
	Saldo            decimal.Decimal `json:"saldo"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.Movement) *MovementResponse {
	return &MovementResponse{
		NumeroMovimiento: m.ID,
		NumeroCuenta:     m.AccountID,
		FechaMovimiento:  m.Date,
		TipoMovimiento:   m.Type,
		Valor:            m.Amount,
		Saldo:            m.Balance,
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.Movement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// ListMovementsResponse wraps a page of movements.
type ListMovementsResponse struct {
	Movimientos []*MovementResponse `json:"movimientos"`
	Total       int64               `json:"total"`
}

// StatementResponse represents one account inside a report.
type StatementResponse struct {
	NumeroCuenta     int64               `json:"numeroCuenta"`
	TipoCuenta       string              `json:"tipoCuenta"`
	Estado           string              `json:"estado"`
	Saldo            decimal.Decimal     `json:"saldo"`
	Movimientos      []*MovementResponse `json:"movimientos"`
	TotalMovimientos int                 `json:"totalMovimientos"`
	TotalDebitos     decimal.Decimal     `json:"totalDebitos"`
	TotalCreditos    decimal.Decimal     `json:"totalCreditos"`
}

// ReportResponse represents a per-client statement report.
type ReportResponse struct {
	ID         string               `json:"id"`
	ClienteID  string               `json:"clienteId"`
	Desde      time.Time            `json:"desde"`
	Hasta      time.Time            `json:"hasta"`
	GeneradoEn time.Time            `json:"generadoEn"`
	Cuentas    []*StatementResponse `json:"cuentas"`
}

// ReportFromDomain converts a domain report to a response.
func ReportFromDomain(r *domain.Report) *ReportResponse {
	statements := make([]*StatementResponse, len(r.Accounts))
	for i, s := range r.Accounts {
		statements[i] = &StatementResponse{
			NumeroCuenta:     s.AccountID,
			TipoCuenta:       s.AccountType,
			Estado:           s.Status,
			Saldo:            s.Balance,
			Movimientos:      MovementsFromDomain(s.Movements),
			TotalMovimientos: s.TotalMovements,
			TotalDebitos:     s.TotalDebits,
			TotalCreditos:    s.TotalCredits,
		}
	}

	return &ReportResponse{
		ID:         r.ID,
		ClienteID:  r.ClientID,
		Desde:      r.From,
		Hasta:      r.To,
		GeneradoEn: r.GeneratedAt,
		Cuentas:    statements,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
