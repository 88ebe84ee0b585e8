package domain

import "errors"

var (
	// Not-found errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrMovementNotFound = errors.New("movement not found")
	ErrClientNotFound   = errors.New("no accounts found for client")

	// Invalid-input errors
	ErrMissingAmount         = errors.New("movement amount is required")
	ErrMissingClientID       = errors.New("client id is required")
	ErrTargetAccountNotFound = errors.New("target account not found")
	ErrInvalidDateRange      = errors.New("start date must not be after end date")

	// ErrInsufficientFunds keeps the wire message of the service this one
	// replaces ("saldo no disponible").
	ErrInsufficientFunds = errors.New("saldo no disponible")
)
