package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountType     = errors.New("invalid account type")
	ErrInvalidAccountStatus   = errors.New("invalid account status")
	ErrInvalidClientID        = errors.New("invalid client id")
	ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")
)

// Validation constants
const (
	MaxClientIDLength = 50
	MaxTypeLength     = 20
	MaxStatusLength   = 10
)

// Account types and statuses accepted by the service.
var (
	validAccountTypes = map[string]bool{
		"ahorro":    true,
		"corriente": true,
	}

	validAccountStatuses = map[string]bool{
		"activa":   true,
		"inactiva": true,
	}
)

// ValidateAccountType validates the account kind tag.
func ValidateAccountType(accountType string) error {
	accountType = strings.ToLower(strings.TrimSpace(accountType))

	if !validAccountTypes[accountType] {
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, accountType)
	}

	return nil
}

// ValidateAccountStatus validates the account status tag.
func ValidateAccountStatus(status string) error {
	status = strings.ToLower(strings.TrimSpace(status))

	if !validAccountStatuses[status] {
		return fmt.Errorf("%w: %q", ErrInvalidAccountStatus, status)
	}

	return nil
}

// ValidateClientID validates the owning-client identifier.
func ValidateClientID(clientID string) error {
	clientID = strings.TrimSpace(clientID)

	if clientID == "" {
		return fmt.Errorf("%w: empty", ErrInvalidClientID)
	}

	if len(clientID) > MaxClientIDLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidClientID, MaxClientIDLength)
	}

	return nil
}

// ValidateInitialBalance rejects accounts opened in the red. The
// non-negative balance invariant covers account creation too.
func ValidateInitialBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrNegativeInitialBalance
	}

	return nil
}

// ValidateDateRange validates a report date range.
func ValidateDateRange(from, to time.Time) error {
	if from.After(to) {
		return ErrInvalidDateRange
	}

	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 100
	const defaultPageSize = 20

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
