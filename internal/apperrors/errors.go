package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// LedgerErrorKind classifies why a ledger operation was rejected.
type LedgerErrorKind string

const (
	KindInvalidAmount               LedgerErrorKind = "INVALID_AMOUNT"
	KindDepositLimitExceeded        LedgerErrorKind = "DEPOSIT_LIMIT_EXCEEDED"
	KindWithdrawalLimitExceeded     LedgerErrorKind = "WITHDRAWAL_LIMIT_EXCEEDED"
	KindInsufficientFunds           LedgerErrorKind = "INSUFFICIENT_FUNDS"
	KindDailyWithdrawalLimitReached LedgerErrorKind = "DAILY_WITHDRAWAL_LIMIT_REACHED"
	KindInternalFault               LedgerErrorKind = "INTERNAL_FAULT"
)

// Sentinels matched by errors.Is against a *LedgerError of the same kind.
var (
	ErrInvalidAmount               = errors.New("invalid amount")
	ErrDepositLimitExceeded        = errors.New("deposit limit exceeded")
	ErrWithdrawalLimitExceeded     = errors.New("withdrawal limit exceeded")
	ErrInsufficientFunds           = errors.New("insufficient funds")
	ErrDailyWithdrawalLimitReached = errors.New("daily withdrawal limit reached")
	ErrInternalFault               = errors.New("internal fault")
)

var sentinels = map[LedgerErrorKind]error{
	KindInvalidAmount:               ErrInvalidAmount,
	KindDepositLimitExceeded:        ErrDepositLimitExceeded,
	KindWithdrawalLimitExceeded:     ErrWithdrawalLimitExceeded,
	KindInsufficientFunds:           ErrInsufficientFunds,
	KindDailyWithdrawalLimitReached: ErrDailyWithdrawalLimitReached,
	KindInternalFault:               ErrInternalFault,
}

// LedgerError is the typed rejection returned by ledger operations.
// Message is user facing; Detail carries the diagnostic for InternalFault.
type LedgerError struct {
	Kind    LedgerErrorKind
	Message string
	Detail  string
}

// NewLedgerError creates a rejection of the given kind.
func NewLedgerError(kind LedgerErrorKind, message string) *LedgerError {
	return &LedgerError{Kind: kind, Message: message}
}

// NewInternalFault wraps an unexpected fault. cause may be an error or a recovered panic value.
func NewInternalFault(message string, cause any) *LedgerError {
	return &LedgerError{
		Kind:    KindInternalFault,
		Message: message,
		Detail:  fmt.Sprint(cause),
	}
}

func (e *LedgerError) Error() string {
	if e.Detail != "" && e.Kind == KindInternalFault {
		return e.Message + " " + e.Detail
	}
	return e.Message
}

// Is reports whether target is the sentinel for this error's kind.
func (e *LedgerError) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && sentinel == target
}
