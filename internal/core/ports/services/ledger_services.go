package services

import (
	"context"

	"github.com/SscSPs/internet_banking/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerOperatorSvc defines the mutating ledger operations of a session's account.
// Rejections and faults are reported inside the result, never as a Go error.
type LedgerOperatorSvc interface {
	// Deposit adds amount to the session's account.
	Deposit(ctx context.Context, sessionID string, amount decimal.Decimal) *domain.OperationResult

	// Withdraw removes amount from the session's account.
	Withdraw(ctx context.Context, sessionID string, amount decimal.Decimal) *domain.OperationResult
}

// LedgerReaderSvc defines read operations on a session's account
type LedgerReaderSvc interface {
	// OpenSession returns the stored state, creating a zero-balance account for unknown sessions.
	OpenSession(ctx context.Context, sessionID string) (*domain.AccountState, error)

	// Statement returns the balance and every transaction in insertion order.
	Statement(ctx context.Context, sessionID string) (*domain.Statement, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerOperatorSvc
	LedgerReaderSvc
}
