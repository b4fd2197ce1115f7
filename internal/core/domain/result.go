package domain

import (
	"github.com/SscSPs/internet_banking/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Operation names a mutating ledger operation.
type Operation string

const (
	OperationDeposit  Operation = "deposit"
	OperationWithdraw Operation = "withdraw"
)

// faultPrefix is the user facing lead-in of an InternalFault message.
func (o Operation) faultPrefix() string {
	if o == OperationWithdraw {
		return "Withdrawal error!"
	}
	return "Deposit error!"
}

// OperationResult is what a deposit or withdrawal hands back to the caller.
// Err is nil exactly when Success is true.
type OperationResult struct {
	Message     string
	Success     bool
	Err         *apperrors.LedgerError
	Transaction *Transaction
	Balance     decimal.Decimal
}

// Kind returns the rejection kind, or an empty kind on success.
func (r OperationResult) Kind() apperrors.LedgerErrorKind {
	if r.Err == nil {
		return ""
	}
	return r.Err.Kind
}

func succeeded(message string, txn Transaction) OperationResult {
	return OperationResult{
		Message:     message,
		Success:     true,
		Transaction: &txn,
		Balance:     txn.BalanceAfter,
	}
}

func rejected(kind apperrors.LedgerErrorKind, message string, balance decimal.Decimal) OperationResult {
	return OperationResult{
		Message: message,
		Err:     apperrors.NewLedgerError(kind, message),
		Balance: balance,
	}
}

// NewFaultResult converts an unexpected fault during op into a failed result
// whose message embeds the fault description.
func NewFaultResult(op Operation, cause any, balance decimal.Decimal) OperationResult {
	ledgerErr := apperrors.NewInternalFault(op.faultPrefix(), cause)
	return OperationResult{
		Message: ledgerErr.Error(),
		Err:     ledgerErr,
		Balance: balance,
	}
}
