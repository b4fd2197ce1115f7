package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether a transaction added or removed funds.
type TransactionKind string

const (
	Deposit    TransactionKind = "DEPOSIT"
	Withdrawal TransactionKind = "WITHDRAWAL"
)

// Transaction is the immutable record of one accepted deposit or withdrawal.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Timestamp     time.Time       `json:"timestamp"`     // In the ledger's reference zone
	Kind          TransactionKind `json:"kind"`          // DEPOSIT or WITHDRAWAL
	Amount        decimal.Decimal `json:"amount"`        // Requested value, always positive
	BalanceBefore decimal.Decimal `json:"balanceBefore"` // Snapshot before the operation
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`  // Snapshot after the operation
}

// Validate checks the record on its own: a known kind, a positive amount and
// a before/after snapshot consistent with the kind.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transaction %s: amount must be positive, got %s", t.TransactionID, t.Amount.String())
	}

	var expected decimal.Decimal
	switch t.Kind {
	case Deposit:
		expected = t.BalanceBefore.Add(t.Amount)
	case Withdrawal:
		expected = t.BalanceBefore.Sub(t.Amount)
	default:
		return fmt.Errorf("transaction %s: unknown kind %q", t.TransactionID, t.Kind)
	}

	if !t.BalanceAfter.Equal(expected) {
		return fmt.Errorf("transaction %s: balance after %s does not match %s %s applied to %s",
			t.TransactionID, t.BalanceAfter.String(), t.Kind, t.Amount.String(), t.BalanceBefore.String())
	}
	return nil
}
