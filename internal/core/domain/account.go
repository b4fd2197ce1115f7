package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Per-channel limits. They are never stored with the session; every ledger
// rebuilt from stored state starts from these values.
const MaxDailyWithdrawals = 3

var (
	MaxWithdrawalAmount = decimal.RequireFromString("500.00")
	MaxDepositAmount    = decimal.RequireFromString("2000.00")
)

// Limits groups the caps a ledger enforces.
type Limits struct {
	MaxDailyWithdrawals int
	MaxWithdrawalAmount decimal.Decimal
	MaxDepositAmount    decimal.Decimal
}

// DefaultLimits returns the channel limits.
func DefaultLimits() Limits {
	return Limits{
		MaxDailyWithdrawals: MaxDailyWithdrawals,
		MaxWithdrawalAmount: MaxWithdrawalAmount,
		MaxDepositAmount:    MaxDepositAmount,
	}
}

// AccountState is the mutable part of an account that survives between
// interactions of a session.
type AccountState struct {
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
}

// NewAccountState returns the state of a freshly opened account.
func NewAccountState() AccountState {
	return AccountState{
		Balance:      decimal.Zero,
		Transactions: []Transaction{},
	}
}

// Clone returns a copy that shares no backing array with s.
func (s AccountState) Clone() AccountState {
	txns := make([]Transaction, len(s.Transactions))
	copy(txns, s.Transactions)
	return AccountState{
		Balance:      s.Balance,
		Transactions: txns,
	}
}

// Statement is the read model returned to presentation layers.
type Statement struct {
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}
