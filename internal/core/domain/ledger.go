package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/internet_banking/internal/apperrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferenceTimeZone is the zone used for timestamps and for deciding which
// withdrawals happened "today".
const ReferenceTimeZone = "America/Sao_Paulo"

// ReferenceLocation loads ReferenceTimeZone. When the zone database is not
// available it falls back to the zone's fixed UTC-3 offset.
func ReferenceLocation() *time.Location {
	loc, err := time.LoadLocation(ReferenceTimeZone)
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}

// Clock returns the current time.
type Clock func() time.Time

// Ledger owns an account's balance and transaction log and is their only mutator.
// A Ledger is built per interaction and is not safe for concurrent use.
type Ledger struct {
	balance      decimal.Decimal
	transactions []Transaction
	limits       Limits
	location     *time.Location
	now          Clock
	newID        func() string
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithClock overrides the time source.
func WithClock(clock Clock) LedgerOption {
	return func(l *Ledger) {
		l.now = clock
	}
}

// WithLocation overrides the reference zone.
func WithLocation(loc *time.Location) LedgerOption {
	return func(l *Ledger) {
		if loc != nil {
			l.location = loc
		}
	}
}

// WithIDGenerator overrides how transaction IDs are minted.
func WithIDGenerator(gen func() string) LedgerOption {
	return func(l *Ledger) {
		l.newID = gen
	}
}

// NewLedger creates a ledger for a new account: zero balance, empty log.
func NewLedger(options ...LedgerOption) *Ledger {
	return RestoreLedger(NewAccountState(), options...)
}

// RestoreLedger rebuilds a ledger from stored state. Balance and log are
// copied in; limits always start from DefaultLimits.
func RestoreLedger(state AccountState, options ...LedgerOption) *Ledger {
	restored := state.Clone()
	l := &Ledger{
		balance:      restored.Balance,
		transactions: restored.Transactions,
		limits:       DefaultLimits(),
		location:     ReferenceLocation(),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Balance returns the current balance.
func (l *Ledger) Balance() decimal.Decimal {
	return l.balance
}

// Limits returns the limits in force.
func (l *Ledger) Limits() Limits {
	return l.limits
}

// State returns a copy of the state to write back to the session.
func (l *Ledger) State() AccountState {
	return AccountState{Balance: l.balance, Transactions: l.transactions}.Clone()
}

// Statement returns every transaction in insertion order. The slice is a copy.
func (l *Ledger) Statement() []Transaction {
	return l.State().Transactions
}

// WithdrawalsToday counts withdrawals whose timestamp falls on the current
// calendar date in the reference zone.
func (l *Ledger) WithdrawalsToday() int {
	y, m, d := l.now().In(l.location).Date()
	count := 0
	for _, txn := range l.transactions {
		if txn.Kind != Withdrawal {
			continue
		}
		ty, tm, td := txn.Timestamp.In(l.location).Date()
		if ty == y && tm == m && td == d {
			count++
		}
	}
	return count
}

// Deposit adds amount to the balance. Rejections and faults leave the ledger untouched.
func (l *Ledger) Deposit(amount decimal.Decimal) (result OperationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = NewFaultResult(OperationDeposit, r, l.balance)
		}
	}()

	if !amount.IsPositive() {
		return rejected(apperrors.KindInvalidAmount,
			fmt.Sprintf("Cannot deposit R$ %s!", amount.StringFixed(2)), l.balance)
	}
	if amount.GreaterThan(l.limits.MaxDepositAmount) {
		return rejected(apperrors.KindDepositLimitExceeded,
			fmt.Sprintf("Deposit amount exceeds limits! The maximum per deposit on this channel is R$ %s",
				l.limits.MaxDepositAmount.StringFixed(2)), l.balance)
	}

	txn := l.record(Deposit, amount, l.balance.Add(amount))
	return succeeded(receipt("Deposit completed successfully!", "Amount deposited", txn), txn)
}

// Withdraw removes amount from the balance. The daily count is checked before
// the amount itself, so an exhausted day rejects even invalid amounts with the
// daily-limit message.
func (l *Ledger) Withdraw(amount decimal.Decimal) (result OperationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = NewFaultResult(OperationWithdraw, r, l.balance)
		}
	}()

	if l.WithdrawalsToday() >= l.limits.MaxDailyWithdrawals {
		return rejected(apperrors.KindDailyWithdrawalLimitReached,
			fmt.Sprintf("Daily withdrawal limit reached! Only %d withdrawals are allowed per day.",
				l.limits.MaxDailyWithdrawals), l.balance)
	}
	if !amount.IsPositive() {
		return rejected(apperrors.KindInvalidAmount,
			fmt.Sprintf("Cannot withdraw R$ %s!", amount.StringFixed(2)), l.balance)
	}
	if amount.GreaterThan(l.balance) {
		return rejected(apperrors.KindInsufficientFunds,
			"Insufficient balance for the requested amount!", l.balance)
	}
	if amount.GreaterThan(l.limits.MaxWithdrawalAmount) {
		return rejected(apperrors.KindWithdrawalLimitExceeded,
			fmt.Sprintf("Withdrawal exceeds this channel's limit.\nChannel limit R$ %s",
				l.limits.MaxWithdrawalAmount.StringFixed(2)), l.balance)
	}

	txn := l.record(Withdrawal, amount, l.balance.Sub(amount))
	return succeeded(receipt("Withdrawal completed successfully!", "Amount withdrawn", txn), txn)
}

// record builds the transaction first and only then commits balance and log,
// so a fault while building leaves both unchanged.
func (l *Ledger) record(kind TransactionKind, amount, after decimal.Decimal) Transaction {
	txn := Transaction{
		TransactionID: l.newID(),
		Timestamp:     l.now().In(l.location),
		Kind:          kind,
		Amount:        amount,
		BalanceBefore: l.balance,
		BalanceAfter:  after,
	}
	l.transactions = append(l.transactions, txn)
	l.balance = after
	return txn
}

func receipt(headline, amountLabel string, txn Transaction) string {
	var b strings.Builder
	b.WriteString("BANKING SYSTEM\n")
	b.WriteString(strings.Repeat("- ", 20))
	b.WriteString("\n")
	b.WriteString(headline + "\n")
	fmt.Fprintf(&b, "%s: R$ %s\n", amountLabel, txn.Amount.StringFixed(2))
	fmt.Fprintf(&b, "Account balance: R$ %s", txn.BalanceAfter.StringFixed(2))
	return b.String()
}
