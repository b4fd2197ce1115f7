package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/internet_banking/internal/apperrors"
	"github.com/SscSPs/internet_banking/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var saoPaulo = time.FixedZone("-03", -3*60*60)

// fixedClock returns a clock pinned to the given wall time in the reference zone.
func fixedClock(year int, month time.Month, day, hour, minute int) domain.Clock {
	t := time.Date(year, month, day, hour, minute, 0, 0, saoPaulo)
	return func() time.Time { return t }
}

func newTestLedger(opts ...domain.LedgerOption) *domain.Ledger {
	base := []domain.LedgerOption{
		domain.WithLocation(saoPaulo),
		domain.WithClock(fixedClock(2024, time.March, 10, 12, 0)),
	}
	return domain.NewLedger(append(base, opts...)...)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertConsistent(t *testing.T, l *domain.Ledger) {
	t.Helper()
	running := decimal.Zero
	for _, txn := range l.Statement() {
		require.NoError(t, txn.Validate())
		assert.True(t, txn.BalanceBefore.Equal(running), "balance before %s, running %s", txn.BalanceBefore, running)
		running = txn.BalanceAfter
	}
	assert.True(t, l.Balance().Equal(running), "balance %s, last balance after %s", l.Balance(), running)
}

func TestLedger_NewLedgerStartsEmpty(t *testing.T) {
	l := newTestLedger()

	assert.True(t, l.Balance().IsZero())
	assert.Empty(t, l.Statement())
	assert.Equal(t, domain.DefaultLimits(), l.Limits())
	assert.Equal(t, 3, l.Limits().MaxDailyWithdrawals)
}

func TestLedger_DepositAccepted(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{name: "smallest fraction", amount: "0.01"},
		{name: "whole amount", amount: "100.00"},
		{name: "fractional amount", amount: "123.45"},
		{name: "exactly the maximum", amount: "2000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()
			amount := dec(tt.amount)

			res := l.Deposit(amount)

			require.True(t, res.Success, res.Message)
			assert.Nil(t, res.Err)
			assert.True(t, l.Balance().Equal(amount))
			require.Len(t, l.Statement(), 1)
			txn := l.Statement()[0]
			assert.Equal(t, domain.Deposit, txn.Kind)
			assert.True(t, txn.Amount.Equal(amount))
			assert.True(t, txn.BalanceBefore.IsZero())
			assert.True(t, txn.BalanceAfter.Equal(amount))
			assert.NotEmpty(t, txn.TransactionID)
			assert.Contains(t, res.Message, "Amount deposited: R$ "+amount.StringFixed(2))
			assert.Contains(t, res.Message, "Account balance: R$ "+amount.StringFixed(2))
			assertConsistent(t, l)
		})
	}
}

func TestLedger_DepositRejected(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		kind    apperrors.LedgerErrorKind
		target  error
		message string
	}{
		{name: "zero", amount: "0", kind: apperrors.KindInvalidAmount, target: apperrors.ErrInvalidAmount, message: "Cannot deposit R$ 0.00!"},
		{name: "negative", amount: "-5", kind: apperrors.KindInvalidAmount, target: apperrors.ErrInvalidAmount, message: "Cannot deposit R$ -5.00!"},
		{name: "one cent over the maximum", amount: "2000.01", kind: apperrors.KindDepositLimitExceeded, target: apperrors.ErrDepositLimitExceeded, message: "R$ 2000.00"},
		{name: "far over the maximum", amount: "2500.00", kind: apperrors.KindDepositLimitExceeded, target: apperrors.ErrDepositLimitExceeded, message: "maximum per deposit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()

			res := l.Deposit(dec(tt.amount))

			assert.False(t, res.Success)
			require.NotNil(t, res.Err)
			assert.Equal(t, tt.kind, res.Kind())
			assert.ErrorIs(t, res.Err, tt.target)
			assert.Contains(t, res.Message, tt.message)
			assert.Nil(t, res.Transaction)
			assert.True(t, l.Balance().IsZero())
			assert.Empty(t, l.Statement())
		})
	}
}

func TestLedger_WithdrawAccepted(t *testing.T) {
	l := newTestLedger()
	require.True(t, l.Deposit(dec("800.00")).Success)

	res := l.Withdraw(dec("500.00"))

	require.True(t, res.Success, res.Message)
	assert.True(t, l.Balance().Equal(dec("300.00")))
	require.Len(t, l.Statement(), 2)
	txn := l.Statement()[1]
	assert.Equal(t, domain.Withdrawal, txn.Kind)
	assert.True(t, txn.BalanceBefore.Equal(dec("800.00")))
	assert.True(t, txn.BalanceAfter.Equal(dec("300.00")))
	assert.Contains(t, res.Message, "Amount withdrawn: R$ 500.00")
	assertConsistent(t, l)
}

func TestLedger_WithdrawRejected(t *testing.T) {
	tests := []struct {
		name    string
		deposit string
		amount  string
		kind    apperrors.LedgerErrorKind
	}{
		{name: "zero", deposit: "100", amount: "0", kind: apperrors.KindInvalidAmount},
		{name: "negative", deposit: "100", amount: "-1", kind: apperrors.KindInvalidAmount},
		{name: "more than balance", deposit: "100", amount: "100.01", kind: apperrors.KindInsufficientFunds},
		{name: "more than balance and limit", deposit: "100", amount: "1000", kind: apperrors.KindInsufficientFunds},
		{name: "empty account", deposit: "", amount: "10", kind: apperrors.KindInsufficientFunds},
		{name: "over channel limit", deposit: "2000", amount: "500.01", kind: apperrors.KindWithdrawalLimitExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()
			if tt.deposit != "" {
				require.True(t, l.Deposit(dec(tt.deposit)).Success)
			}
			before := l.State()

			res := l.Withdraw(dec(tt.amount))

			assert.False(t, res.Success)
			assert.Equal(t, tt.kind, res.Kind())
			assert.Equal(t, before, l.State())
		})
	}
}

func TestLedger_DailyWithdrawalLimit(t *testing.T) {
	l := newTestLedger()
	require.True(t, l.Deposit(dec("1000")).Success)
	for i := 0; i < 3; i++ {
		require.True(t, l.Withdraw(dec("10")).Success)
	}
	assert.Equal(t, 3, l.WithdrawalsToday())
	before := l.State()

	for _, amount := range []string{"10", "0", "-5", "999999"} {
		res := l.Withdraw(dec(amount))

		assert.False(t, res.Success, amount)
		assert.Equal(t, apperrors.KindDailyWithdrawalLimitReached, res.Kind(), amount)
		assert.ErrorIs(t, res.Err, apperrors.ErrDailyWithdrawalLimitReached)
		assert.Contains(t, res.Message, "Daily withdrawal limit reached")
	}
	assert.Equal(t, before, l.State())

	// Deposits are not capped by the withdrawal count.
	assert.True(t, l.Deposit(dec("1")).Success)
}

func TestLedger_DailyLimitResetsOnNextCalendarDay(t *testing.T) {
	now := time.Date(2024, time.March, 10, 23, 30, 0, 0, saoPaulo)
	clock := func() time.Time { return now }
	l := domain.NewLedger(domain.WithLocation(saoPaulo), domain.WithClock(clock))
	require.True(t, l.Deposit(dec("1000")).Success)
	for i := 0; i < 3; i++ {
		require.True(t, l.Withdraw(dec("10")).Success)
	}
	require.False(t, l.Withdraw(dec("10")).Success)

	// The earlier withdrawals (02:30 UTC on the 11th) and now (03:10 UTC on the
	// 11th) share a UTC date but not a São Paulo date.
	now = time.Date(2024, time.March, 11, 0, 10, 0, 0, saoPaulo)

	assert.Equal(t, 0, l.WithdrawalsToday())
	assert.True(t, l.Withdraw(dec("10")).Success)
}

func TestLedger_WithdrawalsTodayUsesReferenceZone(t *testing.T) {
	// 01:00 UTC on the 11th is 22:00 on the 10th in São Paulo.
	stored := domain.AccountState{
		Balance: dec("90"),
		Transactions: []domain.Transaction{
			{TransactionID: "d1", Kind: domain.Deposit, Amount: dec("100"), BalanceBefore: dec("0"), BalanceAfter: dec("100"),
				Timestamp: time.Date(2024, time.March, 11, 1, 0, 0, 0, time.UTC)},
			{TransactionID: "w1", Kind: domain.Withdrawal, Amount: dec("10"), BalanceBefore: dec("100"), BalanceAfter: dec("90"),
				Timestamp: time.Date(2024, time.March, 11, 1, 0, 0, 0, time.UTC)},
		},
	}

	onTenth := domain.RestoreLedger(stored, domain.WithLocation(saoPaulo), domain.WithClock(fixedClock(2024, time.March, 10, 23, 0)))
	onEleventh := domain.RestoreLedger(stored, domain.WithLocation(saoPaulo), domain.WithClock(fixedClock(2024, time.March, 11, 9, 0)))

	assert.Equal(t, 1, onTenth.WithdrawalsToday())
	assert.Equal(t, 0, onEleventh.WithdrawalsToday())
}

func TestLedger_RestoreCopiesStateAndResetsLimits(t *testing.T) {
	original := newTestLedger()
	require.True(t, original.Deposit(dec("100")).Success)
	state := original.State()

	restored := domain.RestoreLedger(state, domain.WithLocation(saoPaulo), domain.WithClock(fixedClock(2024, time.March, 10, 13, 0)))
	require.True(t, restored.Withdraw(dec("30")).Success)

	assert.Len(t, state.Transactions, 1, "restoring must not write through to the caller's slice")
	assert.Equal(t, domain.DefaultLimits(), restored.Limits())
	assert.True(t, restored.Balance().Equal(dec("70")))
}

func TestLedger_StatementIsReadOnlyView(t *testing.T) {
	l := newTestLedger()
	require.True(t, l.Deposit(dec("100")).Success)

	view := l.Statement()
	view[0].Amount = dec("999")

	assert.True(t, l.Statement()[0].Amount.Equal(dec("100")))
}

func TestLedger_StatementKeepsInsertionOrder(t *testing.T) {
	l := newTestLedger()
	ops := []struct {
		kind   domain.TransactionKind
		amount string
	}{
		{domain.Deposit, "100"},
		{domain.Withdrawal, "20"},
		{domain.Deposit, "5.50"},
		{domain.Withdrawal, "0.50"},
	}
	for _, op := range ops {
		var res domain.OperationResult
		if op.kind == domain.Deposit {
			res = l.Deposit(dec(op.amount))
		} else {
			res = l.Withdraw(dec(op.amount))
		}
		require.True(t, res.Success, res.Message)
	}

	stmt := l.Statement()
	require.Len(t, stmt, len(ops))
	for i, op := range ops {
		assert.Equal(t, op.kind, stmt[i].Kind)
		assert.True(t, stmt[i].Amount.Equal(dec(op.amount)))
	}
	assert.True(t, l.Balance().Equal(dec("85")))
	assertConsistent(t, l)
}

func TestLedger_FaultIsCaughtWithoutMutation(t *testing.T) {
	l := newTestLedger(domain.WithIDGenerator(func() string { panic("id source exhausted") }))

	res := l.Deposit(dec("10"))

	assert.False(t, res.Success)
	assert.Equal(t, apperrors.KindInternalFault, res.Kind())
	assert.ErrorIs(t, res.Err, apperrors.ErrInternalFault)
	assert.Equal(t, "Deposit error! id source exhausted", res.Message)
	assert.True(t, l.Balance().IsZero())
	assert.Empty(t, l.Statement())
}

func TestLedger_WithdrawFaultIsCaught(t *testing.T) {
	calls := 0
	l := newTestLedger(domain.WithIDGenerator(func() string {
		calls++
		if calls > 1 {
			panic("id source exhausted")
		}
		return "first"
	}))
	require.True(t, l.Deposit(dec("10")).Success)

	res := l.Withdraw(dec("5"))

	assert.Equal(t, apperrors.KindInternalFault, res.Kind())
	assert.Contains(t, res.Message, "Withdrawal error!")
	assert.True(t, l.Balance().Equal(dec("10")))
	assert.Len(t, l.Statement(), 1)
}

func TestLedger_Scenario_DepositThenWithdrawals(t *testing.T) {
	l := newTestLedger()

	res := l.Deposit(dec("100.00"))
	require.True(t, res.Success)
	assert.True(t, l.Balance().Equal(dec("100.00")))
	assert.Len(t, l.Statement(), 1)

	res = l.Withdraw(dec("30.00"))
	require.True(t, res.Success)
	assert.True(t, l.Balance().Equal(dec("70.00")))
	assert.Len(t, l.Statement(), 2)

	res = l.Withdraw(dec("1000.00"))
	assert.False(t, res.Success)
	assert.Equal(t, apperrors.KindInsufficientFunds, res.Kind())
	assert.True(t, l.Balance().Equal(dec("70.00")))
	assert.Len(t, l.Statement(), 2)
}

func TestLedger_Scenario_DepositOverLimitOnFreshAccount(t *testing.T) {
	l := newTestLedger()

	res := l.Deposit(dec("2500.00"))

	assert.False(t, res.Success)
	assert.Equal(t, apperrors.KindDepositLimitExceeded, res.Kind())
	assert.True(t, l.Balance().IsZero())
	assert.Empty(t, l.Statement())
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		txn     domain.Transaction
		wantErr string
	}{
		{
			name: "valid deposit",
			txn:  domain.Transaction{Kind: domain.Deposit, Amount: dec("10"), BalanceBefore: dec("5"), BalanceAfter: dec("15")},
		},
		{
			name: "valid withdrawal",
			txn:  domain.Transaction{Kind: domain.Withdrawal, Amount: dec("10"), BalanceBefore: dec("15"), BalanceAfter: dec("5")},
		},
		{
			name:    "zero amount",
			txn:     domain.Transaction{Kind: domain.Deposit, Amount: dec("0"), BalanceBefore: dec("5"), BalanceAfter: dec("5")},
			wantErr: "amount must be positive",
		},
		{
			name:    "unknown kind",
			txn:     domain.Transaction{Kind: "TRANSFER", Amount: dec("1"), BalanceBefore: dec("5"), BalanceAfter: dec("6")},
			wantErr: "unknown kind",
		},
		{
			name:    "inconsistent snapshot",
			txn:     domain.Transaction{Kind: domain.Withdrawal, Amount: dec("1"), BalanceBefore: dec("5"), BalanceAfter: dec("6")},
			wantErr: "does not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
