package accounting

import (
	"fmt"

	"github.com/SscSPs/internet_banking/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount returns the effect a transaction has on the balance:
// positive for a deposit, negative for a withdrawal.
func CalculateSignedAmount(txn domain.Transaction) (decimal.Decimal, error) {
	switch txn.Kind {
	case domain.Deposit:
		return txn.Amount, nil
	case domain.Withdrawal:
		return txn.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction kind '%s' encountered for transaction ID %s", txn.Kind, txn.TransactionID)
	}
}

// ValidateAccountState checks stored state before a ledger is rebuilt from it:
// every record is well formed, each snapshot continues from the previous one
// and the balance equals the last balance after (zero for an empty log).
func ValidateAccountState(state domain.AccountState) error {
	running := decimal.Zero

	for i, txn := range state.Transactions {
		if err := txn.Validate(); err != nil {
			return fmt.Errorf("transaction %d is invalid: %w", i, err)
		}
		if !txn.BalanceBefore.Equal(running) {
			return fmt.Errorf("transaction %d starts from %s but the previous balance was %s", i, txn.BalanceBefore.String(), running.String())
		}

		signedAmount, err := CalculateSignedAmount(txn)
		if err != nil {
			return fmt.Errorf("error calculating signed amount for transaction %d: %w", i, err)
		}
		running = running.Add(signedAmount)
	}

	if !state.Balance.Equal(running) {
		return fmt.Errorf("stored balance %s does not match transaction log balance %s", state.Balance.String(), running.String())
	}
	return nil
}
