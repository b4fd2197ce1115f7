package utils

import (
	"fmt"
	"strings"

	"github.com/SscSPs/internet_banking/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Bounds on the digits accepted for an amount.
const (
	MaxAmountIntegerDigits = 18
	MaxAmountDecimalPlaces = 8
)

var amountValidator = validator.New()

// ParseAmount turns raw input into a decimal. Only the shape is checked
// here; sign and limits are the ledger's business. Exponent notation is
// rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if err := amountValidator.Var(raw, "required,numeric"); err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount must be a plain decimal number", apperrors.ErrValidation)
	}

	digits := strings.TrimLeft(raw, "+-")
	integer, fraction, _ := strings.Cut(digits, ".")
	if len(integer) > MaxAmountIntegerDigits || len(fraction) > MaxAmountDecimalPlaces {
		return decimal.Zero, fmt.Errorf("%w: amount allows at most %d integer digits and %d decimal places",
			apperrors.ErrValidation, MaxAmountIntegerDigits, MaxAmountDecimalPlaces)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return amount, nil
}
