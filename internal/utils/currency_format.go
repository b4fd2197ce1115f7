package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every displayed amount.
const CurrencySymbol = "R$"

// TimestampLayout is how statement dates are displayed.
const TimestampLayout = "02/01/2006 15:04:05"

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount for display with thousands grouping and two decimals.
// Sub-cent digits are truncated so the display never exceeds the stored value.
// Example: 1234.5 returns "R$ 1,234.50"
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	integer, fraction, _ := strings.Cut(amount.Abs().Truncate(2).StringFixed(2), ".")
	return CurrencySymbol + " " + sign + groupThousands(integer) + "." + fraction
}

// groupThousands inserts separators into a string of digits.
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return currencyPrinter.Sprintf("%d", n)
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatWithPrecision formats an amount with the given number of decimal places, without grouping.
// Example: 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatTimestamp renders t in loc using TimestampLayout.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(TimestampLayout)
}
