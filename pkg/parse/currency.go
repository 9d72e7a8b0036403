package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCurrency interprets v as a monetary amount rounded to cents.
// Currency symbols, grouping separators and other noise are ignored and an
// amount in parentheses is negative. Anything that cannot be read as a number is 0.
func ParseCurrency(v any) float64 {
	var amount decimal.Decimal

	switch value := v.(type) {
	case nil:
		return 0
	case bool:
		if value {
			amount = decimal.NewFromInt(1)
		}
	case int:
		amount = decimal.NewFromInt(int64(value))
	case int32:
		amount = decimal.NewFromInt32(value)
	case int64:
		amount = decimal.NewFromInt(value)
	case float32:
		amount = decimal.NewFromFloat32(value)
	case float64:
		amount = decimal.NewFromFloat(value)
	case decimal.Decimal:
		amount = value
	case string:
		amount = parseCurrencyString(value)
	default:
		return 0
	}

	return amount.Round(2).InexactFloat64()
}

func parseCurrencyString(s string) decimal.Decimal {
	// an explicit '-' wins over accounting parentheses
	negative := !strings.Contains(s, "-") && strings.Contains(s, "(") && strings.Contains(s, ")")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-':
			negative = !negative
		}
	}

	amount, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return amount.Neg()
	}
	return amount
}
