package sources

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ErrInvalidCurrency is returned by ParseCurrency for values that are not an
// amount once symbols and separators are removed.
var ErrInvalidCurrency = errors.New("invalid currency amount")

// ParseCurrency converts a stored sales value into a decimal amount.
// Accepted strings carry an optional currency symbol or ISO code, thousands
// separators and an accounting-style negative "(12.50)". Missing values
// parse to zero without error.
func ParseCurrency(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidCurrency, v)
		}
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int, int32, int64, uint, uint32, uint64:
		return decimal.NewFromInt(cast.ToInt64(v)), nil
	case []byte:
		return parseCurrencyString(string(v))
	case string:
		return parseCurrencyString(v)
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported type %T", ErrInvalidCurrency, value)
	}
}

func parseCurrencyString(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r), r == '.', r == '-', r == '+':
			b.WriteRune(r)
		case r == ',', unicode.IsSpace(r), unicode.Is(unicode.Sc, r):
			// separators and currency symbols
		case unicode.IsLetter(r) && r < unicode.MaxASCII:
			// ISO codes such as "INR 1,200"
		default:
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCurrency, raw)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCurrency, raw)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCurrency, raw)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// CurrencyValue is ParseCurrency with the zero fallback: unparsable values
// become 0 and are logged.
func CurrencyValue(value any, logger *slog.Logger) float64 {
	amount, err := ParseCurrency(value)
	if err != nil {
		if logger != nil {
			logger.Warn("Unparsable currency value, using 0", slog.Any("error", err))
		}
		return 0
	}
	return amount.InexactFloat64()
}
