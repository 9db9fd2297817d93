package currencyutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExponent(t *testing.T) {
	tests := []struct {
		currency string
		expected int
	}{
		{"EUR", 2},
		{"CHF", 2},
		{"USD", 2},
		{"JPY", 0},
		{"KRW", 0},
		{"VND", 0},
		{"BHD", 3},
		{"KWD", 3},
		{"OMR", 3},
		{"TND", 3},
		{"CLF", 4},
		{"eur", 2},
		{"jpy", 0},
		{"", 2},
		{"XXX", 2},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.expected, Exponent(tt.currency))
		})
	}
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		exponent int
		expected int64
	}{
		{"simple decimal", "130.00", 2, 13000},
		{"integer", "100", 2, 10000},
		{"comma decimal separator", "123,45", 2, 12345},
		{"thousand separator comma", "1,234.56", 2, 123456},
		{"thousand separator dot", "1.234,56", 2, 123456},
		{"apostrophe grouping", "1'234.56", 2, 123456},
		{"underscore grouping", "1_234.56", 2, 123456},
		{"non-breaking space grouping", "1 234,56", 2, 123456},
		{"surrounding whitespace", "  123.45\t", 2, 12345},
		{"leading plus", "+15.00", 2, 1500},
		{"leading minus", "-15.00", 2, -1500},
		{"parenthesized negative", "(15.00)", 2, -1500},
		{"parenthesized minus cancels", "(-15.00)", 2, 1500},
		{"fraction truncated not rounded", "1.999", 2, 199},
		{"fraction padded", "5.1", 2, 510},
		{"no fraction padded", "5", 2, 500},
		{"bare decimal point", ".50", 2, 50},
		{"zero exponent drops fraction", "500.75", 0, 500},
		{"three decimals", "1234.567", 3, 1234567},
		{"empty string", "", 2, 0},
		{"only sign", "-", 2, 0},
		{"non-numeric", "abc", 2, 0},
		{"mixed garbage", "12a.00", 2, 0},
		{"overflow becomes zero", "99999999999999999999", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToMinorUnits(tt.value, tt.exponent))
		})
	}
}

// Equivalent spellings of the same amount must agree on minor units
// regardless of the separator convention used.
func TestToMinorUnits_SeparatorInvariance(t *testing.T) {
	spellings := []string{"1234.56", "1234,56", "1.234,56", "1,234.56", "1'234.56", "1 234,56"}
	for _, s := range spellings {
		assert.Equal(t, int64(123456), ToMinorUnits(s, 2), "spelling %q", s)
	}
}

func TestFormatMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		minor    int64
		currency string
		expected string
	}{
		{"two decimals", 13000, "EUR", "130.00"},
		{"negative", -13000, "CHF", "-130.00"},
		{"zero", 0, "EUR", "0.00"},
		{"zero exponent", 500, "JPY", "500"},
		{"three decimals", 1234567, "BHD", "1234.567"},
		{"four decimals", 12345, "CLF", "1.2345"},
		{"fraction fully padded", 5, "EUR", "0.05"},
		{"unknown currency defaults to two", 999, "XXX", "9.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMinorUnits(tt.minor, tt.currency))
		})
	}
}

// Formatting then reparsing a minor-unit value must return the original
// value for any currency exponent.
func TestMinorUnits_RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 99, 100, 12345, -987654321}
	currencies := []string{"EUR", "JPY", "BHD", "CLF"}

	for _, ccy := range currencies {
		exp := Exponent(ccy)
		for _, v := range values {
			formatted := FormatMinorUnits(v, ccy)
			assert.Equal(t, v, ToMinorUnits(formatted, exp),
				"round trip of %d via %q (%s)", v, formatted, ccy)
		}
	}
}
