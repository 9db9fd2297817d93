// Package currencyutils provides minor-unit currency arithmetic used
// throughout the application.
//
// Statement amounts are held as int64 minor units (cents for two-decimal
// currencies) so that sums and running balances stay exact. Parsing is
// deliberately tolerant: grouping separators, apostrophes, non-breaking
// spaces, and both decimal separator conventions are accepted, and any
// value that still fails to parse becomes 0 rather than an error.
package currencyutils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Exponent returns the ISO 4217 minor-unit exponent for a currency code.
// Unknown and empty codes use the common two-decimal default.
func Exponent(currency string) int {
	switch strings.ToUpper(currency) {
	case "JPY", "KRW", "VND":
		return 0
	case "BHD", "KWD", "OMR", "TND":
		return 3
	case "CLF":
		return 4
	default:
		return 2
	}
}

// ToMinorUnits converts a decimal amount string to minor units with the
// given exponent.
//
// The last '.' or ',' is taken as the decimal separator; all other dots and
// commas are treated as grouping and dropped, as are spaces, tabs,
// apostrophes, underscores, and non-breaking spaces. A surrounding
// parenthesis pair or a leading sign negates the value. Excess fraction
// digits are truncated, missing ones zero-padded. Any remaining non-digit
// or an int64 overflow yields 0.
func ToMinorUnits(s string, exponent int) int64 {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\n', '\'', '_', ' ':
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()
	if s == "" {
		return 0
	}

	neg := false
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		neg = true
		s = s[1 : len(s)-1]
	}
	if s != "" {
		switch s[0] {
		case '-':
			neg = !neg
			s = s[1:]
		case '+':
			s = s[1:]
		}
	}
	if s == "" {
		return 0
	}

	intPart, fracPart := s, ""
	if sep := strings.LastIndexAny(s, ".,"); sep >= 0 {
		intPart, fracPart = s[:sep], s[sep+1:]
	}
	intPart = dropGrouping(intPart)
	fracPart = dropGrouping(fracPart)
	if intPart == "" {
		intPart = "0"
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		log.WithField("value", s).Debug("Amount contains non-digit characters, using 0")
		return 0
	}

	if len(fracPart) > exponent {
		fracPart = fracPart[:exponent]
	}
	for len(fracPart) < exponent {
		fracPart += "0"
	}

	scale := int64(1)
	for i := 0; i < exponent; i++ {
		if scale > math.MaxInt64/10 {
			return 0
		}
		scale *= 10
	}

	major, ok := digitsToInt64(intPart)
	if !ok {
		log.WithField("value", s).Debug("Amount overflows int64, using 0")
		return 0
	}
	frac, ok := digitsToInt64(fracPart)
	if !ok {
		return 0
	}
	if scale != 0 && major > (math.MaxInt64-frac)/scale {
		log.WithField("value", s).Debug("Amount overflows int64, using 0")
		return 0
	}

	result := major*scale + frac
	if neg {
		return -result
	}
	return result
}

// FormatMinorUnits renders minor units as a decimal string for the given
// currency, with a '.' separator and the fraction zero-padded to the full
// exponent width ("130.00", "-4.5" never).
func FormatMinorUnits(minor int64, currency string) string {
	exp := Exponent(currency)
	return decimal.New(minor, -int32(exp)).StringFixed(int32(exp))
}

func dropGrouping(s string) string {
	if !strings.ContainsAny(s, ".,") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '.' || r == ',' {
			return -1
		}
		return r
	}, s)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func digitsToInt64(s string) (int64, bool) {
	var v int64
	for i := 0; i < len(s); i++ {
		d := int64(s[i] - '0')
		if v > (math.MaxInt64-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}
	return v, true
}
