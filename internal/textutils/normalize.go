// Package textutils provides the text normalization helpers used to build
// canonical field values for sorting, hashing, and deduplication.
package textutils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// asciiSpace is the whitespace set trimmed from code and id fields.
const asciiSpace = " \t\n\r\f\v"

// NormalizeFreeText canonicalizes free text (names, remittance lines) so
// that two spellings of the same value compare equal: Unicode case folding,
// NFC composition, and removal of all separator characters (category Z),
// ASCII control whitespace, and zero-width characters. Invalid UTF-8 bytes
// are dropped.
func NormalizeFreeText(s string) string {
	folded := norm.NFC.String(cases.Fold().String(dropInvalidUTF8(s)))

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if strippable(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// dropInvalidUTF8 removes bytes that do not form valid UTF-8 sequences.
// The case folder would otherwise turn them into replacement characters,
// which must not end up in canonical values.
func dropInvalidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

func strippable(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r':
		return true
	case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff':
		return true
	}
	return unicode.IsOneOf([]*unicode.RangeTable{unicode.Zs, unicode.Zl, unicode.Zp}, r)
}

// StripSpacesUpper removes all ASCII whitespace and upper-cases ASCII
// letters, leaving non-ASCII bytes untouched. Used for identifiers such
// as IBANs, BICs, and end-to-end references.
func StripSpacesUpper(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Trim removes ASCII whitespace from both ends of s.
func Trim(s string) string {
	return strings.Trim(s, asciiSpace)
}

// TrimUpper trims ASCII whitespace and upper-cases ASCII letters, leaving
// non-ASCII bytes untouched. Used for short code fields such as currency
// and bank transaction codes.
func TrimUpper(s string) string {
	s = Trim(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// FormatBankTxCode joins the ISO bank transaction code parts in the
// "domain:family:subfamily" display form. All-empty parts produce "".
func FormatBankTxCode(domain, family, subFamily string) string {
	if domain == "" && family == "" && subFamily == "" {
		return ""
	}
	return domain + ":" + family + ":" + subFamily
}
