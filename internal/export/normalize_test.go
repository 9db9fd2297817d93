package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		in    string
		want  string
	}{
		{"free text folds case and strips separators", FieldCounterpartyName, "Hans  Muster", "hansmuster"},
		{"free text drops zero-width runes", FieldRemittanceLine, "In​voice 42", "invoice42"},
		{"identifier strips spaces and uppercases", FieldCounterpartyIBAN, "de89 3704 0044", "DE8937040044"},
		{"identifier keeps punctuation", FieldBankRef, "ref-01/a", "REF-01/A"},
		{"code trims and uppercases", FieldCurrency, " chf ", "CHF"},
		{"code keeps interior spaces", FieldBookingCode, "ab cd", "AB CD"},
		{"status trims only", FieldStatus, "  BOOK\t", "BOOK"},
		{"date trims only", FieldBookingDate, " 2024-01-05 ", "2024-01-05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeField(tt.field, tt.in))
		})
	}
}

func TestNormalizeFieldIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		in    string
	}{
		{"free text", FieldCounterpartyName, "  Hans  MUSTER​ & Söhne\t"},
		{"remittance", FieldRemittanceLine, "Re​chnung  2024 / 17 ÉTÉ"},
		{"identifier", FieldCounterpartyIBAN, " de89 3704\t0044 0532 0130 00 "},
		{"reference", FieldEndToEndID, "e2e-2024/00017 "},
		{"code", FieldCurrency, "\tchf "},
		{"bank tx code", FieldBkTxCd, " pmnt:rcdt:esct"},
		{"default", FieldStatus, "  book\t"},
		{"date", FieldValueDate, " 2024-01-05\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := NormalizeField(tt.field, tt.in)
			assert.Equal(t, once, NormalizeField(tt.field, once))
		})
	}
}

func TestFillCanonicalsKeepsExistingValues(t *testing.T) {
	row := NewRow()
	row[FieldCurrency] = Value{Display: "chf", Canonical: "EUR"}
	row[FieldStatus].Display = " BOOK "

	fillCanonicals(row)

	assert.Equal(t, "EUR", row[FieldCurrency].Canonical, "assembled canonicals are not overwritten")
	assert.Equal(t, "BOOK", row[FieldStatus].Canonical)
}
