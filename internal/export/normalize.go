package export

import "fjacquet/camt-export/internal/textutils"

// NormalizeField maps a display value to its canonical form. Free-text
// fields get full Unicode normalization, identifiers lose interior spaces
// and are uppercased, code fields are trimmed and uppercased, and
// everything else is ASCII-trimmed only.
func NormalizeField(f Field, display string) string {
	switch f {
	case FieldRemittanceLine, FieldRemittanceStructured, FieldCounterpartyName:
		return textutils.NormalizeFreeText(display)
	case FieldEndToEndID, FieldMandateID, FieldTxID, FieldBankRef,
		FieldPrimanota, FieldAccountIBAN, FieldCounterpartyIBAN,
		FieldAccountBIC, FieldCounterpartyBIC:
		return textutils.StripSpacesUpper(display)
	case FieldCurrency, FieldChargesCurrency, FieldCreditDebit,
		FieldBkTxCd, FieldBookingCode, FieldDTACode, FieldGVCCode,
		FieldSWIFTTransactionCode:
		return textutils.TrimUpper(display)
	default:
		return textutils.Trim(display)
	}
}

// fillCanonicals derives the canonical half from the display half for the
// fields assembled display-first.
func fillCanonicals(row Row) {
	for _, f := range canonicalFillFields {
		if row[f].Canonical == "" {
			row[f].Canonical = NormalizeField(f, row[f].Display)
		}
	}
}
