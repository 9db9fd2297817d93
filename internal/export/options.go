package export

// Options controls row assembly and file output.
type Options struct {
	// Delimiter separates CSV fields.
	Delimiter rune
	// IncludeHeader prepends a title row.
	IncludeHeader bool
	// WriteUTF8BOM prefixes the CSV output with a UTF-8 byte order mark.
	WriteUTF8BOM bool
	// SignedAmount renders debits with a leading minus in the amount
	// column instead of relying on the direction column alone.
	SignedAmount bool
	// CreditAsBool renders the direction column as 1/0 instead of
	// CRDT/DBIT and titles it IsCredit.
	CreditAsBool bool
	// RemittanceSeparator joins multiple unstructured remittance lines in
	// the display value. Empty means plain concatenation.
	RemittanceSeparator string
	// UseEffectiveCredit makes the direction column reflect the
	// reversal-adjusted direction instead of the declared one.
	UseEffectiveCredit bool
	// PreferUltimateCounterparty picks the ultimate party over the
	// immediate one when its name is usable.
	PreferUltimateCounterparty bool
}

// DefaultOptions returns the defaults used by the command line tools.
func DefaultOptions() Options {
	return Options{
		Delimiter:                  ';',
		IncludeHeader:              true,
		WriteUTF8BOM:               false,
		SignedAmount:               true,
		CreditAsBool:               true,
		RemittanceSeparator:        "",
		UseEffectiveCredit:         false,
		PreferUltimateCounterparty: true,
	}
}
