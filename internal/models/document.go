package models

// DocumentKind identifies which CAMT cash-management message a document
// contains.
type DocumentKind int

const (
	// KindUnknown marks a document whose payload is not a supported
	// CAMT message.
	KindUnknown DocumentKind = iota
	// KindCamt052 is a bank-to-customer account report (BkToCstmrAcctRpt).
	KindCamt052
	// KindCamt053 is a bank-to-customer statement (BkToCstmrStmt).
	KindCamt053
	// KindCamt054 is a debit/credit notification (BkToCstmrDbtCdtNtfctn).
	KindCamt054
)

// String returns the conventional dotted name of the message kind.
func (k DocumentKind) String() string {
	switch k {
	case KindCamt052:
		return "camt.052"
	case KindCamt053:
		return "camt.053"
	case KindCamt054:
		return "camt.054"
	default:
		return "unknown"
	}
}

// Document is a parsed CAMT file: the detected message kind and all
// statements, reports, or notifications it contains.
type Document struct {
	Kind       DocumentKind
	Statements []Statement
}

// EntryCount returns the total number of entries across all statements.
func (d *Document) EntryCount() int {
	total := 0
	for i := range d.Statements {
		total += len(d.Statements[i].Entries)
	}
	return total
}

// RowCount returns the total number of export rows across all statements.
func (d *Document) RowCount() int {
	total := 0
	for i := range d.Statements {
		total += d.Statements[i].RowCount()
	}
	return total
}
