package models

// Balance type codes from the CdOrPrtry element that the export engine
// recognizes when selecting opening, closing, and interim balances.
const (
	BalanceOpening         = "OPBD"
	BalanceClosing         = "CLBD"
	BalancePreviousClosing = "PRCD"
	BalanceInterimBooked   = "ITBD"
	BalanceInterimAvail    = "ITAV"
)

// Balance is one Bal block of a statement.
type Balance struct {
	Type   string
	Amount CurrencyAmount
	Date   string

	// HasCreditDebit is set when the balance carries a CdtDbtInd;
	// a debit indicator makes the balance amount negative in exports.
	HasCreditDebit bool
	IsCredit       bool
}

// Entry is one Ntry block: a booked movement with one or more transaction
// detail blocks.
type Entry struct {
	Amount      CurrencyAmount
	IsCredit    bool
	BookingDate string
	ValueDate   string

	// BookingDateInt and ValueDateInt are the dates as YYYYMMDD integers,
	// 0 when the date was absent or malformed.
	BookingDateInt int
	ValueDateInt   int

	EntryRef     string
	Transactions []EntryTransaction
	Reversal     bool
	Status       string

	// AcctSvcrRef at entry level doubles as the Primanota reference on
	// Swiss statements.
	AcctSvcrRef string

	// ImportOrdinal is the zero-based position of this entry within its
	// statement, in document order.
	ImportOrdinal int
}

// RowCount returns the number of export rows this entry produces: one per
// transaction detail block, or a single row when the entry has none.
func (e *Entry) RowCount() int {
	if len(e.Transactions) == 0 {
		return 1
	}
	return len(e.Transactions)
}

// GroupHeader is the GrpHdr block shared by all statements of a document.
type GroupHeader struct {
	MsgID            string
	CreationDateTime string
	MessageRecipient string
}

// Statement is one Stmt, Rpt, or Ntfctn block of a CAMT document.
type Statement struct {
	ID               string
	CreationDateTime string
	Account          Account
	GroupHeader      GroupHeader
	Balances         []Balance
	Entries          []Entry
}

// RowCount returns the number of export rows the statement produces.
func (s *Statement) RowCount() int {
	total := 0
	for i := range s.Entries {
		total += s.Entries[i].RowCount()
	}
	return total
}
