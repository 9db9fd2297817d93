package export

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"fjacquet/camt-export/internal/currencyutils"
	"fjacquet/camt-export/internal/gvc"
	"fjacquet/camt-export/internal/models"
	"fjacquet/camt-export/internal/textutils"
)

// remittanceLineSep terminates each normalized remittance line in the
// canonical value, so line boundaries stay stable whatever separator the
// display value was joined with.
const remittanceLineSep = "\x1D"

// balancePlaceholder fills opening and closing balance cells on rows that
// do not carry the statement-level balance.
const balancePlaceholder = " "

// BuildRows flattens a parsed document into output rows: one row per
// transaction detail block, one per transaction-less entry, in document
// order. The optional header row carries titles in the display half.
func BuildRows(doc *models.Document, opts Options) []Row {
	rows := make([]Row, 0, doc.RowCount()+1)
	if opts.IncludeHeader {
		rows = append(rows, HeaderRow(opts))
	}
	for si := range doc.Statements {
		sc := newStatementContext(&doc.Statements[si])
		for ei := range sc.st.Entries {
			e := &sc.st.Entries[ei]
			if len(e.Transactions) == 0 {
				rows = append(rows, sc.buildRow(e, nil, opts))
				continue
			}
			for ti := range e.Transactions {
				rows = append(rows, sc.buildRow(e, &e.Transactions[ti], opts))
			}
		}
	}
	for _, row := range rows {
		fillCanonicals(row)
	}
	log.WithFields(logrus.Fields{
		"statements": len(doc.Statements),
		"rows":       len(rows),
	}).Debug("Assembled export rows")
	return rows
}

// HeaderRow returns a title row matching the field layout, titles in the
// display half.
func HeaderRow(opts Options) Row {
	row := NewRow()
	for f := Field(0); f < FieldCount; f++ {
		row[f].Display = f.Title(opts.CreditAsBool)
	}
	return row
}

// statementContext carries the per-statement state of row assembly: the
// resolved opening and closing balance cells, the running balance
// accumulator, and the row position within the statement.
type statementContext struct {
	st        *models.Statement
	openStr   string
	closeStr  string
	totalRows int
	rowIndex  int

	// runCcy labels the running balance: the account currency, or the
	// first transaction currency seen when the account has none.
	runCcy  string
	running int64
}

func newStatementContext(st *models.Statement) *statementContext {
	sc := &statementContext{st: st, totalRows: st.RowCount(), runCcy: st.Account.Currency}
	openSet := false
	for i := range st.Balances {
		b := &st.Balances[i]
		switch b.Type {
		case models.BalanceOpening, models.BalancePreviousClosing:
			if !openSet {
				sc.openStr = balanceNumber(b, st)
				openSet = true
			}
		case models.BalanceClosing:
			sc.closeStr = balanceNumber(b, st)
		}
	}
	return sc
}

// balanceNumber renders a balance as a signed decimal string. A debit
// indicator negates the amount; the balance currency decides the scale,
// falling back to the account currency.
func balanceNumber(b *models.Balance, st *models.Statement) string {
	if b == nil {
		return ""
	}
	minor := b.Amount.Minor
	if b.HasCreditDebit {
		minor = absMinor(minor)
		if !b.IsCredit {
			minor = -minor
		}
	}
	ccy := b.Amount.Currency
	if ccy == "" {
		ccy = st.Account.Currency
	}
	return currencyutils.FormatMinorUnits(minor, ccy)
}

// interimForEntry returns the first per-date interim balance (booked or
// available) whose date matches the entry's booking or value date.
func (sc *statementContext) interimForEntry(e *models.Entry) string {
	for i := range sc.st.Balances {
		b := &sc.st.Balances[i]
		if b.Type != models.BalanceInterimBooked && b.Type != models.BalanceInterimAvail {
			continue
		}
		if b.Date == "" {
			continue
		}
		if (e.BookingDate != "" && b.Date == e.BookingDate) ||
			(e.ValueDate != "" && b.Date == e.ValueDate) {
			return balanceNumber(b, sc.st)
		}
	}
	return ""
}

func (sc *statementContext) buildRow(e *models.Entry, tx *models.EntryTransaction, opts Options) Row {
	st := sc.st
	row := NewRow()

	credit := e.IsCredit
	if tx != nil && tx.HasCreditDebit {
		credit = tx.IsCredit
	}
	// Reversals invert the economic direction of the booking.
	effective := credit != e.Reversal

	amt := e.Amount
	if tx != nil {
		amt = tx.EffectiveAmount(e.Amount)
	}
	if sc.runCcy == "" {
		if amt.Currency != "" {
			sc.runCcy = amt.Currency
		} else if e.Amount.Currency != "" {
			sc.runCcy = e.Amount.Currency
		}
	}
	abs := absMinor(amt.Minor)
	signed := abs
	if !effective {
		signed = -abs
	}
	sc.running += signed

	row[FieldBookingDate] = Value{Display: e.BookingDate, Canonical: strconv.Itoa(e.BookingDateInt)}
	row[FieldValueDate] = Value{Display: e.ValueDate, Canonical: strconv.Itoa(e.ValueDateInt)}

	amountDisplay := abs
	if opts.SignedAmount {
		amountDisplay = signed
	}
	row[FieldAmount] = Value{
		Display:   currencyutils.FormatMinorUnits(amountDisplay, amt.Currency),
		Canonical: currencyutils.FormatMinorUnits(abs, amt.Currency),
	}

	colCredit := credit
	if opts.UseEffectiveCredit {
		colCredit = effective
	}
	row[FieldCreditDebit] = Value{
		Display:   creditDebitDisplay(colCredit, opts.CreditAsBool),
		Canonical: flag01(credit),
	}

	ccy := st.Account.Currency
	if ccy == "" {
		ccy = amt.Currency
	}
	if ccy == "" {
		ccy = sc.runCcy
	}
	row[FieldCurrency].Display = ccy

	if tx != nil {
		if effective {
			row[FieldCounterpartyName].Display = pickPartyName(tx.Parties.Debtor, tx.Parties.UltimateDebtor, opts.PreferUltimateCounterparty)
			row[FieldCounterpartyIBAN].Display = tx.Parties.DebtorAccount.IBAN
			row[FieldCounterpartyBIC].Display = tx.Agents.DebtorAgent.BIC
		} else {
			row[FieldCounterpartyName].Display = pickPartyName(tx.Parties.Creditor, tx.Parties.UltimateCreditor, opts.PreferUltimateCounterparty)
			row[FieldCounterpartyIBAN].Display = tx.Parties.CreditorAccount.IBAN
			row[FieldCounterpartyBIC].Display = tx.Agents.CreditorAgent.BIC
		}
	}

	if tx != nil {
		lines := tx.Remittance.Unstructured
		var canonical strings.Builder
		for _, line := range lines {
			canonical.WriteString(textutils.NormalizeFreeText(line))
			canonical.WriteString(remittanceLineSep)
		}
		row[FieldRemittanceLine] = Value{
			Display:   strings.Join(lines, opts.RemittanceSeparator),
			Canonical: canonical.String(),
		}
		if len(tx.Remittance.Structured) > 0 {
			s := tx.Remittance.Structured[0]
			structured := s.CreditorRef
			if structured == "" {
				structured = s.AdditionalInfo
			}
			row[FieldRemittanceStructured] = Value{
				Display:   structured,
				Canonical: textutils.NormalizeFreeText(structured),
			}
		}
		row[FieldEndToEndID].Display = tx.Refs.EndToEndID
		row[FieldMandateID].Display = tx.Refs.MandateID
		row[FieldTxID].Display = tx.Refs.TxID
	}

	bankRef := e.AcctSvcrRef
	if tx != nil && tx.Refs.AcctSvcrRef != "" {
		bankRef = tx.Refs.AcctSvcrRef
	}
	row[FieldBankRef].Display = bankRef

	row[FieldAccountIBAN].Display = st.Account.ID.Identifier()
	row[FieldAccountBIC].Display = st.Account.Servicer.BIC

	if tx != nil {
		row[FieldBkTxCd].Display = textutils.FormatBankTxCode(
			tx.BankTxCode.Domain, tx.BankTxCode.Family, tx.BankTxCode.SubFamily)
		row[FieldBookingCode].Display = tx.ProprietaryCode.Code
	}

	row[FieldStatus].Display = e.Status
	row[FieldReversal] = both(flag01(e.Reversal))
	row[FieldRunningBalance] = both(currencyutils.FormatMinorUnits(sc.running, sc.runCcy))
	row[FieldServicerBankName].Display = st.Account.Servicer.Name

	interim := ""
	if sc.openStr == "" || sc.closeStr == "" {
		interim = sc.interimForEntry(e)
	}
	openCell := balancePlaceholder
	if sc.openStr != "" {
		if sc.rowIndex == 0 {
			openCell = sc.openStr
		}
	} else if interim != "" {
		openCell = interim
	}
	closeCell := balancePlaceholder
	if sc.closeStr != "" {
		if sc.rowIndex+1 == sc.totalRows {
			closeCell = sc.closeStr
		}
	} else if interim != "" {
		closeCell = interim
	}
	row[FieldOpeningBalance] = both(openCell)
	row[FieldClosingBalance] = both(closeCell)

	if tx != nil {
		code := tx.ProprietaryCode.Code
		dta, gvcCode, prima := splitBookingCode(code)
		if gvcCode == "" {
			gvcCode = gvc.Default().Lookup(
				tx.BankTxCode.Domain, tx.BankTxCode.Family, tx.BankTxCode.SubFamily, effective)
		}
		row[FieldPrimanota].Display = prima
		row[FieldDTACode].Display = dta
		row[FieldGVCCode].Display = gvcCode
		if code != "" {
			n := len(code)
			if n > 4 {
				n = 4
			}
			row[FieldSWIFTTransactionCode].Display = code[:n]
		}
	}

	charges, chargesIncluded := sumCharges(e, tx)
	row[FieldChargesAmount] = both(currencyutils.FormatMinorUnits(charges.Minor, charges.Currency))
	row[FieldChargesCurrency].Display = charges.Currency
	row[FieldChargesIncluded] = both(flag01(chargesIncluded))

	row[FieldEntryOrdinal] = both(strconv.Itoa(e.ImportOrdinal))
	if tx != nil {
		row[FieldTxOrdinal] = both(strconv.Itoa(tx.ImportOrdinal))
	}

	sc.rowIndex++
	return row
}

// pickPartyName chooses between the immediate and the ultimate party name.
// Placeholder names from banks that suppress the party are never preferred.
func pickPartyName(immediate, ultimate models.Party, preferUltimate bool) string {
	if preferUltimate {
		if isProvided(ultimate.Name) {
			return ultimate.Name
		}
		return immediate.Name
	}
	if isProvided(immediate.Name) {
		return immediate.Name
	}
	return ultimate.Name
}

func isProvided(name string) bool {
	return name != "" && name != "NOTPROVIDED"
}

// splitBookingCode splits a '+'-separated proprietary booking code into the
// leading code, the legacy business transaction code, and the primanota.
func splitBookingCode(code string) (dta, gvcCode, prima string) {
	i := strings.Index(code, "+")
	if i < 0 {
		return code, "", ""
	}
	dta = code[:i]
	gvcCode = code[i+1:]
	if j := strings.Index(gvcCode, "+"); j >= 0 {
		prima = gvcCode[j+1:]
		gvcCode = gvcCode[:j]
	}
	return dta, gvcCode, prima
}

// sumCharges nets all charge records of a transaction into one signed
// amount. Record-level direction indicators win over the transaction and
// entry direction, and reversals flip the sign like they do for the main
// amount. The first currency seen labels the sum.
func sumCharges(e *models.Entry, tx *models.EntryTransaction) (models.CurrencyAmount, bool) {
	var out models.CurrencyAmount
	included := false
	if tx == nil {
		return out, false
	}
	for i := range tx.Charges.Records {
		rec := &tx.Charges.Records[i]
		if rec.Amount.Currency == "" {
			continue
		}
		if out.Currency == "" {
			out.Currency = rec.Amount.Currency
		}
		credit := e.IsCredit
		if tx.HasCreditDebit {
			credit = tx.IsCredit
		}
		if rec.HasCreditDebit {
			credit = rec.IsCredit
		}
		abs := absMinor(rec.Amount.Minor)
		if credit != e.Reversal {
			out.Minor += abs
		} else {
			out.Minor -= abs
		}
		included = included || rec.Included
	}
	return out, included
}

func creditDebitDisplay(credit, asBool bool) string {
	if asBool {
		return flag01(credit)
	}
	if credit {
		return "CRDT"
	}
	return "DBIT"
}

func flag01(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func both(v string) Value {
	return Value{Display: v, Canonical: v}
}

func absMinor(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
