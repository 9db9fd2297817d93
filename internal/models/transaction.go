// Package models provides the data structures produced by the CAMT parsers
// and consumed by the export engine.
package models

// References holds the identifier bundle of a transaction (Refs block).
type References struct {
	EndToEndID  string
	TxID        string
	AcctSvcrRef string
	MandateID   string
	MsgID       string
}

// Purpose is the transaction purpose (Purp block).
type Purpose struct {
	Code        string
	Proprietary string
}

// BankTransactionCode is the ISO domain/family/subfamily classification of
// a transaction, plus a flat proprietary code when the bank supplies one.
type BankTransactionCode struct {
	Domain      string
	Family      string
	SubFamily   string
	Proprietary string
}

// IsEmpty returns true if no part of the structured code is set.
func (c BankTransactionCode) IsEmpty() bool {
	return c.Domain == "" && c.Family == "" && c.SubFamily == ""
}

// ProprietaryBankTransactionCode is a bank-proprietary transaction code with
// its issuer. Swiss and German banks encode the DTA/GVC booking code here.
type ProprietaryBankTransactionCode struct {
	Code   string
	Issuer string
}

// StructuredRemittance is one structured remittance record (Strd block).
type StructuredRemittance struct {
	CreditorRefType string
	CreditorRef     string
	AdditionalInfo  string
}

// RemittanceInformation collects the unstructured lines and structured
// records of the RmtInf block.
type RemittanceInformation struct {
	Unstructured []string
	Structured   []StructuredRemittance
}

// IsEmpty returns true if the transaction carries no remittance text.
func (r RemittanceInformation) IsEmpty() bool {
	return len(r.Unstructured) == 0 && len(r.Structured) == 0
}

// ChargesRecord is a single charge record attached to a transaction.
type ChargesRecord struct {
	Amount         CurrencyAmount
	Agent          Agent
	HasCreditDebit bool
	IsCredit       bool
	Included       bool
}

// Charges aggregates the charge information of a transaction (Chrgs block).
type Charges struct {
	Total   CurrencyAmount
	Records []ChargesRecord
}

// FxRateInfo captures a currency exchange block. Rate is the effective rate
// after reconciliation against the amount pair it was supplied with;
// Inverted records that the supplied rate matched the amounts only as its
// reciprocal.
type FxRateInfo struct {
	SourceCurrency string
	TargetCurrency string
	UnitCurrency   string
	Rate           float64
	Has            bool
	Inverted       bool
}

// EntryTransaction is one TxDtls block inside a statement entry.
type EntryTransaction struct {
	Refs            References
	Parties         RelatedParties
	Agents          RelatedAgents
	Remittance      RemittanceInformation
	Purpose         Purpose
	BankTxCode      BankTransactionCode
	ProprietaryCode ProprietaryBankTransactionCode
	Charges         Charges
	AdditionalInfo  string

	// Amount is the transaction-level amount when present; exports fall
	// back to the entry amount when it is nil.
	Amount *CurrencyAmount

	// DTACode and GVC are split out of '+'-separated proprietary codes
	// such as "NTRF+166+9070".
	DTACode string
	GVC     string

	// HasCreditDebit is set when the TxDtls block carries its own
	// CdtDbtInd, which then overrides the entry direction.
	HasCreditDebit bool
	IsCredit       bool

	Fx FxRateInfo

	// Amount details captured for rate reconciliation.
	FxInstructed      CurrencyAmount
	FxTransaction     CurrencyAmount
	FxCounterValue    CurrencyAmount
	HasFxInstructed   bool
	HasFxTransaction  bool
	HasFxCounterValue bool

	// ImportOrdinal is the zero-based position of this TxDtls block
	// within its entry, in document order.
	ImportOrdinal int
}

// EffectiveAmount returns the transaction amount when present, otherwise
// the given entry amount.
func (t *EntryTransaction) EffectiveAmount(entryAmount CurrencyAmount) CurrencyAmount {
	if t.Amount != nil {
		return *t.Amount
	}
	return entryAmount
}
