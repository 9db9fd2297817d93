// Package export turns parsed CAMT documents into ordered ledger rows and
// writes them as CSV or XLSX. Every cell is a display/canonical value pair:
// the display half goes into output files, the canonical half feeds sorting,
// hashing, and deduplication.
package export

// Field indexes one column of the 33-field output row. The order is part of
// the output format and of the row hash, so it never changes.
type Field int

const (
	FieldBookingDate Field = iota
	FieldValueDate
	FieldAmount
	FieldCreditDebit
	FieldCurrency
	FieldCounterpartyName
	FieldCounterpartyIBAN
	FieldCounterpartyBIC
	FieldRemittanceLine
	FieldRemittanceStructured
	FieldEndToEndID
	FieldMandateID
	FieldTxID
	FieldBankRef
	FieldAccountIBAN
	FieldAccountBIC
	FieldBkTxCd
	FieldBookingCode
	FieldStatus
	FieldReversal
	FieldRunningBalance
	FieldServicerBankName
	FieldOpeningBalance
	FieldClosingBalance
	FieldPrimanota
	FieldDTACode
	FieldGVCCode
	FieldSWIFTTransactionCode
	FieldChargesAmount
	FieldChargesCurrency
	FieldChargesIncluded
	FieldEntryOrdinal
	FieldTxOrdinal

	// FieldCount is the row width.
	FieldCount
)

var fieldTitles = [FieldCount]string{
	FieldBookingDate:          "BookingDate",
	FieldValueDate:            "ValueDate",
	FieldAmount:               "Amount",
	FieldCreditDebit:          "CreditDebit",
	FieldCurrency:             "Currency",
	FieldCounterpartyName:     "CounterpartyName",
	FieldCounterpartyIBAN:     "CounterpartyIBAN",
	FieldCounterpartyBIC:      "CounterpartyBIC",
	FieldRemittanceLine:       "RemittanceLine",
	FieldRemittanceStructured: "RemittanceStructured",
	FieldEndToEndID:           "EndToEndId",
	FieldMandateID:            "MandateId",
	FieldTxID:                 "TxId",
	FieldBankRef:              "BankRef",
	FieldAccountIBAN:          "AccountIBAN",
	FieldAccountBIC:           "AccountBIC",
	FieldBkTxCd:               "BkTxCd",
	FieldBookingCode:          "BookingCode",
	FieldStatus:               "Status",
	FieldReversal:             "Reversal",
	FieldRunningBalance:       "RunningBalance",
	FieldServicerBankName:     "ServicerBankName",
	FieldOpeningBalance:       "OpeningBalance",
	FieldClosingBalance:       "ClosingBalance",
	FieldPrimanota:            "Primanota",
	FieldDTACode:              "DTACode",
	FieldGVCCode:              "GVCCode",
	FieldSWIFTTransactionCode: "SWIFTTransactionCode",
	FieldChargesAmount:        "ChargesAmount",
	FieldChargesCurrency:      "ChargesCurrency",
	FieldChargesIncluded:      "ChargesIncluded",
	FieldEntryOrdinal:         "EntryOrdinal",
	FieldTxOrdinal:            "TxOrdinal",
}

// Title returns the header title of the field. The direction column is
// titled IsCredit when the boolean representation is selected.
func (f Field) Title(creditAsBool bool) string {
	if f == FieldCreditDebit && creditAsBool {
		return "IsCredit"
	}
	if f < 0 || f >= FieldCount {
		return ""
	}
	return fieldTitles[f]
}

// CoreHashFields is the default field subset for row fingerprints: the
// values that identify a booked movement independently of formatting.
var CoreHashFields = []Field{
	FieldBookingDate,
	FieldAmount,
	FieldCreditDebit,
	FieldCurrency,
	FieldCounterpartyIBAN,
	FieldCounterpartyBIC,
	FieldRemittanceLine,
	FieldEndToEndID,
	FieldTxID,
	FieldBankRef,
	FieldAccountIBAN,
	FieldBkTxCd,
	FieldReversal,
	FieldPrimanota,
	FieldDTACode,
}

// canonicalFillFields are the fields whose canonical half is derived from
// the display value after row assembly. The remaining fields either compute
// a distinct canonical during assembly (dates, amounts, flags, ordinals) or
// mirror the display directly.
var canonicalFillFields = []Field{
	FieldCurrency,
	FieldCounterpartyName,
	FieldCounterpartyIBAN,
	FieldCounterpartyBIC,
	FieldEndToEndID,
	FieldMandateID,
	FieldTxID,
	FieldBankRef,
	FieldAccountIBAN,
	FieldAccountBIC,
	FieldBkTxCd,
	FieldBookingCode,
	FieldStatus,
	FieldServicerBankName,
	FieldPrimanota,
	FieldDTACode,
	FieldGVCCode,
	FieldSWIFTTransactionCode,
	FieldChargesCurrency,
}
