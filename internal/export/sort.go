package export

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// SortRows orders the data rows by date, account IBAN, entry ordinal, and
// transaction ordinal, then recomputes the per-account running balance
// over the sorted order. The sort is stable, so rows that tie on the whole
// key keep their document order. The header row, when present, stays put.
func SortRows(rows []Row, hasHeader, useBookingDate bool) {
	off := 0
	if hasHeader {
		off = 1
	}
	if len(rows) <= off {
		return
	}
	data := rows[off:]
	if len(data[0]) < int(FieldCount) {
		return
	}

	dateField := FieldBookingDate
	if !useBookingDate {
		dateField = FieldValueDate
	}
	sort.SliceStable(data, func(i, j int) bool {
		a, b := data[i], data[j]
		if da, db := canonicalInt(a[dateField]), canonicalInt(b[dateField]); da != db {
			return da < db
		}
		if a[FieldAccountIBAN].Canonical != b[FieldAccountIBAN].Canonical {
			return a[FieldAccountIBAN].Canonical < b[FieldAccountIBAN].Canonical
		}
		if ea, eb := canonicalInt(a[FieldEntryOrdinal]), canonicalInt(b[FieldEntryOrdinal]); ea != eb {
			return ea < eb
		}
		return canonicalInt(a[FieldTxOrdinal]) < canonicalInt(b[FieldTxOrdinal])
	})

	// The running balance accumulates exactly, raising its decimal scale
	// to the widest amount seen per account and never lowering it.
	balances := make(map[string]decimal.Decimal)
	for _, row := range data {
		amt, err := decimal.NewFromString(row[FieldAmount].Canonical)
		if err != nil {
			amt = decimal.Zero
		}
		delta := amt
		if row[FieldCreditDebit].Canonical != "1" {
			delta = delta.Neg()
		}
		if row[FieldReversal].Canonical == "1" {
			delta = delta.Neg()
		}
		iban := row[FieldAccountIBAN].Canonical
		bal := balances[iban].Add(delta)
		balances[iban] = bal
		row[FieldRunningBalance] = both(bal.String())
	}
}

func canonicalInt(v Value) int {
	n, err := strconv.Atoi(v.Canonical)
	if err != nil {
		return 0
	}
	return n
}
