package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeDataRow builds a minimal sortable row from canonical key values.
func makeDataRow(dateInt, iban, amount, credit, reversal, entryOrd, txOrd string) Row {
	row := NewRow()
	row[FieldBookingDate] = both(dateInt)
	row[FieldValueDate] = both(dateInt)
	row[FieldAccountIBAN] = both(iban)
	row[FieldAmount] = both(amount)
	row[FieldCreditDebit] = both(credit)
	row[FieldReversal] = both(reversal)
	row[FieldEntryOrdinal] = both(entryOrd)
	row[FieldTxOrdinal] = both(txOrd)
	return row
}

func TestSortRowsOrdersAndRecomputesBalances(t *testing.T) {
	rows := []Row{
		makeDataRow("20240110", "CH11", "20.00", "0", "0", "1", "0"),
		makeDataRow("20240105", "CH11", "150.50", "1", "0", "0", "0"),
		makeDataRow("20240105", "CH11", "10.00", "1", "0", "0", "1"),
		makeDataRow("20240105", "AA99", "30.00", "1", "0", "0", "0"),
	}

	SortRows(rows, false, true)

	ibans := make([]string, len(rows))
	for i, row := range rows {
		ibans[i] = row[FieldAccountIBAN].Canonical
	}
	assert.Equal(t, []string{"AA99", "CH11", "CH11", "CH11"}, ibans)
	assert.Equal(t, "150.50", rows[1][FieldAmount].Canonical)
	assert.Equal(t, "10.00", rows[2][FieldAmount].Canonical, "transaction ordinal breaks the tie")
	assert.Equal(t, "20.00", rows[3][FieldAmount].Canonical, "later date sorts last")

	assert.Equal(t, "30", rows[0][FieldRunningBalance].Canonical)
	assert.Equal(t, "150.5", rows[1][FieldRunningBalance].Canonical)
	assert.Equal(t, "160.5", rows[2][FieldRunningBalance].Canonical)
	assert.Equal(t, "140.5", rows[3][FieldRunningBalance].Canonical, "debit lowers the per-account balance")
	for _, row := range rows {
		assert.Equal(t, row[FieldRunningBalance].Canonical, row[FieldRunningBalance].Display)
	}
}

func TestSortRowsReversalInvertsDelta(t *testing.T) {
	rows := []Row{
		makeDataRow("20240105", "CH11", "100.00", "1", "0", "0", "0"),
		makeDataRow("20240106", "CH11", "40.00", "1", "1", "1", "0"),
		makeDataRow("20240107", "CH11", "10.00", "0", "1", "2", "0"),
	}

	SortRows(rows, false, true)

	assert.Equal(t, "100", rows[0][FieldRunningBalance].Canonical)
	assert.Equal(t, "60", rows[1][FieldRunningBalance].Canonical, "reversed credit subtracts")
	assert.Equal(t, "70", rows[2][FieldRunningBalance].Canonical, "reversed debit adds")
}

func TestSortRowsHeaderStaysPut(t *testing.T) {
	rows := []Row{
		HeaderRow(DefaultOptions()),
		makeDataRow("20240110", "CH11", "20.00", "1", "0", "1", "0"),
		makeDataRow("20240105", "CH11", "10.00", "1", "0", "0", "0"),
	}

	SortRows(rows, true, true)

	assert.Equal(t, "BookingDate", rows[0][FieldBookingDate].Display)
	assert.Equal(t, "20240105", rows[1][FieldBookingDate].Canonical)
	assert.Equal(t, "20240110", rows[2][FieldBookingDate].Canonical)
}

func TestSortRowsByValueDate(t *testing.T) {
	early := makeDataRow("20240110", "CH11", "20.00", "1", "0", "0", "0")
	early[FieldValueDate] = both("20240101")
	late := makeDataRow("20240105", "CH11", "10.00", "1", "0", "1", "0")
	late[FieldValueDate] = both("20240120")
	rows := []Row{late, early}

	SortRows(rows, false, false)

	assert.Equal(t, "20240101", rows[0][FieldValueDate].Canonical)
	assert.Equal(t, "20240120", rows[1][FieldValueDate].Canonical)
}

func TestSortRowsIgnoresInputOrder(t *testing.T) {
	build := func() []Row {
		return []Row{
			makeDataRow("20240105", "CH11", "150.50", "1", "0", "0", "0"),
			makeDataRow("20240105", "CH11", "10.00", "1", "0", "0", "1"),
			makeDataRow("20240110", "CH11", "20.00", "0", "0", "1", "0"),
			makeDataRow("20240106", "AA99", "30.00", "1", "0", "0", "0"),
			makeDataRow("20240105", "AA99", "5.00", "0", "1", "1", "0"),
		}
	}

	sorted := build()
	SortRows(sorted, false, true)

	reversed := build()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	SortRows(reversed, false, true)

	require.Len(t, reversed, len(sorted))
	for i := range sorted {
		assert.Equal(t, sorted[i][FieldAmount].Canonical, reversed[i][FieldAmount].Canonical)
		assert.Equal(t, sorted[i][FieldRunningBalance].Canonical, reversed[i][FieldRunningBalance].Canonical)
	}
}

func TestSortRowsStableOnEqualKeys(t *testing.T) {
	first := makeDataRow("20240105", "CH11", "1.00", "1", "0", "0", "0")
	second := makeDataRow("20240105", "CH11", "2.00", "1", "0", "0", "0")
	rows := []Row{first, second}

	SortRows(rows, false, true)

	assert.Equal(t, "1.00", rows[0][FieldAmount].Canonical)
	assert.Equal(t, "2.00", rows[1][FieldAmount].Canonical)
}

func TestSortRowsShortInput(t *testing.T) {
	assert.NotPanics(t, func() { SortRows(nil, false, true) })
	assert.NotPanics(t, func() { SortRows([]Row{HeaderRow(DefaultOptions())}, true, true) })

	narrow := []Row{{both("x")}, {both("y")}}
	assert.NotPanics(t, func() { SortRows(narrow, false, true) })
	assert.Equal(t, "x", narrow[0][0].Canonical, "narrow rows are left untouched")
}

func TestSortRowsAfterBuild(t *testing.T) {
	doc := sampleDocument()
	doc.Statements[0].Entries[0].BookingDateInt = 20240110
	doc.Statements[0].Entries[1].BookingDateInt = 20240105

	rows := BuildRows(doc, DefaultOptions())
	require.Len(t, rows, 3)
	SortRows(rows, true, true)

	assert.Equal(t, "BookingDate", rows[0][FieldBookingDate].Display)
	assert.Empty(t, rows[1][FieldTxOrdinal].Canonical, "bare debit entry moved first")
	assert.Equal(t, "-20", rows[1][FieldRunningBalance].Canonical)
	assert.Equal(t, "130.5", rows[2][FieldRunningBalance].Canonical)
}
